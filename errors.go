// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import "errors"

// Mesh validation errors.
var (
	// ErrIncompleteTriangle is returned when a mesh's index count is not a
	// multiple of three.
	ErrIncompleteTriangle = errors.New("paper: index count is not a multiple of 3")

	// ErrIndexOutOfRange is returned when an index references a vertex that
	// does not exist.
	ErrIndexOutOfRange = errors.New("paper: index out of range")
)
