// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// FrameStats describes the last frame passed to Renderer.Render.
type FrameStats struct {
	// Frame is the 1-based sequence number of the frame.
	Frame uint64

	// Renderables is the number of renderables in the frame.
	Renderables int

	// Draws is the number of indexed draw calls recorded.
	Draws int

	// SlotsCreated counts slots appended during the sync pass.
	SlotsCreated int

	// BuffersReplaced counts vertex and index buffers reallocated.
	BuffersReplaced int

	// InPlaceWrites counts vertex and index uploads into existing buffers.
	InPlaceWrites int

	// UniformWrites counts matrix uploads into existing slots.
	UniformWrites int

	// SlotsEvicted counts slots destroyed before the frame.
	SlotsEvicted int

	// Submitted reports whether the frame reached the queue.
	Submitted bool
}

// delta fills the per-frame cache counters from two cumulative snapshots.
func (s *FrameStats) delta(before, after CacheStats) {
	s.SlotsCreated = int(after.SlotsCreated - before.SlotsCreated)
	s.BuffersReplaced = int(after.BuffersReplaced - before.BuffersReplaced)
	s.InPlaceWrites = int(after.InPlaceWrites - before.InPlaceWrites)
	s.UniformWrites = int(after.UniformWrites - before.UniformWrites)
	s.SlotsEvicted = int(after.SlotsEvicted - before.SlotsEvicted)
}
