// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Surface and device errors. Surface implementations wrap these so that
// Classify can route them to the frame error policy.
var (
	// ErrSurfaceLost means the surface must be reconfigured before the next
	// frame. Recover with Renderer.Recreate.
	ErrSurfaceLost = errors.New("render: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window and
	// should be resized. The frame is skipped.
	ErrSurfaceOutdated = errors.New("render: surface outdated")

	// ErrSurfaceTimeout means no surface texture became available in time.
	// The frame is skipped.
	ErrSurfaceTimeout = errors.New("render: surface acquire timed out")

	// ErrOutOfMemory means the device or surface ran out of memory.
	ErrOutOfMemory = errors.New("render: out of GPU memory")

	// ErrAllocation wraps any GPU resource creation failure during a frame.
	// The cache cannot make progress without the resource, so it is fatal.
	ErrAllocation = errors.New("render: GPU resource allocation failed")

	// ErrDeviceLost means the device stopped responding.
	ErrDeviceLost = errors.New("render: device lost")

	// ErrGPUTimeout means a previous frame did not finish in time. The frame
	// is skipped and the wait is retried on the next frame.
	ErrGPUTimeout = errors.New("render: timed out waiting for GPU")

	// ErrNotConfigured is returned when a surface is used before Configure.
	ErrNotConfigured = errors.New("render: surface not configured")

	// ErrAlreadyAcquired is returned when a surface texture is acquired twice
	// without Present or Discard in between.
	ErrAlreadyAcquired = errors.New("render: surface texture already acquired")

	// ErrNotAcquired is returned by Present when no texture is acquired.
	ErrNotAcquired = errors.New("render: no surface texture acquired")

	// ErrInvalidSlot is returned when Sync is asked for a position beyond
	// the end of the cache.
	ErrInvalidSlot = errors.New("render: slot position out of range")

	// ErrNilProvider is returned when a nil device provider is passed.
	ErrNilProvider = errors.New("render: nil device provider")

	// ErrNoHALDevice is returned when a device provider does not expose
	// HAL device and queue handles.
	ErrNoHALDevice = errors.New("render: provider does not expose HAL device")

	// ErrDestroyed is returned when a destroyed renderer is used.
	ErrDestroyed = errors.New("render: renderer destroyed")
)

// ErrorKind is the frame error policy class of an error.
type ErrorKind uint8

const (
	// ErrorNone means no error.
	ErrorNone ErrorKind = iota

	// ErrorTransient errors skip the current frame. Log and continue.
	ErrorTransient

	// ErrorSurfaceLost errors require Renderer.Recreate before continuing.
	ErrorSurfaceLost

	// ErrorFatal errors end the run loop.
	ErrorFatal
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrorNone:
		return "none"
	case ErrorTransient:
		return "transient"
	case ErrorSurfaceLost:
		return "surface-lost"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by Renderer.Render to its policy class.
// Unrecognized errors are transient.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrorNone
	case errors.Is(err, ErrSurfaceLost):
		return ErrorSurfaceLost
	case errors.Is(err, ErrOutOfMemory),
		errors.Is(err, ErrAllocation),
		errors.Is(err, ErrDeviceLost),
		errors.Is(err, ErrDestroyed):
		return ErrorFatal
	default:
		return ErrorTransient
	}
}

// IsFatal reports whether err should end the run loop.
func IsFatal(err error) bool { return Classify(err) == ErrorFatal }

// IsSurfaceLost reports whether err requires surface recreation.
func IsSurfaceLost(err error) bool { return Classify(err) == ErrorSurfaceLost }
