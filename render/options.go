// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"time"

	"github.com/gogpu/gputypes"
)

// DefaultSampleCount is the MSAA sample count used unless WithSampleCount
// overrides it.
const DefaultSampleCount = 4

// DefaultRetireTimeout bounds the wait for the previous frame's GPU work.
const DefaultRetireTimeout = 5 * time.Second

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	r, err := render.New(device, queue, surface, 800, 600,
//	    render.WithSampleCount(1),
//	    render.WithPresentMode(render.PresentModeMailbox))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	sampleCount   uint32
	presentMode   PresentMode
	format        gputypes.TextureFormat
	evictAfter    int
	spirv         bool
	label         string
	retireTimeout time.Duration
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		sampleCount:   DefaultSampleCount,
		presentMode:   PresentModeFifo,
		format:        gputypes.TextureFormatUndefined, // provider format, else BGRA8Unorm
		label:         "paper",
		retireTimeout: DefaultRetireTimeout,
	}
}

// WithSampleCount sets the MSAA sample count. 1 disables multisampling
// and draws straight into the surface image. Zero is ignored.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		if n > 0 {
			o.sampleCount = n
		}
	}
}

// WithPresentMode sets the surface present mode.
func WithPresentMode(m PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}

// WithFormat sets the surface color format. By default the format comes
// from the device provider's SurfaceFormat, falling back to BGRA8Unorm.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithSlotEviction destroys trailing cache slots once they have gone
// unused for frames consecutive frames. Zero, the default, keeps every
// slot for the renderer's lifetime.
func WithSlotEviction(frames int) Option {
	return func(o *options) {
		o.evictAfter = max(frames, 0)
	}
}

// WithSPIRV compiles the primary shader to SPIR-V with naga instead of
// handing WGSL to the device.
func WithSPIRV() Option {
	return func(o *options) {
		o.spirv = true
	}
}

// WithLabel sets the prefix of GPU debug labels.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}

// WithRetireTimeout bounds how long a frame waits for the previous
// frame's GPU work before giving up with ErrGPUTimeout.
func WithRetireTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.retireTimeout = d
		}
	}
}
