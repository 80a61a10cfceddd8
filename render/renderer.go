// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/paper"
	"github.com/gogpu/wgpu/hal"
)

// Renderer draws paper.Frame values into a Surface.
//
// Each Render call runs two passes over the frame's renderables in order.
// The sync pass brings cache slot i up to date with renderable i, doing
// every buffer upload and reallocation of the frame. The draw pass then
// records one render pass that binds slot i and issues its indexed draw.
// Both passes go into a single submission, so uploads are always visible
// to the draws that follow them.
//
// The device and queue are borrowed and never destroyed by the Renderer.
// Renderer is not safe for concurrent use and starts no goroutines.
type Renderer struct {
	device hal.Device
	queue  hal.Queue
	opts   options

	presentation presentation
	targets      renderTargets
	pipeline     *primaryPipeline
	cache        *ResourceCache

	// fence is signaled with fenceValue by the most recent submission.
	// inflight is that submission's command buffer, freed once the fence
	// passes.
	fence      hal.Fence
	fenceValue uint64
	inflight   hal.CommandBuffer

	frames    uint64
	stats     FrameStats
	destroyed bool
}

// New creates a renderer drawing into surface, configured at width x
// height. The surface is configured immediately.
func New(device hal.Device, queue hal.Queue, surface Surface, width, height uint32, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.format == gputypes.TextureFormatUndefined {
		o.format = gputypes.TextureFormatBGRA8Unorm
	}
	return newRenderer(device, queue, surface, width, height, o)
}

// NewFromProvider creates a renderer on a device shared by a host
// application. The provider's SurfaceFormat is used unless WithFormat is
// given.
func NewFromProvider(provider gpucontext.DeviceProvider, surface Surface, width, height uint32, opts ...Option) (*Renderer, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.format == gputypes.TextureFormatUndefined {
		o.format = provider.SurfaceFormat()
	}
	if o.format == gputypes.TextureFormatUndefined {
		o.format = gputypes.TextureFormatBGRA8Unorm
	}
	return newRenderer(device, queue, surface, width, height, o)
}

func newRenderer(device hal.Device, queue hal.Queue, surface Surface, width, height uint32, o options) (*Renderer, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("render: invalid initial size %dx%d", width, height)
	}
	r := &Renderer{
		device: device,
		queue:  queue,
		opts:   o,
		presentation: presentation{
			surface: surface,
			config: SurfaceConfig{
				Format:      o.format,
				Width:       width,
				Height:      height,
				PresentMode: o.presentMode,
			},
		},
	}

	pipeline, err := newPrimaryPipeline(device, pipelineConfig{
		format:  o.format,
		samples: o.sampleCount,
		spirv:   o.spirv,
		label:   o.label,
	})
	if err != nil {
		return nil, err
	}
	r.pipeline = pipeline
	r.cache = NewResourceCache(pipeline.uniformLayout)
	r.cache.label = o.label

	fence, err := device.CreateFence()
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("create fence: %w", err)
	}
	r.fence = fence

	if err := r.presentation.configure(device); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.targets.ensure(device, width, height, o.format, o.sampleCount, o.label); err != nil {
		r.Destroy()
		return nil, err
	}
	return r, nil
}

// Render draws frame and presents it.
//
// Errors wrap ErrSurfaceLost (call Recreate), ErrSurfaceOutdated,
// ErrSurfaceTimeout or ErrGPUTimeout (skip the frame), or ErrOutOfMemory,
// ErrAllocation or ErrDeviceLost (stop). Use Classify to route them.
// Buffer changes made by the sync pass stand even if a later step fails.
func (r *Renderer) Render(frame *paper.Frame) error {
	if r.destroyed {
		return ErrDestroyed
	}
	renderables := frame.Renderables()
	r.frames++
	stats := FrameStats{Frame: r.frames, Renderables: len(renderables)}
	r.stats = stats
	before := r.cache.Stats()

	// Targets follow the surface configuration. A rebuild that failed
	// during Resize is retried here.
	cfg := r.presentation.config
	if err := r.targets.ensure(r.device, cfg.Width, cfg.Height, r.opts.format, r.opts.sampleCount, r.opts.label); err != nil {
		return err
	}

	view, err := r.presentation.acquire()
	if err != nil {
		return err
	}

	if err := r.retire(); err != nil {
		r.presentation.discard()
		return err
	}

	if n := r.cache.Evict(r.device, r.opts.evictAfter); n > 0 {
		paper.Logger().Debug("render: slots evicted", "count", n, "remaining", r.cache.Len())
	}

	// Sync pass: every upload of the frame happens before any draw.
	for i := range renderables {
		rd := &renderables[i]
		if _, err := r.cache.Sync(r.device, r.queue, i, rd.Mesh, rd.Model, rd.ViewProj); err != nil {
			r.presentation.discard()
			stats.delta(before, r.cache.Stats())
			r.stats = stats
			return fmt.Errorf("sync renderable %d: %w", i, err)
		}
	}

	draws, err := r.encodeAndSubmit(view, frame, len(renderables))
	stats.delta(before, r.cache.Stats())
	stats.Draws = draws
	if err != nil {
		r.presentation.discard()
		r.stats = stats
		return err
	}
	stats.Submitted = true
	r.stats = stats
	r.cache.endFrame(len(renderables))

	return r.presentation.present(r.queue)
}

// encodeAndSubmit records the draw pass for the first n slots and submits
// it. It returns the number of draws recorded.
func (r *Renderer) encodeAndSubmit(view hal.TextureView, frame *paper.Frame, n int) (int, error) {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.opts.label + "_frame_encoder",
	})
	if err != nil {
		return 0, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(r.opts.label + "_frame"); err != nil {
		return 0, fmt.Errorf("begin encoding: %w", err)
	}

	clear := clearColor(paper.White)
	if frame != nil {
		clear = clearColor(frame.ClearColor)
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:                  r.opts.label + "_primary_pass",
		ColorAttachments:       []hal.RenderPassColorAttachment{r.targets.colorAttachment(view, clear)},
		DepthStencilAttachment: r.targets.depthAttachment(),
	})

	draws := 0
	if n > 0 {
		rp.SetPipeline(r.pipeline.pipeline)
		for i := 0; i < n; i++ {
			if r.cache.Slot(i).record(rp) {
				draws++
			}
		}
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return 0, fmt.Errorf("end encoding: %w", err)
	}

	r.fenceValue++
	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, r.fence, r.fenceValue); err != nil {
		r.device.FreeCommandBuffer(cmdBuf)
		return 0, fmt.Errorf("submit: %w", err)
	}
	r.inflight = cmdBuf
	return draws, nil
}

// retire waits for the previous submission and frees its command buffer.
// Buffers replaced or evicted after this point are no longer in use.
func (r *Renderer) retire() error {
	if r.inflight == nil {
		return nil
	}
	// Wait returns at once when the fence already holds fenceValue.
	// GetFenceStatus takes no value and cannot tell frames apart on a
	// reused fence.
	ok, err := r.device.Wait(r.fence, r.fenceValue, r.opts.retireTimeout)
	if err != nil {
		return fmt.Errorf("%w: wait for frame %d: %w", ErrDeviceLost, r.fenceValue, err)
	}
	if !ok {
		return fmt.Errorf("wait for frame %d: %w", r.fenceValue, ErrGPUTimeout)
	}
	r.device.FreeCommandBuffer(r.inflight)
	r.inflight = nil
	return nil
}

// Resize reconfigures the surface and rebuilds the render targets at
// width x height. Zero dimensions (a minimized window) and the current
// size are ignored. Cache slots are not affected.
func (r *Renderer) Resize(width, height uint32) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if width == 0 || height == 0 {
		return nil
	}
	if width == r.presentation.config.Width && height == r.presentation.config.Height &&
		r.presentation.state == SurfaceConfigured && r.targets.matches(width, height) {
		return nil
	}
	if err := r.retire(); err != nil {
		return err
	}
	if _, err := r.presentation.resize(r.device, width, height); err != nil {
		return err
	}
	return r.targets.ensure(r.device, width, height, r.opts.format, r.opts.sampleCount, r.opts.label)
}

// Recreate reconfigures a lost surface with its last known configuration.
// Render targets are kept since the size did not change.
func (r *Renderer) Recreate() error {
	if r.destroyed {
		return ErrDestroyed
	}
	if err := r.retire(); err != nil {
		return err
	}
	paper.Logger().Warn("render: recreating surface",
		"width", r.presentation.config.Width, "height", r.presentation.config.Height)
	return r.presentation.recreate(r.device)
}

// Size returns the configured surface size.
func (r *Renderer) Size() (width, height uint32) {
	return r.presentation.config.Width, r.presentation.config.Height
}

// TargetSize returns the size of the render targets.
func (r *Renderer) TargetSize() (width, height uint32) {
	return r.targets.width, r.targets.height
}

// Aspect returns the surface width/height ratio.
func (r *Renderer) Aspect() float32 {
	w, h := r.Size()
	if h == 0 {
		return 1
	}
	return float32(w) / float32(h)
}

// Format returns the surface color format.
func (r *Renderer) Format() gputypes.TextureFormat { return r.opts.format }

// SampleCount returns the MSAA sample count.
func (r *Renderer) SampleCount() uint32 { return r.opts.sampleCount }

// SurfaceConfig returns the last applied surface configuration.
func (r *Renderer) SurfaceConfig() SurfaceConfig { return r.presentation.config }

// SurfaceState returns the presentation lifecycle state.
func (r *Renderer) SurfaceState() SurfaceState { return r.presentation.state }

// Cache returns the renderer's resource cache.
func (r *Renderer) Cache() *ResourceCache { return r.cache }

// Stats returns statistics for the last Render call.
func (r *Renderer) Stats() FrameStats { return r.stats }

// Device returns the borrowed HAL device.
func (r *Renderer) Device() hal.Device { return r.device }

// Queue returns the borrowed HAL queue.
func (r *Renderer) Queue() hal.Queue { return r.queue }

// Flush waits for the last submitted frame to finish on the GPU.
func (r *Renderer) Flush() error {
	if r.destroyed {
		return nil
	}
	return r.retire()
}

// Destroy waits for outstanding GPU work and releases every resource the
// renderer created. The surface is unconfigured; the device and queue are
// left to their owner. Safe to call multiple times.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	if err := r.retire(); err != nil {
		paper.Logger().Warn("render: destroy without GPU idle", "error", err)
	}
	if r.inflight != nil {
		r.device.FreeCommandBuffer(r.inflight)
		r.inflight = nil
	}
	r.presentation.discard()
	if r.cache != nil {
		r.cache.Destroy(r.device)
	}
	r.targets.destroy(r.device)
	if r.pipeline != nil {
		r.pipeline.destroy(r.device)
		r.pipeline = nil
	}
	if r.presentation.state != SurfaceUnconfigured {
		r.presentation.surface.Unconfigure(r.device)
		r.presentation.state = SurfaceUnconfigured
	}
	if r.fence != nil {
		r.device.DestroyFence(r.fence)
		r.fence = nil
	}
}

// clearColor converts a paper color to a pass clear value. Straight alpha
// is premultiplied to match the blend state.
func clearColor(c paper.Color) gputypes.Color {
	p := c.Premultiplied()
	return gputypes.Color{R: float64(p[0]), G: float64(p[1]), B: float64(p[2]), A: float64(p[3])}
}
