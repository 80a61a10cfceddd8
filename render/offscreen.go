// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// snapshotTimeout bounds the wait for a readback copy.
const snapshotTimeout = 5 * time.Second

// OffscreenSurface is a Surface backed by a single texture owned by the
// surface itself. It is used for headless rendering and tests, and can
// read its last presented image back to the CPU with Snapshot.
//
// OffscreenSurface is not safe for concurrent use.
type OffscreenSurface struct {
	device    hal.Device
	tex       hal.Texture
	view      hal.TextureView
	config    SurfaceConfig
	acquired  bool
	presented uint64
}

// NewOffscreenSurface creates an unconfigured offscreen surface.
func NewOffscreenSurface() *OffscreenSurface {
	return &OffscreenSurface{}
}

// Configure creates the backing texture for cfg, replacing any previous one.
func (s *OffscreenSurface) Configure(device hal.Device, cfg SurfaceConfig) error {
	s.Unconfigure(device)
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: zero size %dx%d", ErrNotConfigured, cfg.Width, cfg.Height)
	}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_color",
		Size:          hal.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cfg.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("%w: create offscreen texture: %w", ErrOutOfMemory, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "offscreen_color_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("%w: create offscreen view: %w", ErrOutOfMemory, err)
	}

	s.device = device
	s.tex = tex
	s.view = view
	s.config = cfg
	return nil
}

// Unconfigure releases the backing texture.
func (s *OffscreenSurface) Unconfigure(device hal.Device) {
	if s.view != nil {
		device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		device.DestroyTexture(s.tex)
		s.tex = nil
	}
	s.acquired = false
}

// Acquire returns the backing texture view.
func (s *OffscreenSurface) Acquire() (hal.TextureView, error) {
	if s.view == nil {
		return nil, ErrNotConfigured
	}
	if s.acquired {
		return nil, ErrAlreadyAcquired
	}
	s.acquired = true
	return s.view, nil
}

// Present marks the acquired image as presented.
func (s *OffscreenSurface) Present(hal.Queue) error {
	if !s.acquired {
		return ErrNotAcquired
	}
	s.acquired = false
	s.presented++
	return nil
}

// Discard releases the acquired image without presenting it.
func (s *OffscreenSurface) Discard() {
	s.acquired = false
}

// Config returns the current configuration.
func (s *OffscreenSurface) Config() SurfaceConfig { return s.config }

// Presented returns how many images have been presented.
func (s *OffscreenSurface) Presented() uint64 { return s.presented }

// Snapshot copies the backing texture to the CPU and returns it as RGBA.
// It submits its own copy and blocks until the GPU finishes, so it must
// not be called between Acquire and Present.
func (s *OffscreenSurface) Snapshot(queue hal.Queue) (*image.RGBA, error) {
	if s.tex == nil {
		return nil, ErrNotConfigured
	}
	if s.acquired {
		return nil, ErrAlreadyAcquired
	}
	device := s.device
	w, h := s.config.Width, s.config.Height

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer device.DestroyBuffer(staging)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "offscreen_snapshot_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_snapshot"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(s.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	fence, err := device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer device.DestroyFence(fence)

	if err := queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := device.Wait(fence, 1, snapshotTimeout)
	if err != nil {
		return nil, fmt.Errorf("wait for snapshot: %w", err)
	}
	if !fenceOK {
		return nil, fmt.Errorf("wait for snapshot: %w", ErrGPUTimeout)
	}

	readback := make([]byte, stagingSize)
	if err := queue.ReadBuffer(staging, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	swizzle := s.config.Format == gputypes.TextureFormatBGRA8Unorm ||
		s.config.Format == gputypes.TextureFormatBGRA8UnormSrgb
	for row := 0; row < int(h); row++ {
		src := readback[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		copy(dst, src)
		if swizzle {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return img, nil
}
