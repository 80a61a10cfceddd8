// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/paper"
	"github.com/gogpu/wgpu/hal"
)

// depthFormat is the depth/stencil attachment format.
const depthFormat = gputypes.TextureFormatDepth24PlusStencil8

// renderTargets holds the multisampled color and depth/stencil textures
// the draw pass renders into. The multisampled color resolves into the
// surface texture. With a sample count of 1 no color texture is created
// and the pass draws into the surface texture directly.
type renderTargets struct {
	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView
	width     uint32
	height    uint32
	format    gputypes.TextureFormat
	samples   uint32
}

// ensure creates or recreates the textures if the requested dimensions,
// format or sample count differ from the current ones. If everything
// matches and textures exist, this is a no-op.
func (t *renderTargets) ensure(device hal.Device, w, h uint32, format gputypes.TextureFormat, samples uint32, label string) error {
	if t.depthTex != nil && t.width == w && t.height == h && t.format == format && t.samples == samples {
		return nil
	}
	t.destroy(device)

	size := hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1}

	if samples > 1 {
		colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
			Label:         label + "_msaa_color",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   samples,
			Dimension:     gputypes.TextureDimension2D,
			Format:        format,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			return fmt.Errorf("%w: create MSAA color texture: %w", ErrAllocation, err)
		}
		t.colorTex = colorTex

		colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
			Label: label + "_msaa_color_view",
		})
		if err != nil {
			t.destroy(device)
			return fmt.Errorf("%w: create MSAA color view: %w", ErrAllocation, err)
		}
		t.colorView = colorView
	}

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label + "_depth_stencil",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("%w: create depth/stencil texture: %w", ErrAllocation, err)
	}
	t.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: label + "_depth_stencil_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("%w: create depth/stencil view: %w", ErrAllocation, err)
	}
	t.depthView = depthView

	t.width = w
	t.height = h
	t.format = format
	t.samples = samples
	paper.Logger().Debug("render: targets rebuilt", "width", w, "height", h, "samples", samples)
	return nil
}

// matches reports whether complete targets exist at w x h.
func (t *renderTargets) matches(w, h uint32) bool {
	return t.depthView != nil && t.width == w && t.height == h
}

// colorAttachment returns the pass color attachment resolving into view.
func (t *renderTargets) colorAttachment(view hal.TextureView, clear gputypes.Color) hal.RenderPassColorAttachment {
	att := hal.RenderPassColorAttachment{
		View:       view,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: clear,
	}
	if t.colorView != nil {
		att.View = t.colorView
		att.ResolveTarget = view
	}
	return att
}

// depthAttachment returns the pass depth/stencil attachment, cleared to
// the farthest depth.
func (t *renderTargets) depthAttachment() *hal.RenderPassDepthStencilAttachment {
	return &hal.RenderPassDepthStencilAttachment{
		View:              t.depthView,
		DepthLoadOp:       gputypes.LoadOpClear,
		DepthStoreOp:      gputypes.StoreOpDiscard,
		DepthClearValue:   1.0,
		StencilLoadOp:     gputypes.LoadOpClear,
		StencilStoreOp:    gputypes.StoreOpDiscard,
		StencilClearValue: 0,
	}
}

// destroy releases all texture resources and resets dimensions.
func (t *renderTargets) destroy(device hal.Device) {
	if t.depthView != nil {
		device.DestroyTextureView(t.depthView)
		t.depthView = nil
	}
	if t.depthTex != nil {
		device.DestroyTexture(t.depthTex)
		t.depthTex = nil
	}
	if t.colorView != nil {
		device.DestroyTextureView(t.colorView)
		t.colorView = nil
	}
	if t.colorTex != nil {
		device.DestroyTexture(t.colorTex)
		t.colorTex = nil
	}
	t.width = 0
	t.height = 0
}
