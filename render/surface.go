// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/paper"
	"github.com/gogpu/wgpu/hal"
)

// PresentMode selects how presented images are queued for display.
type PresentMode uint8

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota

	// PresentModeMailbox replaces the queued image without tearing.
	PresentModeMailbox

	// PresentModeImmediate presents without waiting and may tear.
	PresentModeImmediate
)

// String returns the mode name.
func (m PresentMode) String() string {
	switch m {
	case PresentModeFifo:
		return "Fifo"
	case PresentModeMailbox:
		return "Mailbox"
	case PresentModeImmediate:
		return "Immediate"
	default:
		return fmt.Sprintf("PresentMode(%d)", uint8(m))
	}
}

// SurfaceConfig is the configuration applied to a Surface. It is the
// single source of truth for render target sizing.
type SurfaceConfig struct {
	Format      gputypes.TextureFormat
	Width       uint32
	Height      uint32
	PresentMode PresentMode
}

// Surface is a presentation target the renderer draws into once per frame.
//
// Errors returned by Acquire and Present should wrap ErrSurfaceLost,
// ErrSurfaceOutdated, ErrSurfaceTimeout or ErrOutOfMemory so that the
// frame error policy can classify them.
type Surface interface {
	// Configure (re)creates the surface images with cfg.
	Configure(device hal.Device, cfg SurfaceConfig) error

	// Unconfigure releases the surface images.
	Unconfigure(device hal.Device)

	// Acquire returns a view of the next image to draw into.
	Acquire() (hal.TextureView, error)

	// Present queues the acquired image for display.
	Present(queue hal.Queue) error

	// Discard releases the acquired image without presenting it.
	Discard()
}

// SurfaceState is the presentation lifecycle state.
type SurfaceState uint8

const (
	// SurfaceUnconfigured is the state before the first Configure.
	SurfaceUnconfigured SurfaceState = iota

	// SurfaceConfigured is the steady state.
	SurfaceConfigured

	// SurfaceResizing is held while a resize reconfigures the surface.
	SurfaceResizing

	// SurfaceLost means acquisition reported a lost surface.
	SurfaceLost
)

// String returns the state name.
func (s SurfaceState) String() string {
	switch s {
	case SurfaceUnconfigured:
		return "Unconfigured"
	case SurfaceConfigured:
		return "Configured"
	case SurfaceResizing:
		return "Resizing"
	case SurfaceLost:
		return "Lost"
	default:
		return "Unknown"
	}
}

// presentation tracks a Surface together with its last configuration and
// lifecycle state.
type presentation struct {
	surface  Surface
	config   SurfaceConfig
	state    SurfaceState
	acquired bool
}

// configure applies p.config to the surface.
func (p *presentation) configure(device hal.Device) error {
	if err := p.surface.Configure(device, p.config); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", p.config.Width, p.config.Height, err)
	}
	p.state = SurfaceConfigured
	paper.Logger().Info("render: surface configured",
		"width", p.config.Width, "height", p.config.Height,
		"format", p.config.Format, "present_mode", p.config.PresentMode)
	return nil
}

// resize moves through Resizing to Configured with the new dimensions.
// Zero dimensions and the current size are ignored; resized reports
// whether the configuration changed.
func (p *presentation) resize(device hal.Device, w, h uint32) (resized bool, err error) {
	if w == 0 || h == 0 {
		return false, nil
	}
	if w == p.config.Width && h == p.config.Height && p.state == SurfaceConfigured {
		return false, nil
	}
	p.state = SurfaceResizing
	p.config.Width = w
	p.config.Height = h
	if err := p.configure(device); err != nil {
		return false, err
	}
	return true, nil
}

// recreate reconfigures the surface with the last known configuration.
func (p *presentation) recreate(device hal.Device) error {
	p.discard()
	p.surface.Unconfigure(device)
	return p.configure(device)
}

// acquire returns the next surface image. A lost surface moves the state
// to Lost.
func (p *presentation) acquire() (hal.TextureView, error) {
	if p.state == SurfaceLost {
		return nil, fmt.Errorf("acquire: %w", ErrSurfaceLost)
	}
	view, err := p.surface.Acquire()
	if err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			p.state = SurfaceLost
		}
		return nil, fmt.Errorf("acquire: %w", err)
	}
	p.acquired = true
	return view, nil
}

// present queues the acquired image.
func (p *presentation) present(queue hal.Queue) error {
	p.acquired = false
	if err := p.surface.Present(queue); err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			p.state = SurfaceLost
		}
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

// discard releases an acquired image, if any.
func (p *presentation) discard() {
	if p.acquired {
		p.surface.Discard()
		p.acquired = false
	}
}
