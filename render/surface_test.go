// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"
)

func TestOffscreenSurfaceLifecycle(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s := NewOffscreenSurface()
	if _, err := s.Acquire(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Acquire before Configure = %v, want ErrNotConfigured", err)
	}
	if _, err := s.Snapshot(queue); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Snapshot before Configure = %v, want ErrNotConfigured", err)
	}

	cfg := SurfaceConfig{Format: bgra8, Width: 16, Height: 8}
	if err := s.Configure(device, cfg); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	defer s.Unconfigure(device)
	if s.Config() != cfg {
		t.Errorf("Config() = %+v, want %+v", s.Config(), cfg)
	}

	if err := s.Present(queue); !errors.Is(err, ErrNotAcquired) {
		t.Errorf("Present without Acquire = %v, want ErrNotAcquired", err)
	}
	if _, err := s.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if _, err := s.Acquire(); !errors.Is(err, ErrAlreadyAcquired) {
		t.Errorf("second Acquire = %v, want ErrAlreadyAcquired", err)
	}
	if _, err := s.Snapshot(queue); !errors.Is(err, ErrAlreadyAcquired) {
		t.Errorf("Snapshot while acquired = %v, want ErrAlreadyAcquired", err)
	}
	if err := s.Present(queue); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if s.Presented() != 1 {
		t.Errorf("Presented() = %d, want 1", s.Presented())
	}

	if _, err := s.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	s.Discard()
	if s.Presented() != 1 {
		t.Errorf("Discard counted as present")
	}

	img, err := s.Snapshot(queue)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Errorf("Snapshot bounds = %v, want 16x8", b)
	}
}

func TestOffscreenSurfaceZeroSize(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	s := NewOffscreenSurface()
	if err := s.Configure(device, SurfaceConfig{Format: bgra8, Width: 0, Height: 8}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Configure zero width = %v, want ErrNotConfigured", err)
	}
}

func TestPresentationResize(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	surface := newFaultySurface()
	defer surface.Unconfigure(device)
	p := presentation{surface: surface, config: SurfaceConfig{Format: bgra8, Width: 10, Height: 10}}
	if err := p.configure(device); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	tests := []struct {
		w, h        uint32
		wantResized bool
		wantW       uint32
	}{
		{0, 10, false, 10},
		{10, 0, false, 10},
		{10, 10, false, 10},
		{20, 10, true, 20},
	}
	for _, tt := range tests {
		resized, err := p.resize(device, tt.w, tt.h)
		if err != nil {
			t.Fatalf("resize(%d, %d) failed: %v", tt.w, tt.h, err)
		}
		if resized != tt.wantResized || p.config.Width != tt.wantW {
			t.Errorf("resize(%d, %d) = %v, width %d; want %v, %d",
				tt.w, tt.h, resized, p.config.Width, tt.wantResized, tt.wantW)
		}
		if p.state != SurfaceConfigured {
			t.Errorf("state = %v, want Configured", p.state)
		}
	}
	if surface.configures != 2 {
		t.Errorf("configures = %d, want 2", surface.configures)
	}
}

func TestPresentationAcquireLost(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	surface := newFaultySurface()
	defer surface.Unconfigure(device)
	surface.acquireErrs = []error{ErrSurfaceLost}
	p := presentation{surface: surface, config: SurfaceConfig{Format: bgra8, Width: 4, Height: 4}}
	if err := p.configure(device); err != nil {
		t.Fatalf("configure failed: %v", err)
	}

	if _, err := p.acquire(); !errors.Is(err, ErrSurfaceLost) {
		t.Fatalf("acquire = %v, want ErrSurfaceLost", err)
	}
	if p.state != SurfaceLost {
		t.Errorf("state = %v, want Lost", p.state)
	}
	if err := p.recreate(device); err != nil {
		t.Fatalf("recreate failed: %v", err)
	}
	if _, err := p.acquire(); err != nil {
		t.Fatalf("acquire after recreate failed: %v", err)
	}
	p.discard()
	if p.acquired {
		t.Error("discard left image acquired")
	}
}

func TestStateStrings(t *testing.T) {
	if SurfaceLost.String() != "Lost" || SurfaceResizing.String() != "Resizing" {
		t.Error("SurfaceState.String mismatch")
	}
	if PresentModeMailbox.String() != "Mailbox" || PresentMode(9).String() != "PresentMode(9)" {
		t.Error("PresentMode.String mismatch")
	}
}
