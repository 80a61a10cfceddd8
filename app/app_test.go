// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/paper"
	"github.com/gogpu/paper/render"
	"github.com/gogpu/wgpu/hal"
)

func openNoop(t *testing.T) *render.HALDevice {
	t.Helper()
	dev, err := render.OpenDevice(render.BackendNoop)
	if err != nil {
		t.Fatalf("OpenDevice failed: %v", err)
	}
	t.Cleanup(dev.Close)
	return dev
}

// flakySurface fails Acquire with scripted errors.
type flakySurface struct {
	*render.OffscreenSurface
	errs []error
}

func (s *flakySurface) Acquire() (hal.TextureView, error) {
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	return s.OffscreenSurface.Acquire()
}

// flakyWindow is a HeadlessWindow presenting through a flakySurface.
type flakyWindow struct {
	*HeadlessWindow
	surface *flakySurface
}

func (w *flakyWindow) Surface() render.Surface { return w.surface }

func newFlakyWindow(t *testing.T, errs ...error) *flakyWindow {
	hw := NewHeadlessWindow(openNoop(t), 64, 48)
	return &flakyWindow{
		HeadlessWindow: hw,
		surface:        &flakySurface{OffscreenSurface: hw.Offscreen(), errs: errs},
	}
}

// countingState draws one triangle and counts calls.
type countingState struct {
	draws   int
	aspects []float32
}

func (s *countingState) Draw(f *paper.Frame) {
	s.draws++
	s.aspects = append(s.aspects, f.Aspect())
	m := paper.NewMesh(3, 3)
	m.AddVertex(mgl32.Vec3{0, 0.5, 0}, paper.Red)
	m.AddVertex(mgl32.Vec3{-0.5, -0.5, 0}, paper.Red)
	m.AddVertex(mgl32.Vec3{0.5, -0.5, 0}, paper.Red)
	m.AddTriangle(0, 1, 2)
	camera := paper.DefaultOrthographicCamera()
	f.DrawMesh(m, mgl32.Ident4(), &camera)
}

func testConfig() Config {
	return DefaultConfig().WithRenderOptions(render.WithSampleCount(1))
}

func TestRunFrames(t *testing.T) {
	win := NewHeadlessWindow(openNoop(t), 64, 32)
	win.RequestFrames(3)
	state := &countingState{}
	a := New(testConfig())

	if err := a.Run(context.Background(), win, state); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if a.Frames() != 3 || a.Dropped() != 0 {
		t.Errorf("Frames() = %d, Dropped() = %d, want 3, 0", a.Frames(), a.Dropped())
	}
	if state.draws != 3 {
		t.Errorf("Draw called %d times, want 3", state.draws)
	}
	if state.aspects[0] != 2 {
		t.Errorf("frame aspect = %v, want 2", state.aspects[0])
	}
	if win.Offscreen().Presented() != 3 {
		t.Errorf("Presented() = %d, want 3", win.Offscreen().Presented())
	}
}

func TestRunResize(t *testing.T) {
	win := NewHeadlessWindow(openNoop(t), 64, 32)
	win.RequestFrames(1)
	win.Resize(0, 0) // minimized
	win.Resize(100, 100)
	win.RequestFrames(1)
	state := &countingState{}
	a := New(testConfig())

	var sizes [][2]uint32
	a.OnFrame(func(r *render.Renderer) {
		w, h := r.Size()
		sizes = append(sizes, [2]uint32{w, h})
	})
	if err := a.Run(context.Background(), win, state); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := [][2]uint32{{64, 32}, {100, 100}}
	if len(sizes) != 2 || sizes[0] != want[0] || sizes[1] != want[1] {
		t.Errorf("frame sizes = %v, want %v", sizes, want)
	}
	if state.aspects[1] != 1 {
		t.Errorf("aspect after resize = %v, want 1", state.aspects[1])
	}
}

func TestRunScaleFactor(t *testing.T) {
	win := NewHeadlessWindow(openNoop(t), 64, 32)
	win.Push(Event{Kind: EventScaleFactor, Width: 128, Height: 64, ScaleFactor: 2})
	win.RequestFrames(1)
	a := New(testConfig())

	var w, h uint32
	a.OnFrame(func(r *render.Renderer) { w, h = r.Size() })
	if err := a.Run(context.Background(), win, &countingState{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if w != 128 || h != 64 {
		t.Errorf("size = %dx%d, want 128x64", w, h)
	}
}

func TestRunErrorPolicy(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantFatal   bool
		wantFrames  uint64
		wantDropped uint64
	}{
		{"surface lost recreates", fmt.Errorf("swapchain: %w", render.ErrSurfaceLost), false, 2, 1},
		{"timeout drops frame", render.ErrSurfaceTimeout, false, 2, 1},
		{"outdated drops frame", render.ErrSurfaceOutdated, false, 2, 1},
		{"unknown drops frame", errors.New("driver hiccup"), false, 2, 1},
		{"out of memory stops", render.ErrOutOfMemory, true, 0, 0},
		{"device lost stops", render.ErrDeviceLost, true, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			win := newFlakyWindow(t, tt.err)
			win.RequestFrames(3)
			a := New(testConfig())

			err := a.Run(context.Background(), win, &countingState{})
			if tt.wantFatal {
				if !errors.Is(err, tt.err) || !render.IsFatal(err) {
					t.Fatalf("Run = %v, want fatal %v", err, tt.err)
				}
			} else if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if a.Frames() != tt.wantFrames || a.Dropped() != tt.wantDropped {
				t.Errorf("Frames() = %d, Dropped() = %d, want %d, %d",
					a.Frames(), a.Dropped(), tt.wantFrames, tt.wantDropped)
			}
		})
	}
}

func TestRunContextCanceled(t *testing.T) {
	win := NewHeadlessWindow(openNoop(t), 16, 16)
	win.RequestFrames(5)
	ctx, cancel := context.WithCancel(context.Background())
	a := New(testConfig())
	a.OnFrame(func(*render.Renderer) { cancel() })

	if err := a.Run(ctx, win, &countingState{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if a.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", a.Frames())
	}
}

func TestRunErrors(t *testing.T) {
	a := New(testConfig())
	if err := a.Run(context.Background(), nil, nil); !errors.Is(err, ErrNilWindow) {
		t.Errorf("nil window: %v, want ErrNilWindow", err)
	}

	win := NewHeadlessWindow(nil, 16, 16)
	if err := a.Run(context.Background(), win, nil); !errors.Is(err, render.ErrNilProvider) {
		t.Errorf("nil provider: %v, want ErrNilProvider", err)
	}
}

func TestRunDefaultSize(t *testing.T) {
	win := NewHeadlessWindow(openNoop(t), 0, 0)
	win.RequestFrames(1)
	a := New(testConfig().WithSize(40, 20))

	var w, h uint32
	a.OnFrame(func(r *render.Renderer) { w, h = r.Size() })
	if err := a.Run(context.Background(), win, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if w != 40 || h != 20 {
		t.Errorf("size = %dx%d, want config size 40x20", w, h)
	}
}

func TestRunSnapshotInHook(t *testing.T) {
	win := NewHeadlessWindow(openNoop(t), 32, 16)
	win.RequestFrames(1)
	a := New(testConfig())

	var bounds [2]int
	a.OnFrame(func(r *render.Renderer) {
		img, err := win.Offscreen().Snapshot(r.Queue())
		if err != nil {
			t.Errorf("Snapshot failed: %v", err)
			return
		}
		bounds = [2]int{img.Bounds().Dx(), img.Bounds().Dy()}
	})
	if err := a.Run(context.Background(), win, &countingState{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if bounds != [2]int{32, 16} {
		t.Errorf("snapshot size = %v, want [32 16]", bounds)
	}
}

func TestStateFunc(t *testing.T) {
	called := false
	var s State = StateFunc(func(*paper.Frame) { called = true })
	s.Draw(paper.NewFrame(1))
	if !called {
		t.Error("StateFunc not called")
	}
}
