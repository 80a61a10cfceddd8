// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/paper"
	"github.com/gogpu/paper/render"
)

// ErrNilWindow is returned by Run when no window is given.
var ErrNilWindow = errors.New("app: nil window")

// State draws the application into a frame once per redraw.
type State interface {
	Draw(frame *paper.Frame)
}

// StateFunc adapts a function to the State interface.
type StateFunc func(frame *paper.Frame)

// Draw calls f(frame).
func (f StateFunc) Draw(frame *paper.Frame) { f(frame) }

// FrameHook is called after every presented frame.
type FrameHook func(r *render.Renderer)

// App runs a State in a Window.
type App struct {
	cfg     Config
	onFrame FrameHook

	frames  uint64
	dropped uint64
}

// New creates an application with cfg.
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Config returns the application configuration.
func (a *App) Config() Config { return a.cfg }

// OnFrame sets a hook called after every presented frame, while the
// renderer is still alive.
func (a *App) OnFrame(fn FrameHook) { a.onFrame = fn }

// Frames returns the number of presented frames.
func (a *App) Frames() uint64 { return a.frames }

// Dropped returns the number of frames skipped on transient errors.
func (a *App) Dropped() uint64 { return a.dropped }

// Run creates a renderer for w and processes its events until EventClose,
// the window goes away, ctx is done, or a fatal render error occurs.
// GPU resources created by Run are released before it returns.
func (a *App) Run(ctx context.Context, w Window, state State) error {
	if w == nil {
		return ErrNilWindow
	}
	width, height := w.Size()
	if width == 0 || height == 0 {
		width, height = a.cfg.Width, a.cfg.Height
	}

	r, err := render.NewFromProvider(w.Provider(), w.Surface(), width, height, a.cfg.RenderOptions...)
	if err != nil {
		return fmt.Errorf("app: create renderer: %w", err)
	}
	defer r.Destroy()

	log := paper.Logger()
	log.Info("app: running", "title", a.cfg.Title, "width", width, "height", height)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, ok := w.PollEvent()
		if !ok {
			return nil
		}
		switch ev.Kind {
		case EventClose:
			log.Info("app: closing", "frames", a.frames, "dropped", a.dropped)
			return nil
		case EventResize, EventScaleFactor:
			if err := r.Resize(ev.Width, ev.Height); err != nil {
				if render.IsFatal(err) {
					log.Error("app: resize failed", "error", err)
					return fmt.Errorf("app: resize: %w", err)
				}
				log.Warn("app: resize failed", "error", err)
			}
		case EventRedraw:
			if err := a.redraw(r, state); err != nil {
				return err
			}
		}
	}
}

// redraw renders one frame and applies the frame error policy.
func (a *App) redraw(r *render.Renderer, state State) error {
	frame := paper.NewFrame(r.Aspect())
	if state != nil {
		state.Draw(frame)
	}

	err := r.Render(frame)
	log := paper.Logger()
	switch render.Classify(err) {
	case render.ErrorNone:
		a.frames++
		if a.onFrame != nil {
			a.onFrame(r)
		}
	case render.ErrorSurfaceLost:
		log.Warn("app: surface lost", "error", err)
		if rerr := r.Recreate(); rerr != nil {
			if render.IsFatal(rerr) {
				log.Error("app: surface recreation failed", "error", rerr)
				return fmt.Errorf("app: recreate surface: %w", rerr)
			}
			log.Warn("app: surface recreation failed", "error", rerr)
		}
		a.dropped++
	case render.ErrorFatal:
		log.Error("app: fatal render error", "error", err)
		return fmt.Errorf("app: render: %w", err)
	default:
		a.dropped++
		log.Warn("app: frame dropped", "error", err)
	}
	return nil
}
