// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/paper/render"
)

// EventKind identifies a window event.
type EventKind uint8

const (
	// EventRedraw requests a new frame.
	EventRedraw EventKind = iota

	// EventResize reports a new surface size in Width and Height.
	EventResize

	// EventScaleFactor reports a DPI change. Width and Height carry the
	// new surface size.
	EventScaleFactor

	// EventClose requests the application to stop.
	EventClose
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventRedraw:
		return "Redraw"
	case EventResize:
		return "Resize"
	case EventScaleFactor:
		return "ScaleFactor"
	case EventClose:
		return "Close"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is a window event.
type Event struct {
	Kind EventKind

	// Width and Height are set for EventResize and EventScaleFactor.
	Width, Height uint32

	// ScaleFactor is set for EventScaleFactor.
	ScaleFactor float64
}

// Window is the host window an App renders into.
type Window interface {
	// Provider returns the GPU device shared with the renderer.
	Provider() gpucontext.DeviceProvider

	// Surface returns the presentation surface of the window.
	Surface() render.Surface

	// Size returns the current surface size in pixels.
	Size() (width, height uint32)

	// PollEvent blocks until the next event. It returns false once the
	// window is gone.
	PollEvent() (Event, bool)
}

// HeadlessWindow is a Window without a display. It renders into a
// render.OffscreenSurface and replays a scripted event queue. Once the
// queue is empty it reports EventClose.
//
// HeadlessWindow is NOT safe for concurrent use.
type HeadlessWindow struct {
	provider gpucontext.DeviceProvider
	surface  *render.OffscreenSurface
	width    uint32
	height   uint32
	events   []Event
}

// NewHeadlessWindow creates a headless window of the given size on the
// device from provider.
func NewHeadlessWindow(provider gpucontext.DeviceProvider, width, height uint32) *HeadlessWindow {
	return &HeadlessWindow{
		provider: provider,
		surface:  render.NewOffscreenSurface(),
		width:    width,
		height:   height,
	}
}

// Provider implements Window.
func (w *HeadlessWindow) Provider() gpucontext.DeviceProvider { return w.provider }

// Surface implements Window.
func (w *HeadlessWindow) Surface() render.Surface { return w.surface }

// Offscreen returns the backing surface, for Snapshot.
func (w *HeadlessWindow) Offscreen() *render.OffscreenSurface { return w.surface }

// Size implements Window.
func (w *HeadlessWindow) Size() (width, height uint32) { return w.width, w.height }

// Pending returns the number of queued events.
func (w *HeadlessWindow) Pending() int { return len(w.events) }

// Push queues events.
func (w *HeadlessWindow) Push(events ...Event) {
	w.events = append(w.events, events...)
}

// RequestFrames queues n redraw events.
func (w *HeadlessWindow) RequestFrames(n int) {
	for i := 0; i < n; i++ {
		w.events = append(w.events, Event{Kind: EventRedraw})
	}
}

// Resize queues a resize event.
func (w *HeadlessWindow) Resize(width, height uint32) {
	w.Push(Event{Kind: EventResize, Width: width, Height: height})
}

// PollEvent implements Window. The window size follows delivered resize
// events.
func (w *HeadlessWindow) PollEvent() (Event, bool) {
	if len(w.events) == 0 {
		return Event{Kind: EventClose}, true
	}
	ev := w.events[0]
	w.events = w.events[1:]
	if (ev.Kind == EventResize || ev.Kind == EventScaleFactor) && ev.Width > 0 && ev.Height > 0 {
		w.width, w.height = ev.Width, ev.Height
	}
	return ev, true
}
