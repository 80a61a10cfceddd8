// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package app runs a paper State against a window.
//
// The window supplies a GPU device provider, a presentation surface and a
// stream of events. App creates a render.Renderer on the shared device and
// drives it from those events:
//
//   - EventRedraw: build a paper.Frame with State.Draw and render it
//   - EventResize, EventScaleFactor: resize the renderer
//   - EventClose: stop and release GPU resources
//
// Render errors follow a fixed policy. A lost surface is recreated and the
// loop continues. Out-of-memory, allocation and device-loss errors end Run.
// Everything else drops the frame with a warning.
//
// # Usage
//
//	dev, _ := render.OpenDevice(render.BackendVulkan)
//	defer dev.Close()
//
//	win := app.NewHeadlessWindow(dev, 500, 500)
//	win.RequestFrames(60)
//
//	a := app.New(app.DefaultConfig().WithTitle("logo"))
//	err := a.Run(ctx, win, app.StateFunc(func(f *paper.Frame) {
//	    f.DrawShape(logo, model, &camera)
//	}))
//
// # Thread Safety
//
// App is NOT safe for concurrent use. Run blocks the calling goroutine and
// observes ctx between events only.
package app
