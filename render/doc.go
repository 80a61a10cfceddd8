// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws paper frames on a GPU through the wgpu HAL.
//
// # Key Principle
//
// The renderer BORROWS a device and queue. It either receives them from a
// host application (New, NewFromProvider) or from OpenDevice, but it never
// destroys them. Everything the renderer creates itself (pipeline, render
// targets, per-slot buffers) is released by Renderer.Destroy.
//
// # Frame Flow
//
// Renderer.Render runs once per frame:
//
//  1. Acquire the next surface image.
//  2. Retire the previous submission (fence wait, free command buffer).
//  3. Optionally evict trailing idle slots.
//  4. Sync pass: ResourceCache.Sync for every renderable, in order.
//  5. Draw pass: one render pass, one indexed draw per non-empty slot.
//  6. Submit and present.
//
// # Resource Cache
//
// Slots are keyed by a renderable's position in the frame. A slot owns a
// uniform buffer with the model and view-projection matrices, its bind
// group, and a vertex and index buffer. Geometry buffers are rewritten in
// place while the byte length stays the same and reallocated otherwise.
// Scenes with stable geometry therefore allocate nothing after the first
// frame.
//
// # Errors
//
// Render errors are routed with Classify:
//
//	err := r.Render(frame)
//	switch render.Classify(err) {
//	case render.ErrorSurfaceLost:
//	    err = r.Recreate()
//	case render.ErrorTransient:
//	    // skip the frame
//	case render.ErrorFatal:
//	    return err
//	}
//
// # Headless Rendering
//
//	dev, _ := render.OpenDevice(render.BackendNoop)
//	defer dev.Close()
//	surface := render.NewOffscreenSurface()
//	r, _ := render.NewFromProvider(dev, surface, 800, 600)
//	defer r.Destroy()
//	_ = r.Render(frame)
//	_ = r.Flush()
//	img, _ := surface.Snapshot(r.Queue())
package render
