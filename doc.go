// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package paper provides a minimal retained-geometry 2D/UI renderer on
// top of WebGPU.
//
// # Overview
//
// Each frame the application fills a [Frame] with renderables (a triangle
// [Mesh], a model matrix and a view-projection matrix) and hands it to
// render.Renderer. The renderer keeps one GPU slot per draw position and
// reuses vertex, index and uniform buffers across frames whenever the
// geometry size is unchanged, so a scene that looks the same every frame
// costs only buffer writes.
//
// # Quick Start
//
//	cam := paper.DefaultOrthographicCamera()
//	frame := paper.NewFrame(renderer.Aspect())
//	frame.DrawShape(shape.Circle{Radius: 0.5, Color: paper.Red},
//	    paper.Identity().Matrix(), &cam)
//	if err := renderer.Render(frame); err != nil {
//	    // classify with render.Classify
//	}
//
// The app package wraps this loop with window events and the frame error
// policy.
//
// # Coordinates
//
// Matrices are column-major [mgl32.Mat4] values. [OrthographicCamera]
// produces a right-handed projection with a [0, 1] depth range.
//
// # Logging
//
// paper is silent by default. Call [SetLogger] to route diagnostics from
// all sub-packages to a *slog.Logger.
package paper
