// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shape generates paper meshes for common 2D geometry.
//
// Every shape implements paper.Shape: Generate builds a fresh mesh using
// the frame's paper.Config, whose Resolution bounds the chord length used
// to approximate curves. Shapes lie in the z = 0 plane and are placed by
// the model matrix passed to paper.Frame.DrawShape.
//
// Basic shapes:
//
//   - Rect: axis-aligned rectangle
//   - Circle: filled disc, segment count derived from Resolution
//   - Polygon: convex polygon, triangulated as a fan
//   - Stroke: polyline thickened into quads with bevel joins
//   - Group: several shapes combined into one mesh
//
// Path builds polylines the way a turtle walks: straight lines, forward
// steps along the current heading and circular turns. Text lays out a
// string with HarfBuzz shaping and strokes the glyph contours.
//
// Example:
//
//	path := shape.Line(mgl32.Vec2{0, -1}, mgl32.Vec2{-0.7, -0.7}).
//	    Turn(1, -1.5*math.Pi).
//	    Forward(0.1)
//	frame.DrawShape(path.Stroke(0.6, paper.Blue), model, &camera)
package shape
