// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import "github.com/go-gl/mathgl/mgl32"

// ScaleMode controls how an OrthographicCamera adapts its projection to
// the surface aspect ratio.
type ScaleMode uint8

const (
	// ScaleAspect keeps Size world units across the shorter axis and widens
	// the other axis by the aspect ratio. This is the default.
	ScaleAspect ScaleMode = iota

	// ScaleNone uses Left, Right, Bottom and Top as given.
	ScaleNone

	// ScaleFixedVertical keeps Size world units vertically.
	ScaleFixedVertical

	// ScaleFixedHorizontal keeps Size world units horizontally.
	ScaleFixedHorizontal
)

// String returns the mode name.
func (m ScaleMode) String() string {
	switch m {
	case ScaleAspect:
		return "Aspect"
	case ScaleNone:
		return "None"
	case ScaleFixedVertical:
		return "FixedVertical"
	case ScaleFixedHorizontal:
		return "FixedHorizontal"
	default:
		return "Unknown"
	}
}

// OrthographicCamera produces a right-handed orthographic projection with
// a [0, 1] depth range, positioned by Transform.
type OrthographicCamera struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32

	// Size is the extent in world units of the axis fixed by ScaleMode.
	Size      float32
	ScaleMode ScaleMode
	Transform Transform
}

// DefaultOrthographicCamera returns a camera spanning [-1, 1] on both axes
// with a deep [-500, 500] depth range and aspect scaling.
func DefaultOrthographicCamera() OrthographicCamera {
	return OrthographicCamera{
		Left:      -1,
		Right:     1,
		Bottom:    -1,
		Top:       1,
		Near:      -500,
		Far:       500,
		Size:      2,
		ScaleMode: ScaleAspect,
		Transform: Identity(),
	}
}

// Bounds returns the left, right, bottom and top planes for the given
// width/height aspect ratio.
func (c *OrthographicCamera) Bounds(aspect float32) (left, right, bottom, top float32) {
	if aspect <= 0 {
		aspect = 1
	}
	half := c.Size / 2
	switch c.ScaleMode {
	case ScaleAspect:
		if aspect >= 1 {
			return -half * aspect, half * aspect, -half, half
		}
		return -half, half, -half / aspect, half / aspect
	case ScaleFixedVertical:
		return -half * aspect, half * aspect, -half, half
	case ScaleFixedHorizontal:
		return -half, half, -half / aspect, half / aspect
	default:
		return c.Left, c.Right, c.Bottom, c.Top
	}
}

// Projection returns the projection matrix for the given aspect ratio.
func (c *OrthographicCamera) Projection(aspect float32) mgl32.Mat4 {
	l, r, b, t := c.Bounds(aspect)
	return orthographic(l, r, b, t, c.Near, c.Far)
}

// View returns the camera's world placement matrix.
func (c *OrthographicCamera) View() mgl32.Mat4 {
	return c.Transform.Matrix()
}

// ViewProjection returns Projection(aspect) multiplied by the inverse of
// the camera placement. This is the matrix the renderer uploads.
func (c *OrthographicCamera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View().Inv())
}

// orthographic builds a right-handed orthographic projection mapping
// z = -near to depth 0 and z = -far to depth 1.
func orthographic(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rw := 1 / (right - left)
	rh := 1 / (top - bottom)
	r := 1 / (near - far)
	return mgl32.Mat4{
		2 * rw, 0, 0, 0,
		0, 2 * rh, 0, 0,
		0, 0, r, 0,
		-(left + right) * rw, -(top + bottom) * rh, r * near, 1,
	}
}
