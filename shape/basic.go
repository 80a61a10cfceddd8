// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/paper"
)

// Segment limits for curve approximation.
const (
	minCircleSegments = 8
	maxCircleSegments = 1024
)

// Rect is an axis-aligned filled rectangle.
type Rect struct {
	Min, Max mgl32.Vec2
	Color    paper.Color
}

// NewRect returns a rectangle centered at center with the given size.
func NewRect(center, size mgl32.Vec2, c paper.Color) Rect {
	half := size.Mul(0.5)
	return Rect{Min: center.Sub(half), Max: center.Add(half), Color: c}
}

// Generate implements paper.Shape.
func (r Rect) Generate(paper.Config) *paper.Mesh {
	m := paper.NewMesh(4, 6)
	a := m.AddVertex(vec3(r.Min), r.Color)
	b := m.AddVertex(mgl32.Vec3{r.Max.X(), r.Min.Y(), 0}, r.Color)
	c := m.AddVertex(vec3(r.Max), r.Color)
	d := m.AddVertex(mgl32.Vec3{r.Min.X(), r.Max.Y(), 0}, r.Color)
	m.AddTriangle(a, b, c)
	m.AddTriangle(a, c, d)
	return m
}

// Circle is a filled disc.
type Circle struct {
	Center mgl32.Vec2
	Radius float32
	Color  paper.Color
}

// Segments returns the number of edge segments used at resolution.
func (c Circle) Segments(resolution float32) int {
	if resolution <= 0 {
		resolution = paper.DefaultResolution
	}
	circumference := 2 * math.Pi * float64(c.Radius)
	n := int(math.Ceil(circumference / float64(resolution)))
	return min(max(n, minCircleSegments), maxCircleSegments)
}

// Generate implements paper.Shape. A non-positive radius yields an empty
// mesh.
func (c Circle) Generate(cfg paper.Config) *paper.Mesh {
	if c.Radius <= 0 {
		return paper.NewMesh(0, 0)
	}
	n := c.Segments(cfg.EffectiveResolution())
	m := paper.NewMesh(n+1, 3*n)
	center := m.AddVertex(vec3(c.Center), c.Color)
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		s, co := math.Sincos(step * float64(i))
		p := c.Center.Add(mgl32.Vec2{float32(co), float32(s)}.Mul(c.Radius))
		m.AddVertex(vec3(p), c.Color)
	}
	for i := 0; i < n; i++ {
		m.AddTriangle(center, center+1+uint32(i), center+1+uint32((i+1)%n))
	}
	return m
}

// Polygon is a filled convex polygon. Points are triangulated as a fan
// around the first point, so concave input renders incorrectly. Fewer
// than three points yield an empty mesh.
type Polygon struct {
	Points []mgl32.Vec2
	Color  paper.Color
}

// Generate implements paper.Shape.
func (p Polygon) Generate(paper.Config) *paper.Mesh {
	return fan(p.Points, p.Color)
}

// RegularPolygon returns a polygon with n sides inscribed in a circle of
// radius r, with the first vertex at angle rotation.
func RegularPolygon(n int, center mgl32.Vec2, r, rotation float32, c paper.Color) Polygon {
	if n < 3 {
		return Polygon{Color: c}
	}
	points := make([]mgl32.Vec2, n)
	angle := 2 * math.Pi / float64(n)
	for i := range points {
		a := float64(rotation) + angle*float64(i)
		s, co := math.Sincos(a)
		points[i] = center.Add(mgl32.Vec2{float32(co), float32(s)}.Mul(r))
	}
	return Polygon{Points: points, Color: c}
}

func fan(points []mgl32.Vec2, c paper.Color) *paper.Mesh {
	if len(points) < 3 {
		return paper.NewMesh(0, 0)
	}
	m := paper.NewMesh(len(points), 3*(len(points)-2))
	for _, p := range points {
		m.AddVertex(vec3(p), c)
	}
	for i := 1; i < len(points)-1; i++ {
		m.AddTriangle(0, uint32(i), uint32(i+1))
	}
	return m
}

// Group combines several shapes into one mesh, in order. Later shapes
// draw over earlier ones.
type Group []paper.Shape

// Generate implements paper.Shape.
func (g Group) Generate(cfg paper.Config) *paper.Mesh {
	m := paper.NewMesh(0, 0)
	for _, s := range g {
		if s == nil {
			continue
		}
		m.Append(s.Generate(cfg))
	}
	return m
}

func vec3(p mgl32.Vec2) mgl32.Vec3 {
	return mgl32.Vec3{p.X(), p.Y(), 0}
}
