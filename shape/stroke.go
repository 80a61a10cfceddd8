// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/paper"
)

// minSegmentLength is the length below which polyline segments are
// treated as duplicate points.
const minSegmentLength = 1e-6

// Stroke is a polyline thickened to Width. Each segment becomes a quad and
// consecutive segments are joined with bevel triangles. A closed stroke
// also joins the last point back to the first.
type Stroke struct {
	Points []mgl32.Vec2
	Width  float32
	Closed bool
	Color  paper.Color
}

// Generate implements paper.Shape. Fewer than two distinct points or a
// non-positive width yield an empty mesh.
func (s Stroke) Generate(paper.Config) *paper.Mesh {
	m := paper.NewMesh(0, 0)
	appendStroke(m, s.Points, s.Width, s.Closed, s.Color)
	return m
}

// edge is one thickened polyline segment.
type edge struct {
	from, to mgl32.Vec2
	offset   mgl32.Vec2 // half-width normal, pointing left
}

// appendStroke thickens points into m.
func appendStroke(m *paper.Mesh, points []mgl32.Vec2, width float32, closed bool, c paper.Color) {
	if width <= 0 {
		return
	}
	pts := dedupe(points, closed)
	if len(pts) < 2 {
		return
	}
	half := width / 2

	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	edges := make([]edge, 0, n)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%len(pts)]
		d := b.Sub(a).Normalize()
		edges = append(edges, edge{from: a, to: b, offset: mgl32.Vec2{-d.Y(), d.X()}.Mul(half)})
	}

	for _, e := range edges {
		i0 := m.AddVertex(vec3(e.from.Add(e.offset)), c)
		i1 := m.AddVertex(vec3(e.from.Sub(e.offset)), c)
		i2 := m.AddVertex(vec3(e.to.Sub(e.offset)), c)
		i3 := m.AddVertex(vec3(e.to.Add(e.offset)), c)
		m.AddTriangle(i0, i1, i2)
		m.AddTriangle(i0, i2, i3)
	}

	joins := len(edges) - 1
	if closed {
		joins = len(edges)
	}
	for i := 0; i < joins; i++ {
		prev, next := edges[i], edges[(i+1)%len(edges)]
		p := prev.to
		center := m.AddVertex(vec3(p), c)
		l0 := m.AddVertex(vec3(p.Add(prev.offset)), c)
		l1 := m.AddVertex(vec3(p.Add(next.offset)), c)
		r0 := m.AddVertex(vec3(p.Sub(prev.offset)), c)
		r1 := m.AddVertex(vec3(p.Sub(next.offset)), c)
		m.AddTriangle(center, l0, l1)
		m.AddTriangle(center, r1, r0)
	}
}

// dedupe drops consecutive duplicate points. For closed polylines a final
// point equal to the first is dropped as well.
func dedupe(points []mgl32.Vec2, closed bool) []mgl32.Vec2 {
	out := make([]mgl32.Vec2, 0, len(points))
	for _, p := range points {
		if len(out) > 0 && out[len(out)-1].Sub(p).Len() < minSegmentLength {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 2 && out[0].Sub(out[len(out)-1]).Len() < minSegmentLength {
		out = out[:len(out)-1]
	}
	return out
}
