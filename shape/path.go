// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/paper"
)

type opKind uint8

const (
	opLine opKind = iota
	opForward
	opTurn
)

type pathOp struct {
	kind   opKind
	to     mgl32.Vec2
	dist   float32
	radius float32
	angle  float32
}

// Path is an open polyline described by turtle-style steps. The heading
// starts along +X and follows the direction of the last step. Curved
// steps are flattened when the path is generated, using the frame's
// resolution.
//
// Path methods modify the receiver and return it for chaining.
type Path struct {
	start mgl32.Vec2
	ops   []pathOp
}

// NewPath starts a path at start.
func NewPath(start mgl32.Vec2) *Path {
	return &Path{start: start}
}

// Line starts a path with a straight line from one point to another.
func Line(from, to mgl32.Vec2) *Path {
	return NewPath(from).LineTo(to)
}

// LineTo adds a straight line to p.
func (p *Path) LineTo(to mgl32.Vec2) *Path {
	p.ops = append(p.ops, pathOp{kind: opLine, to: to})
	return p
}

// Forward adds a straight line of length d along the current heading.
func (p *Path) Forward(d float32) *Path {
	p.ops = append(p.ops, pathOp{kind: opForward, dist: d})
	return p
}

// Turn adds a circular arc of the given radius sweeping angle radians.
// Positive angles turn left (counter-clockwise), negative angles right.
func (p *Path) Turn(radius, angle float32) *Path {
	p.ops = append(p.ops, pathOp{kind: opTurn, radius: radius, angle: angle})
	return p
}

// Points flattens the path. Arcs are split so that no chord is longer
// than the config's resolution.
func (p *Path) Points(cfg paper.Config) []mgl32.Vec2 {
	points, _ := p.walk(cfg)
	return points
}

// walk flattens the path and returns the points together with the
// tangent heading at the end.
func (p *Path) walk(cfg paper.Config) ([]mgl32.Vec2, mgl32.Vec2) {
	res := cfg.EffectiveResolution()
	pos := p.start
	heading := mgl32.Vec2{1, 0}
	points := []mgl32.Vec2{pos}

	for _, op := range p.ops {
		switch op.kind {
		case opLine:
			if d := op.to.Sub(pos); d.Len() > minSegmentLength {
				heading = d.Normalize()
			}
			pos = op.to
			points = append(points, pos)
		case opForward:
			pos = pos.Add(heading.Mul(op.dist))
			points = append(points, pos)
		case opTurn:
			if op.radius <= 0 || op.angle == 0 {
				heading = rotate(heading, op.angle)
				continue
			}
			left := mgl32.Vec2{-heading.Y(), heading.X()}
			if op.angle < 0 {
				left = left.Mul(-1)
			}
			center := pos.Add(left.Mul(op.radius))
			radial := pos.Sub(center)
			arc := math.Abs(float64(op.angle)) * float64(op.radius)
			n := max(1, int(math.Ceil(arc/float64(res))))
			for k := 1; k <= n; k++ {
				points = append(points, center.Add(rotate(radial, op.angle*float32(k)/float32(n))))
			}
			pos = points[len(points)-1]
			heading = rotate(heading, op.angle)
		}
	}
	return points, heading
}

// End returns the final position and the unit tangent heading of the
// path. The heading of an arc is exact, not the direction of its last
// chord.
func (p *Path) End(cfg paper.Config) (pos, heading mgl32.Vec2) {
	points, heading := p.walk(cfg)
	return points[len(points)-1], heading
}

// Stroke returns a shape that thickens the path to width.
func (p *Path) Stroke(width float32, c paper.Color) paper.Shape {
	return paper.ShapeFunc(func(cfg paper.Config) *paper.Mesh {
		return Stroke{Points: p.Points(cfg), Width: width, Color: c}.Generate(cfg)
	})
}

// Fill returns a shape that fills the closed path as a convex polygon.
func (p *Path) Fill(c paper.Color) paper.Shape {
	return paper.ShapeFunc(func(cfg paper.Config) *paper.Mesh {
		return fan(dedupe(p.Points(cfg), true), c)
	})
}

// rotate rotates v counter-clockwise by angle radians.
func rotate(v mgl32.Vec2, angle float32) mgl32.Vec2 {
	s, c := math.Sincos(float64(angle))
	return mgl32.Vec2{
		v.X()*float32(c) - v.Y()*float32(s),
		v.X()*float32(s) + v.Y()*float32(c),
	}
}
