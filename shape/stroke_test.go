// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/paper"
)

func TestStrokeSegment(t *testing.T) {
	s := Stroke{Points: []mgl32.Vec2{{0, 0}, {2, 0}}, Width: 0.5, Color: paper.Black}
	m := s.Generate(paper.DefaultConfig())
	if len(m.Vertices) != 4 || len(m.Indices) != 6 {
		t.Fatalf("got %d vertices, %d indices, want 4, 6", len(m.Vertices), len(m.Indices))
	}
	lo, hi := m.Bounds()
	if lo.Sub(mgl32.Vec3{0, -0.25, 0}).Len() > 1e-6 || hi.Sub(mgl32.Vec3{2, 0.25, 0}).Len() > 1e-6 {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}

func TestStrokeJoins(t *testing.T) {
	pts := []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tests := []struct {
		name   string
		closed bool
		quads  int
		joins  int
	}{
		{"open", false, 3, 2},
		{"closed", true, 4, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Stroke{Points: pts, Width: 0.1, Closed: tt.closed}.Generate(paper.DefaultConfig())
			wantVerts := 4*tt.quads + 5*tt.joins
			wantIdx := 6*tt.quads + 6*tt.joins
			if len(m.Vertices) != wantVerts || len(m.Indices) != wantIdx {
				t.Errorf("got %d vertices, %d indices, want %d, %d",
					len(m.Vertices), len(m.Indices), wantVerts, wantIdx)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestStrokeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		s    Stroke
	}{
		{"no points", Stroke{Width: 1}},
		{"single point", Stroke{Points: []mgl32.Vec2{{1, 1}}, Width: 1}},
		{"duplicate points", Stroke{Points: []mgl32.Vec2{{1, 1}, {1, 1}}, Width: 1}},
		{"zero width", Stroke{Points: []mgl32.Vec2{{0, 0}, {1, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := tt.s.Generate(paper.DefaultConfig()); !m.Empty() {
				t.Errorf("expected empty mesh, got %d indices", len(m.Indices))
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	pts := []mgl32.Vec2{{0, 0}, {0, 0}, {1, 0}, {1, 1}, {0, 0}}
	if got := dedupe(pts, false); len(got) != 4 {
		t.Errorf("open dedupe kept %d points, want 4", len(got))
	}
	if got := dedupe(pts, true); len(got) != 3 {
		t.Errorf("closed dedupe kept %d points, want 3", len(got))
	}
}
