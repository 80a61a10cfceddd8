// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func triangle() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0.5, 0}, Color: Red},
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: Green},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: Blue},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func TestMeshVertexBytesLayout(t *testing.T) {
	m := triangle()
	b := m.VertexBytes()
	if len(b) != 3*VertexSize {
		t.Fatalf("len(VertexBytes()) = %d, want %d", len(b), 3*VertexSize)
	}

	f := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
	}
	// Second vertex: position then color.
	base := VertexSize
	if got := f(base); got != -0.5 {
		t.Errorf("x = %v, want -0.5", got)
	}
	if got := f(base + 4); got != -0.5 {
		t.Errorf("y = %v, want -0.5", got)
	}
	if got := f(base + ColorOffset + 4); got != 1 {
		t.Errorf("green channel = %v, want 1", got)
	}
	if got := f(base + ColorOffset + 12); got != 1 {
		t.Errorf("alpha = %v, want 1", got)
	}
}

func TestMeshIndexBytes(t *testing.T) {
	m := &Mesh{Indices: []uint32{0, 70000, 2}}
	b := m.IndexBytes()
	if len(b) != 3*IndexSize {
		t.Fatalf("len(IndexBytes()) = %d, want %d", len(b), 3*IndexSize)
	}
	if got := binary.LittleEndian.Uint32(b[4:]); got != 70000 {
		t.Errorf("index[1] = %d, want 70000", got)
	}
}

func TestMeshNil(t *testing.T) {
	var m *Mesh
	if m.IndexCount() != 0 || !m.Empty() {
		t.Error("nil mesh should be empty")
	}
	if m.VertexBytes() != nil || m.IndexBytes() != nil {
		t.Error("nil mesh should produce no bytes")
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() on nil mesh = %v", err)
	}
}

func TestMeshValidate(t *testing.T) {
	tests := []struct {
		name    string
		mesh    *Mesh
		wantErr error
	}{
		{"valid", triangle(), nil},
		{"empty", &Mesh{}, nil},
		{"partial", &Mesh{Vertices: triangle().Vertices, Indices: []uint32{0, 1}}, ErrIncompleteTriangle},
		{"out of range", &Mesh{Vertices: triangle().Vertices, Indices: []uint32{0, 1, 3}}, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.mesh.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMeshAppendRebasesIndices(t *testing.T) {
	m := triangle()
	m.Append(triangle())
	if len(m.Vertices) != 6 {
		t.Fatalf("vertices = %d, want 6", len(m.Vertices))
	}
	want := []uint32{0, 1, 2, 3, 4, 5}
	for i, idx := range m.Indices {
		if idx != want[i] {
			t.Errorf("Indices[%d] = %d, want %d", i, idx, want[i])
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestMeshCloneIsDeep(t *testing.T) {
	m := triangle()
	c := m.Clone()
	c.Vertices[0].Color = Black
	c.Indices[0] = 2
	if m.Vertices[0].Color != Red || m.Indices[0] != 0 {
		t.Error("Clone() shares storage with the original")
	}
}

func TestMeshBounds(t *testing.T) {
	lo, hi := triangle().Bounds()
	if lo != (mgl32.Vec3{-0.5, -0.5, 0}) || hi != (mgl32.Vec3{0.5, 0.5, 0}) {
		t.Errorf("Bounds() = %v, %v", lo, hi)
	}
}

func BenchmarkMeshVertexBytes(b *testing.B) {
	m := NewMesh(1024, 0)
	for i := range 1024 {
		m.AddVertex(mgl32.Vec3{float32(i), 0, 0}, White)
	}
	dst := make([]byte, 0, 1024*VertexSize)
	b.ReportAllocs()
	for b.Loop() {
		dst = m.AppendVertexBytes(dst[:0])
	}
}
