// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex buffer layout.
const (
	// VertexSize is the byte stride of one packed Vertex: a float32x3
	// position followed by a float32x4 color.
	VertexSize = 28

	// ColorOffset is the byte offset of the color attribute within a vertex.
	ColorOffset = 12

	// IndexSize is the byte size of one index. Indices are always uint32.
	IndexSize = 4
)

// Vertex is a single colored point of a Mesh.
type Vertex struct {
	Position mgl32.Vec3
	Color    Color
}

// Mesh is triangle-list geometry: every three consecutive indices form
// one triangle referencing Vertices.
//
// A Mesh is plain data. The renderer reads it once per frame and keeps no
// reference to it, so callers may rebuild or mutate meshes freely between
// frames.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// NewMesh creates an empty mesh with room for the given number of
// vertices and indices.
func NewMesh(vertexCap, indexCap int) *Mesh {
	return &Mesh{
		Vertices: make([]Vertex, 0, vertexCap),
		Indices:  make([]uint32, 0, indexCap),
	}
}

// IndexCount returns the number of indices in m. A nil mesh has none.
func (m *Mesh) IndexCount() uint32 {
	if m == nil {
		return 0
	}
	return uint32(len(m.Indices))
}

// Empty reports whether m produces no triangles.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}

// VertexBytes returns the vertices packed little-endian, VertexSize bytes each.
func (m *Mesh) VertexBytes() []byte {
	if m == nil {
		return nil
	}
	return m.AppendVertexBytes(make([]byte, 0, len(m.Vertices)*VertexSize))
}

// AppendVertexBytes appends the packed vertices to dst and returns the
// extended slice.
func (m *Mesh) AppendVertexBytes(dst []byte) []byte {
	if m == nil {
		return dst
	}
	for _, v := range m.Vertices {
		for _, f := range v.Position {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
		for _, f := range v.Color {
			dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
		}
	}
	return dst
}

// IndexBytes returns the indices packed as little-endian uint32 values.
func (m *Mesh) IndexBytes() []byte {
	if m == nil {
		return nil
	}
	return m.AppendIndexBytes(make([]byte, 0, len(m.Indices)*IndexSize))
}

// AppendIndexBytes appends the packed indices to dst and returns the
// extended slice.
func (m *Mesh) AppendIndexBytes(dst []byte) []byte {
	if m == nil {
		return dst
	}
	for _, i := range m.Indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

// Validate checks that the index list describes whole triangles and that
// every index references an existing vertex.
func (m *Mesh) Validate() error {
	if m == nil {
		return nil
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIncompleteTriangle, len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexOutOfRange, idx, i, n)
		}
	}
	return nil
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(position mgl32.Vec3, c Color) uint32 {
	m.Vertices = append(m.Vertices, Vertex{Position: position, Color: c})
	return uint32(len(m.Vertices) - 1)
}

// AddTriangle appends one triangle.
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Append merges other into m, rebasing its indices onto m's vertices.
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, i := range other.Indices {
		m.Indices = append(m.Indices, base+i)
	}
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	return &Mesh{
		Vertices: append([]Vertex(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}
}

// Bounds returns the axis-aligned bounding box of the vertices.
// An empty mesh returns zero vectors.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if m == nil || len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	return lo, hi
}
