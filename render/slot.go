// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Uniform block layout: two column-major 4x4 float32 matrices.
const (
	// UniformSize is the byte size of a slot's uniform buffer.
	UniformSize = 128

	modelOffset    = 0
	viewProjOffset = 64
	matrixSize     = 64
)

// Slot holds the GPU resources for one draw position: a uniform buffer
// with its bind group, a vertex buffer and an index buffer. Slots are
// owned by a ResourceCache and reused across frames.
type Slot struct {
	uniform    gpuBuffer
	bindGroup  hal.BindGroup
	vertices   gpuBuffer
	indices    gpuBuffer
	indexCount uint32

	// generation counts buffer reallocations, starting at 0 when the
	// slot is created.
	generation uint64

	// idle counts consecutive frames in which the slot was not drawn.
	idle int
}

// IndexCount returns the number of indices to draw.
func (s *Slot) IndexCount() uint32 { return s.indexCount }

// VertexBytes returns the logical byte length of the vertex buffer.
func (s *Slot) VertexBytes() uint64 { return s.vertices.size }

// IndexBytes returns the logical byte length of the index buffer.
func (s *Slot) IndexBytes() uint64 { return s.indices.size }

// Generation returns how many times the slot's geometry buffers have been
// reallocated since it was created.
func (s *Slot) Generation() uint64 { return s.generation }

// VertexBuffer returns the underlying vertex buffer.
func (s *Slot) VertexBuffer() hal.Buffer { return s.vertices.buf }

// IndexBuffer returns the underlying index buffer.
func (s *Slot) IndexBuffer() hal.Buffer { return s.indices.buf }

// UniformBuffer returns the underlying uniform buffer.
func (s *Slot) UniformBuffer() hal.Buffer { return s.uniform.buf }

// BindGroup returns the bind group exposing the uniform buffer at binding 0.
func (s *Slot) BindGroup() hal.BindGroup { return s.bindGroup }

// record issues the indexed draw for this slot. The pipeline must already
// be bound. Slots with no indices record nothing and report false.
func (s *Slot) record(rp hal.RenderPassEncoder) bool {
	if s.indexCount == 0 {
		return false
	}
	rp.SetBindGroup(0, s.bindGroup, nil)
	rp.SetVertexBuffer(0, s.vertices.buf, 0)
	rp.SetIndexBuffer(s.indices.buf, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(s.indexCount, 1, 0, 0, 0)
	return true
}

// destroy releases every resource of the slot.
func (s *Slot) destroy(device hal.Device) {
	if s.bindGroup != nil {
		device.DestroyBindGroup(s.bindGroup)
		s.bindGroup = nil
	}
	s.uniform.destroy(device)
	s.vertices.destroy(device)
	s.indices.destroy(device)
	s.indexCount = 0
}

// matrixBytes packs a column-major matrix as 16 little-endian float32s.
func matrixBytes(m mgl32.Mat4) []byte {
	b := make([]byte, matrixSize)
	for i, f := range m {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(f))
	}
	return b
}

// uniformBytes packs model and viewProj into a UniformSize block.
func uniformBytes(model, viewProj mgl32.Mat4) []byte {
	b := make([]byte, 0, UniformSize)
	b = append(b, matrixBytes(model)...)
	return append(b, matrixBytes(viewProj)...)
}
