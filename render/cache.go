// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/paper"
	"github.com/gogpu/wgpu/hal"
)

// Buffer usages for slot resources.
const (
	uniformUsage = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
	vertexUsage  = gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	indexUsage   = gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
)

// CacheStats holds cumulative ResourceCache counters.
type CacheStats struct {
	// Slots is the current number of slots.
	Slots int

	// SlotsCreated counts slots allocated since the cache was created.
	SlotsCreated uint64

	// BuffersReplaced counts vertex and index buffers reallocated because
	// the data length changed.
	BuffersReplaced uint64

	// InPlaceWrites counts vertex and index uploads into existing buffers.
	InPlaceWrites uint64

	// UniformWrites counts matrix uploads into existing uniform buffers.
	UniformWrites uint64

	// SlotsEvicted counts slots destroyed by eviction.
	SlotsEvicted uint64
}

// ResourceCache owns the per-position GPU resources of a renderer.
//
// Slots are keyed by the renderable's position in the frame, not by the
// mesh it carries. A slot's vertex and index buffers are reused as long as
// the byte length of the data written into them stays the same; any length
// change reallocates that buffer. The cache never shrinks on its own;
// trailing slots are only removed by Evict.
//
// ResourceCache does not hold a device or queue. Both are passed to each
// call by the owning Renderer.
//
// ResourceCache is not safe for concurrent use.
type ResourceCache struct {
	layout hal.BindGroupLayout
	label  string
	slots  []*Slot
	stats  CacheStats
}

// NewResourceCache creates an empty cache whose bind groups use layout.
// The layout must describe a single uniform buffer at binding 0.
func NewResourceCache(layout hal.BindGroupLayout) *ResourceCache {
	return &ResourceCache{layout: layout, label: "paper"}
}

// Len returns the number of slots.
func (c *ResourceCache) Len() int { return len(c.slots) }

// Slot returns the slot at position i, or nil if there is none.
func (c *ResourceCache) Slot(i int) *Slot {
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return c.slots[i]
}

// Stats returns the cumulative counters.
func (c *ResourceCache) Stats() CacheStats {
	s := c.stats
	s.Slots = len(c.slots)
	return s
}

// Sync brings the slot at position up to date with mesh, model and
// viewProj and returns it.
//
// position may be at most Len(). At Len() a new slot is appended. For an
// existing slot both matrices are always rewritten; vertex and index data
// are written in place when their byte length matches the previous write
// and reallocated otherwise. A nil mesh is treated as empty.
//
// Allocation failures are wrapped with ErrAllocation. Replacements for
// both buffers are allocated before either is swapped in, so on failure a
// new slot is not appended and an existing slot keeps its previous
// vertex and index buffers and its index count.
func (c *ResourceCache) Sync(device hal.Device, queue hal.Queue, position int, mesh *paper.Mesh, model, viewProj mgl32.Mat4) (*Slot, error) {
	if position < 0 || position > len(c.slots) {
		return nil, fmt.Errorf("%w: position %d with %d slots", ErrInvalidSlot, position, len(c.slots))
	}
	vertexData := mesh.VertexBytes()
	indexData := mesh.IndexBytes()

	if position == len(c.slots) {
		slot, err := c.createSlot(device, queue, position, vertexData, indexData, model, viewProj)
		if err != nil {
			return nil, err
		}
		slot.indexCount = mesh.IndexCount()
		c.slots = append(c.slots, slot)
		c.stats.SlotsCreated++
		paper.Logger().Debug("render: slot created",
			"position", position, "vertex_bytes", len(vertexData), "index_bytes", len(indexData))
		return slot, nil
	}

	slot := c.slots[position]
	slot.uniform.write(queue, modelOffset, matrixBytes(model))
	slot.uniform.write(queue, viewProjOffset, matrixBytes(viewProj))
	c.stats.UniformWrites++

	indices, err := c.reserve(device, queue, &slot.indices, position, "index", indexData)
	if err != nil {
		return nil, err
	}
	vertices, err := c.reserve(device, queue, &slot.vertices, position, "vertex", vertexData)
	if err != nil {
		indices.destroy(device)
		return nil, err
	}

	c.commit(device, queue, slot, &slot.indices, indices, position, "index", indexData)
	c.commit(device, queue, slot, &slot.vertices, vertices, position, "vertex", vertexData)
	slot.indexCount = mesh.IndexCount()
	return slot, nil
}

// reserve allocates a replacement for b when data no longer fits it. The
// result is empty when data can be written in place.
func (c *ResourceCache) reserve(device hal.Device, queue hal.Queue, b *gpuBuffer, position int, kind string, data []byte) (gpuBuffer, error) {
	if b.fits(len(data)) {
		return gpuBuffer{}, nil
	}
	label := fmt.Sprintf("%s_slot%d_%s", c.label, position, kind)
	replacement, err := newGPUBuffer(device, queue, label, b.usage, data)
	if err != nil {
		return gpuBuffer{}, fmt.Errorf("slot %d: %w", position, err)
	}
	return replacement, nil
}

// commit writes data into b in place, or swaps in replacement when
// reserve allocated one.
func (c *ResourceCache) commit(device hal.Device, queue hal.Queue, slot *Slot, b *gpuBuffer, replacement gpuBuffer, position int, kind string, data []byte) {
	if replacement.buf == nil {
		b.write(queue, 0, data)
		c.stats.InPlaceWrites++
		return
	}
	paper.Logger().Debug("render: buffer reallocated",
		"position", position, "kind", kind, "old_bytes", b.size, "new_bytes", len(data))
	b.destroy(device)
	*b = replacement
	slot.generation++
	c.stats.BuffersReplaced++
}

// createSlot allocates every resource of a new slot. Partially created
// resources are released on failure.
func (c *ResourceCache) createSlot(device hal.Device, queue hal.Queue, position int, vertexData, indexData []byte, model, viewProj mgl32.Mat4) (*Slot, error) {
	slot := &Slot{}
	prefix := fmt.Sprintf("%s_slot%d", c.label, position)

	var err error
	slot.uniform, err = newGPUBuffer(device, queue, prefix+"_uniform", uniformUsage, uniformBytes(model, viewProj))
	if err != nil {
		return nil, fmt.Errorf("slot %d: %w", position, err)
	}

	slot.bindGroup, err = device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  prefix + "_bind",
		Layout: c.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: slot.uniform.buf.NativeHandle(), Offset: 0, Size: UniformSize,
			}},
		},
	})
	if err != nil {
		slot.destroy(device)
		return nil, fmt.Errorf("slot %d: %w: create bind group: %w", position, ErrAllocation, err)
	}

	slot.vertices, err = newGPUBuffer(device, queue, prefix+"_vertex", vertexUsage, vertexData)
	if err != nil {
		slot.destroy(device)
		return nil, fmt.Errorf("slot %d: %w", position, err)
	}

	slot.indices, err = newGPUBuffer(device, queue, prefix+"_index", indexUsage, indexData)
	if err != nil {
		slot.destroy(device)
		return nil, fmt.Errorf("slot %d: %w", position, err)
	}
	return slot, nil
}

// endFrame updates idle counters after a frame that drew used slots.
func (c *ResourceCache) endFrame(used int) {
	for i, s := range c.slots {
		if i < used {
			s.idle = 0
		} else {
			s.idle++
		}
	}
}

// Evict destroys trailing slots that have been unused for at least
// frames consecutive frames and returns how many were removed. Only the
// tail is trimmed so that positions stay contiguous. frames <= 0 disables
// eviction. The caller must ensure no submission using the slots is in
// flight.
func (c *ResourceCache) Evict(device hal.Device, frames int) int {
	if frames <= 0 {
		return 0
	}
	n := len(c.slots)
	for n > 0 && c.slots[n-1].idle >= frames {
		c.slots[n-1].destroy(device)
		c.slots[n-1] = nil
		n--
	}
	evicted := len(c.slots) - n
	c.slots = c.slots[:n]
	c.stats.SlotsEvicted += uint64(evicted)
	return evicted
}

// Destroy releases every slot.
func (c *ResourceCache) Destroy(device hal.Device) {
	for i, s := range c.slots {
		s.destroy(device)
		c.slots[i] = nil
	}
	c.slots = c.slots[:0]
}
