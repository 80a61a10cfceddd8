// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyAlignment is the granularity of queue buffer writes.
const copyAlignment = 4

// gpuBuffer is a GPU buffer together with the logical byte length of the
// data it was created for. The allocation may be larger: it is rounded up
// to copyAlignment and never zero, so empty meshes still own a buffer.
type gpuBuffer struct {
	buf   hal.Buffer
	size  uint64
	usage gputypes.BufferUsage
}

// allocSize returns the allocation size for n logical bytes.
func allocSize(n int) uint64 {
	size := uint64(n)
	if size < copyAlignment {
		size = copyAlignment
	}
	return (size + copyAlignment - 1) &^ (copyAlignment - 1)
}

// newGPUBuffer creates a buffer sized for data and uploads it.
func newGPUBuffer(device hal.Device, queue hal.Queue, label string, usage gputypes.BufferUsage, data []byte) (gpuBuffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  allocSize(len(data)),
		Usage: usage,
	})
	if err != nil {
		return gpuBuffer{}, fmt.Errorf("%w: create %s (%d bytes): %w", ErrAllocation, label, len(data), err)
	}
	b := gpuBuffer{buf: buf, size: uint64(len(data)), usage: usage}
	b.write(queue, 0, data)
	return b, nil
}

// fits reports whether data of n bytes can be written in place.
func (b *gpuBuffer) fits(n int) bool {
	return b.buf != nil && b.size == uint64(n)
}

// write uploads data at offset. Empty writes are skipped.
func (b *gpuBuffer) write(queue hal.Queue, offset uint64, data []byte) {
	if len(data) == 0 {
		return
	}
	queue.WriteBuffer(b.buf, offset, padded(data))
}

// destroy releases the GPU buffer. Safe to call on an empty gpuBuffer.
func (b *gpuBuffer) destroy(device hal.Device) {
	if b.buf != nil {
		device.DestroyBuffer(b.buf)
	}
	*b = gpuBuffer{}
}

// padded returns data extended with zeros to a multiple of copyAlignment.
// Vertex and index data are always aligned already; this only copies for
// odd-sized writes.
func padded(data []byte) []byte {
	rem := len(data) % copyAlignment
	if rem == 0 {
		return data
	}
	out := make([]byte, len(data)+copyAlignment-rem)
	copy(out, data)
	return out
}
