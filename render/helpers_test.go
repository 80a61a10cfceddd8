// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/paper"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// createNoopDevice creates a noop HAL device for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

var errInjected = errors.New("injected failure")

const bgra8 = gputypes.TextureFormatBGRA8Unorm

// countingDevice wraps a hal.Device, counting buffer lifetimes and
// optionally failing buffer or texture creation.
type countingDevice struct {
	hal.Device

	created   int
	destroyed int

	// failAfter makes CreateBuffer fail once this many further buffers
	// have been created. Negative disables failures.
	failAfter int

	// failTexture makes CreateTexture fail for textures with this label.
	failTexture string
}

func newCountingDevice(device hal.Device) *countingDevice {
	return &countingDevice{Device: device, failAfter: -1}
}

func (d *countingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	if d.failAfter == 0 {
		return nil, errInjected
	}
	if d.failAfter > 0 {
		d.failAfter--
	}
	buf, err := d.Device.CreateBuffer(desc)
	if err == nil {
		d.created++
	}
	return buf, err
}

func (d *countingDevice) DestroyBuffer(buf hal.Buffer) {
	d.destroyed++
	d.Device.DestroyBuffer(buf)
}

func (d *countingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if d.failTexture != "" && desc.Label == d.failTexture {
		return nil, errInjected
	}
	return d.Device.CreateTexture(desc)
}

// live returns the number of buffers created and not yet destroyed.
func (d *countingDevice) live() int { return d.created - d.destroyed }

// bufferWrite is one upload recorded by recordingQueue.
type bufferWrite struct {
	buffer hal.Buffer
	offset uint64
	data   string
}

// recordingQueue wraps a hal.Queue and records every buffer upload.
type recordingQueue struct {
	hal.Queue

	writes []bufferWrite
}

func (q *recordingQueue) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) {
	q.writes = append(q.writes, bufferWrite{buffer: buffer, offset: offset, data: string(data)})
	q.Queue.WriteBuffer(buffer, offset, data)
}

// faultySurface is an OffscreenSurface whose Acquire can be scripted to
// fail.
type faultySurface struct {
	*OffscreenSurface

	acquireErrs []error
	configures  int
}

func newFaultySurface() *faultySurface {
	return &faultySurface{OffscreenSurface: NewOffscreenSurface()}
}

func (s *faultySurface) Configure(device hal.Device, cfg SurfaceConfig) error {
	s.configures++
	return s.OffscreenSurface.Configure(device, cfg)
}

func (s *faultySurface) Acquire() (hal.TextureView, error) {
	if len(s.acquireErrs) > 0 {
		err := s.acquireErrs[0]
		s.acquireErrs = s.acquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return s.OffscreenSurface.Acquire()
}

// rendererFixture bundles a renderer with its test doubles.
type rendererFixture struct {
	renderer *Renderer
	device   *countingDevice
	queue    hal.Queue
	surface  *faultySurface
}

func newTestRenderer(t *testing.T, opts ...Option) *rendererFixture {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	cd := newCountingDevice(device)
	surface := newFaultySurface()
	r, err := New(cd, queue, surface, 320, 240, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(r.Destroy)
	return &rendererFixture{renderer: r, device: cd, queue: queue, surface: surface}
}

// triangleMesh returns a 3-vertex, 3-index mesh.
func triangleMesh() *paper.Mesh {
	return &paper.Mesh{
		Vertices: []paper.Vertex{
			{Position: mgl32.Vec3{0, 0.5, 0}, Color: paper.Red},
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: paper.Green},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: paper.Blue},
		},
		Indices: []uint32{0, 1, 2},
	}
}

// quadMesh returns a 4-vertex, 6-index mesh.
func quadMesh(c paper.Color) *paper.Mesh {
	return &paper.Mesh{
		Vertices: []paper.Vertex{
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: c},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: c},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Color: c},
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: c},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// frameOf builds a frame with one identity-transformed renderable per mesh.
func frameOf(meshes ...*paper.Mesh) *paper.Frame {
	f := paper.NewFrame(1)
	for _, m := range meshes {
		f.Draw(paper.Renderable{
			Kind:     paper.KindUI,
			Mesh:     m,
			Model:    mgl32.Ident4(),
			ViewProj: mgl32.Ident4(),
		})
	}
	return f
}
