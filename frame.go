// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import "github.com/go-gl/mathgl/mgl32"

// Kind tags the render pass a Renderable belongs to.
type Kind uint8

const (
	// KindUI is screen-space geometry drawn by the primary pipeline.
	KindUI Kind = iota
)

// Renderable is one draw request: a mesh placed by a model matrix and
// seen through a view-projection matrix. Matrices are column-major.
type Renderable struct {
	Kind     Kind
	Mesh     *Mesh
	Model    mgl32.Mat4
	ViewProj mgl32.Mat4
}

// Shape generates a mesh on demand.
type Shape interface {
	Generate(cfg Config) *Mesh
}

// ShapeFunc adapts a function to the Shape interface.
type ShapeFunc func(cfg Config) *Mesh

// Generate calls f(cfg).
func (f ShapeFunc) Generate(cfg Config) *Mesh { return f(cfg) }

// Frame collects the renderables for one presented image. The position
// of a renderable in the frame is its identity in the renderer's resource
// cache: drawing the same things in the same order each frame reuses GPU
// buffers.
type Frame struct {
	// Config is passed to every Shape drawn into the frame.
	Config Config

	// ClearColor fills the target before drawing. Defaults to White.
	ClearColor Color

	aspect      float32
	renderables []Renderable
}

// NewFrame creates an empty frame for a target with the given
// width/height aspect ratio.
func NewFrame(aspect float32) *Frame {
	return &Frame{
		Config:     DefaultConfig(),
		ClearColor: White,
		aspect:     aspect,
	}
}

// Aspect returns the target aspect ratio the frame was created for.
func (f *Frame) Aspect() float32 { return f.aspect }

// Len returns the number of renderables drawn so far.
func (f *Frame) Len() int { return len(f.renderables) }

// Renderables returns the draw list in submission order.
func (f *Frame) Renderables() []Renderable {
	if f == nil {
		return nil
	}
	return f.renderables
}

// Draw appends a prepared renderable.
func (f *Frame) Draw(r Renderable) {
	f.renderables = append(f.renderables, r)
}

// DrawMesh draws mesh placed by model, viewed through camera.
func (f *Frame) DrawMesh(mesh *Mesh, model mgl32.Mat4, camera *OrthographicCamera) {
	f.Draw(Renderable{
		Kind:     KindUI,
		Mesh:     mesh,
		Model:    model,
		ViewProj: camera.ViewProjection(f.aspect),
	})
}

// DrawShape generates s with the frame's Config and draws the result.
func (f *Frame) DrawShape(s Shape, model mgl32.Mat4, camera *OrthographicCamera) {
	f.DrawMesh(s.Generate(f.Config), model, camera)
}

// Reset empties the draw list, keeping its capacity.
func (f *Frame) Reset(aspect float32) {
	f.aspect = aspect
	f.renderables = f.renderables[:0]
}
