// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package app

import "github.com/gogpu/paper/render"

// Default window settings.
const (
	DefaultTitle  = "Paper Application"
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Config holds application settings. Use DefaultConfig and the With
// methods to build one:
//
//	cfg := app.DefaultConfig().
//	    WithTitle("logo").
//	    WithSize(500, 500)
type Config struct {
	// Title is the window title.
	Title string

	// Width and Height are the initial size used when the window does not
	// report one.
	Width  uint32
	Height uint32

	// RenderOptions are passed to the renderer.
	RenderOptions []render.Option
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Title:  DefaultTitle,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// WithTitle returns a copy of c with the given title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the given initial size.
func (c Config) WithSize(width, height uint32) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithRenderOptions returns a copy of c with opts appended to the
// renderer options.
func (c Config) WithRenderOptions(opts ...render.Option) Config {
	c.RenderOptions = append(append([]render.Option(nil), c.RenderOptions...), opts...)
	return c
}
