// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package paper

import (
	"image/color"
	"strconv"
)

// Color is a straight-alpha RGBA color stored as four float32 components
// in the range [0, 1]. It is the exact layout written into vertex buffers.
type Color [4]float32

// Common colors.
var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{0, 0, 0, 0}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{r, g, b, 1}
}

// RGBA creates a color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{r, g, b, a}
}

// FromColor converts a standard color.Color to a straight-alpha Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without
// a leading '#'. Malformed input yields opaque black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var digits [4]string
	short := false
	switch len(hex) {
	case 3:
		digits = [4]string{hex[0:1], hex[1:2], hex[2:3], "f"}
		short = true
	case 4:
		digits = [4]string{hex[0:1], hex[1:2], hex[2:3], hex[3:4]}
		short = true
	case 6:
		digits = [4]string{hex[0:2], hex[2:4], hex[4:6], "ff"}
	case 8:
		digits = [4]string{hex[0:2], hex[2:4], hex[4:6], hex[6:8]}
	default:
		return Black
	}

	var c Color
	for i, d := range digits {
		v, err := strconv.ParseUint(d, 16, 8)
		if err != nil {
			return Black
		}
		if short && len(d) == 1 {
			v *= 17
		}
		c[i] = float32(v) / 255
	}
	return c
}

// R returns the red component.
func (c Color) R() float32 { return c[0] }

// G returns the green component.
func (c Color) G() float32 { return c[1] }

// B returns the blue component.
func (c Color) B() float32 { return c[2] }

// A returns the alpha component.
func (c Color) A() float32 { return c[3] }

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Premultiplied returns c with the color channels scaled by alpha.
func (c Color) Premultiplied() Color {
	return Color{c[0] * c[3], c[1] * c[3], c[2] * c[3], c[3]}
}

// NRGBA converts c to an 8-bit color.NRGBA, clamping out-of-range components.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c[0]),
		G: to8(c[1]),
		B: to8(c[2]),
		A: to8(c[3]),
	}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
