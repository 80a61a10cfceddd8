// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shape

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"github.com/gogpu/paper"
	"github.com/gogpu/paper/cache"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidFont is returned when font data cannot be parsed.
var ErrInvalidFont = errors.New("shape: invalid font data")

const (
	// maxCurveSegments bounds the flattening of a single glyph curve.
	maxCurveSegments = 64

	// glyphCacheCapacity is the number of outlines kept per cache shard.
	glyphCacheCapacity = 32
)

// Font is a parsed TrueType or OpenType font. The same data is parsed
// twice: go-text shapes text with it and sfnt extracts glyph outlines.
//
// Font is safe for concurrent use.
type Font struct {
	shaper     *font.Font
	outlines   *sfnt.Font
	unitsPerEm float32

	// glyphs caches outline segments in font units, keyed by glyph index.
	glyphs *cache.ShardedCache[sfnt.GlyphIndex, []sfnt.Segment]
}

func glyphHash(id sfnt.GlyphIndex) uint64 {
	return uint64(id)
}

// ParseFont parses TTF or OTF font data.
func ParseFont(data []byte) (*Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	upem := float32(outlines.UnitsPerEm())
	if upem <= 0 {
		return nil, fmt.Errorf("%w: units per em is %v", ErrInvalidFont, upem)
	}
	return &Font{
		shaper:     face.Font,
		outlines:   outlines,
		unitsPerEm: upem,
		glyphs:     cache.NewSharded[sfnt.GlyphIndex, []sfnt.Segment](glyphCacheCapacity, glyphHash),
	}, nil
}

// CacheStats reports the glyph outline cache statistics.
func (f *Font) CacheStats() cache.Stats {
	return f.glyphs.Stats()
}

// segments returns the outline of glyph id in font units. LoadGlyph
// reuses buf for its result, so cached segments are copied out of it.
func (f *Font) segments(buf *sfnt.Buffer, id sfnt.GlyphIndex) ([]sfnt.Segment, error) {
	if segs, ok := f.glyphs.Get(id); ok {
		return segs, nil
	}
	loaded, err := f.outlines.LoadGlyph(buf, id, fixed.Int26_6(f.unitsPerEm*64), nil)
	if err != nil {
		return nil, fmt.Errorf("load glyph %d: %w", id, err)
	}
	segs := make([]sfnt.Segment, len(loaded))
	copy(segs, loaded)
	f.glyphs.Set(id, segs)
	return segs, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
	defaultFontErr  error
)

// DefaultFont returns the Go Regular font, parsed once.
func DefaultFont() (*Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = ParseFont(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// glyph is a shaped glyph positioned in font units.
type glyph struct {
	id   sfnt.GlyphIndex
	x, y float32
}

// shape lays out s on a single line in font units and returns the glyphs
// and the total advance. Bidirectional text is split into runs which are
// shaped separately and placed in visual order.
func (f *Font) shape(s string) ([]glyph, float32) {
	s = norm.NFC.String(s)
	if s == "" {
		return nil, 0
	}

	// Shape at one em per font unit so outlines and advances share a scale.
	size := fixed.Int26_6(f.unitsPerEm * 64)
	face := font.NewFace(f.shaper)
	hb := &shaping.HarfbuzzShaper{}

	var glyphs []glyph
	var pen float32
	for _, run := range bidiRuns(s) {
		runes := []rune(run.text)
		if len(runes) == 0 {
			continue
		}
		out := hb.Shape(shaping.Input{
			Text:      runes,
			RunStart:  0,
			RunEnd:    len(runes),
			Direction: run.dir,
			Face:      face,
			Size:      size,
			Script:    detectScript(runes),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			glyphs = append(glyphs, glyph{
				id: sfnt.GlyphIndex(g.GlyphID),
				x:  pen + fixedToFloat(g.XOffset),
				y:  fixedToFloat(g.YOffset),
			})
			pen += fixedToFloat(g.Advance)
		}
	}
	return glyphs, pen
}

type textRun struct {
	text string
	dir  di.Direction
}

// bidiRuns splits s into directional runs in visual order.
func bidiRuns(s string) []textRun {
	p := bidi.Paragraph{}
	if _, err := p.SetString(s); err != nil {
		return []textRun{{text: s, dir: di.DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []textRun{{text: s, dir: di.DirectionLTR}}
	}
	runs := make([]textRun, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		r := ordering.Run(i)
		dir := di.DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, textRun{text: r.String(), dir: dir})
	}
	return runs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// contours appends the closed contours of glyph id, in font units with y
// up, offset by (dx, dy) and scaled by scale, to dst. Curves are split so
// that no chord exceeds res after scaling.
func (f *Font) contours(dst [][]mgl32.Vec2, buf *sfnt.Buffer, id sfnt.GlyphIndex, dx, dy, scale, res float32) ([][]mgl32.Vec2, error) {
	segments, err := f.segments(buf, id)
	if err != nil {
		return dst, err
	}

	// sfnt outlines are y-down.
	pt := func(p fixed.Point26_6) mgl32.Vec2 {
		return mgl32.Vec2{
			(fixedToFloat(p.X) + dx) * scale,
			(dy - fixedToFloat(p.Y)) * scale,
		}
	}

	var cur []mgl32.Vec2
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if len(cur) > 1 {
				dst = append(dst, cur)
			}
			cur = []mgl32.Vec2{pt(seg.Args[0])}
		case sfnt.SegmentOpLineTo:
			cur = append(cur, pt(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p0 := cur[len(cur)-1]
			p1, p2 := pt(seg.Args[0]), pt(seg.Args[1])
			n := curveSegments(res, p0, p1, p2)
			for k := 1; k <= n; k++ {
				cur = append(cur, mgl32.QuadraticBezierCurve2D(float32(k)/float32(n), p0, p1, p2))
			}
		case sfnt.SegmentOpCubeTo:
			p0 := cur[len(cur)-1]
			p1, p2, p3 := pt(seg.Args[0]), pt(seg.Args[1]), pt(seg.Args[2])
			n := curveSegments(res, p0, p1, p2, p3)
			for k := 1; k <= n; k++ {
				cur = append(cur, mgl32.CubicBezierCurve2D(float32(k)/float32(n), p0, p1, p2, p3))
			}
		}
	}
	if len(cur) > 1 {
		dst = append(dst, cur)
	}
	return dst, nil
}

// curveSegments returns the number of chords for a curve whose control
// polygon is ctrl.
func curveSegments(res float32, ctrl ...mgl32.Vec2) int {
	var length float32
	for i := 1; i < len(ctrl); i++ {
		length += ctrl[i].Sub(ctrl[i-1]).Len()
	}
	n := int(math.Ceil(float64(length / res)))
	return min(max(n, 1), maxCurveSegments)
}

// Text is a single line of text drawn as stroked glyph contours. The
// baseline starts at Origin and runs along +X; Size is the em height in
// world units.
type Text struct {
	Content string
	Font    *Font // nil means DefaultFont
	Size    float32
	Origin  mgl32.Vec2

	// Width is the stroke width of the contours. Zero means Size/16.
	Width float32

	Color paper.Color
}

func (t Text) font() (*Font, error) {
	if t.Font != nil {
		return t.Font, nil
	}
	return DefaultFont()
}

// Advance returns the width of the laid out text in world units.
func (t Text) Advance() (float32, error) {
	f, err := t.font()
	if err != nil {
		return 0, err
	}
	_, pen := f.shape(t.Content)
	return pen * t.Size / f.unitsPerEm, nil
}

// Contours returns the glyph outlines as closed polylines in world units.
func (t Text) Contours(cfg paper.Config) ([][]mgl32.Vec2, error) {
	f, err := t.font()
	if err != nil {
		return nil, err
	}
	if t.Size <= 0 {
		return nil, nil
	}
	glyphs, _ := f.shape(t.Content)
	scale := t.Size / f.unitsPerEm
	res := cfg.EffectiveResolution()
	ox, oy := t.Origin.X()/scale, t.Origin.Y()/scale

	var buf sfnt.Buffer
	var out [][]mgl32.Vec2
	for _, g := range glyphs {
		out, err = f.contours(out, &buf, g.id, ox+g.x, oy+g.y, scale, res)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Generate implements paper.Shape. Layout failures are logged and yield
// an empty mesh.
func (t Text) Generate(cfg paper.Config) *paper.Mesh {
	m := paper.NewMesh(0, 0)
	contours, err := t.Contours(cfg)
	if err != nil {
		paper.Logger().Warn("shape: text layout failed", "text", t.Content, "error", err)
		return m
	}
	width := t.Width
	if width <= 0 {
		width = t.Size / 16
	}
	for _, c := range contours {
		appendStroke(m, c, width, true, t.Color)
	}
	return m
}
