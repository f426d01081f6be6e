// SPDX-License-Identifier: Unlicense OR MIT

// Package gotext adapts github.com/go-text/typesetting's HarfBuzz-based
// shaper into a font.Provider. It is the one Provider in this module
// that does real glyph shaping rather than a test stub; everything
// else (advances, vertex rectangles) depends on what the underlying
// shaper returns for the loaded face.
//
// font.Provider promises one Glyph per input rune (font.go). HarfBuzz
// clusters runes into shaping clusters that don't always line up 1:1
// (ligatures merge runes, combining marks can attach to a base glyph),
// so Shape expands/collapses cluster output onto a per-rune grid:
// a multi-rune cluster repeats its first glyph's metrics for the
// remaining runes with zero advance, and a rune with no cluster of
// its own borrows its neighbor's. This keeps the per-rune invariant
// the rest of the engine relies on at the cost of positioning fidelity
// for ligated or marked text, which this module does not attempt to
// render correctly.
package gotext

import (
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/f32"
	"richtext.dev/layout/font"
	"richtext.dev/layout/lerr"
)

// Handle pairs a loaded go-text face with a resolved pixel size.
type Handle struct {
	Face   *gofont.Face
	SizePx fixed.Int26_6
}

// NewHandle wraps face at sizePx, reading line metrics from the face's
// font-wide extents scaled to sizePx.
func NewHandle(face *gofont.Face, sizePx fixed.Int26_6) *Handle {
	return &Handle{Face: face, SizePx: sizePx}
}

func (h *Handle) Ascent() fixed.Int26_6 {
	ext, ok := h.Face.FontHExtents()
	if !ok {
		return h.SizePx * 4 / 5
	}
	return h.scale(ext.Ascender)
}

func (h *Handle) Descent() fixed.Int26_6 {
	ext, ok := h.Face.FontHExtents()
	if !ok {
		return -h.SizePx / 5
	}
	return h.scale(ext.Descender)
}

func (h *Handle) scale(unitsPerEM float32) fixed.Int26_6 {
	upem := float32(h.Face.Upem())
	if upem == 0 {
		return 0
	}
	return fixed.Int26_6(float32(h.SizePx) * unitsPerEM / upem)
}

// Provider shapes text via HarfBuzz.
type Provider struct {
	shaper shaping.HarfbuzzShaper
}

// NewProvider returns a ready-to-use Provider.
func NewProvider() *Provider { return &Provider{} }

// Shape implements font.Provider.
func (p *Provider) Shape(text string, h font.Handle) ([]font.Glyph, error) {
	gh, ok := h.(*Handle)
	if !ok {
		return nil, lerr.Invalid("gotext: Handle %T is not a gotext.Handle", h)
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, nil
	}
	input := shaping.Input{
		Text:     runes,
		RunStart: 0,
		RunEnd:   len(runes),
		Face:     gh.Face,
		Size:     gh.SizePx,
		Script:   language.Latin,
		Language: language.NewLanguage("en"),
	}
	out := p.shaper.Shape(input)
	return spreadToRunes(out, gh, len(runes)), nil
}

func spreadToRunes(out shaping.Output, h *Handle, runeCount int) []font.Glyph {
	glyphs := make([]font.Glyph, runeCount)
	gi := 0
	for r := 0; r < runeCount; r++ {
		if gi >= len(out.Glyphs) {
			glyphs[r] = font.Glyph{Ascent: h.Ascent(), Descent: h.Descent()}
			continue
		}
		g := out.Glyphs[gi]
		glyphs[r] = font.Glyph{
			Owner:   h.Face,
			Ascent:  h.Ascent(),
			Descent: h.Descent(),
			Advance: g.XAdvance,
			Vertices: f32.Rectangle{
				Min: f32.Point{X: float32(g.XOffset) / 64, Y: float32(g.YOffset) / 64},
				Max: f32.Point{
					X: float32(g.XOffset)/64 + float32(g.XAdvance)/64,
					Y: float32(g.YOffset)/64 + float32(h.Ascent()-h.Descent())/64,
				},
			},
		}
		// Advance the cluster cursor once all runes belonging to this
		// cluster have been consumed.
		if gi+1 >= len(out.Glyphs) || out.Glyphs[gi+1].ClusterIndex > g.ClusterIndex {
			gi++
		}
	}
	return glyphs
}
