// SPDX-License-Identifier: Unlicense OR MIT

// Package box implements the flow unit described in spec.md §3/§4.2:
// a GlyphBox (a run of glyphs sharing one texture owner) or an
// InlineElementBox (one externally supplied, externally drawn
// character position). Both satisfy Box, the minimal geometry and
// hit-testing contract the flow and query layers need; placement
// (vertex emission for glyphs, the Place/Remove hooks for elements)
// is dispatched by its caller with a type switch over the two
// concrete types, the idiomatic Go substitute for the closed tagged
// variant spec.md's design notes (§9) call for.
package box

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/font"
)

// Box is the atomic unit placed on a Line: a contiguous glyph run
// sharing a texture, or a single inline element.
type Box interface {
	// Ascent and Descent are in font-local pixels; Descent is
	// non-positive.
	Ascent() fixed.Int26_6
	Descent() fixed.Int26_6
	// Advance is the horizontal pen displacement this box produces.
	Advance() fixed.Int26_6
	// Length is the number of character positions this box covers.
	Length() int
	// PointInBox returns the X offset, from the box's left edge, of
	// the character position-th character inside the box.
	PointInBox(position int) fixed.Int26_6
	// PositionInBox returns the character position, relative to the
	// box's start, of the character boundary nearest x: the index of
	// the first glyph whose horizontal midpoint lies beyond x, or
	// Length() if there is none.
	PositionInBox(x fixed.Int26_6) int
}

// KernGlyph pairs a shaped Glyph with the kerning that precedes it:
// the extra horizontal displacement, in pixels, inserted before the
// glyph (spec.md §3's "Box... GlyphBox(owner, font, glyphs: sequence
// of (kern, Glyph), advance)").
type KernGlyph struct {
	Kern  fixed.Int26_6
	Glyph font.Glyph
}

// GlyphBox is a run of glyphs sharing one texture owner and font.
type GlyphBox struct {
	Owner   font.TextureID
	Font    font.Handle
	Glyphs  []KernGlyph
	advance fixed.Int26_6
}

// NewGlyphBox creates a GlyphBox. advance must equal the sum of each
// glyph's advance and kern (the caller computes this while
// accumulating glyphs, per spec.md §4.3).
func NewGlyphBox(owner font.TextureID, f font.Handle, glyphs []KernGlyph, advance fixed.Int26_6) *GlyphBox {
	if owner == nil {
		panic("box: GlyphBox requires a non-nil owner")
	}
	return &GlyphBox{Owner: owner, Font: f, Glyphs: glyphs, advance: advance}
}

func (b *GlyphBox) Ascent() fixed.Int26_6  { return b.Font.Ascent() }
func (b *GlyphBox) Descent() fixed.Int26_6 { return b.Font.Descent() }
func (b *GlyphBox) Advance() fixed.Int26_6 { return b.advance }
func (b *GlyphBox) Length() int            { return len(b.Glyphs) }

func (b *GlyphBox) PointInBox(position int) fixed.Int26_6 {
	var x fixed.Int26_6
	for _, kg := range b.Glyphs {
		if position == 0 {
			break
		}
		position--
		x += kg.Glyph.Advance + kg.Kern
	}
	return x
}

func (b *GlyphBox) PositionInBox(x fixed.Int26_6) int {
	position := 0
	var lastGlyphX fixed.Int26_6
	for _, kg := range b.Glyphs {
		lastGlyphX += kg.Kern
		if lastGlyphX+kg.Glyph.Advance/2 > x {
			return position
		}
		position++
		lastGlyphX += kg.Glyph.Advance
	}
	return position
}

// Element is the external contract for a non-text item embedded in
// the document (spec.md §3: "non-text items with ascent, descent,
// advance, length=1, and hooks place(layout, x, y) and
// remove(layout)"). Per spec.md §9's open-question resolution, inline
// elements never carry kerning.
type Element interface {
	Ascent() fixed.Int26_6
	Descent() fixed.Int26_6
	Advance() fixed.Int26_6
	// Place is called once when the element's box is first
	// positioned on a line. host is the owning layout, passed
	// through untyped to avoid an import cycle between this package
	// and the layout package; implementations type-assert as needed.
	Place(host any, x, y fixed.Int26_6)
	// Remove is called when the line holding this element is
	// deleted, e.g. because it scrolled out of view or was reflowed
	// away.
	Remove(host any)
}

// InlineElementBox wraps a single Element as a one-character-long
// Box.
type InlineElementBox struct {
	Element Element
	Placed  bool
}

func NewInlineElementBox(e Element) *InlineElementBox {
	return &InlineElementBox{Element: e}
}

func (b *InlineElementBox) Ascent() fixed.Int26_6  { return b.Element.Ascent() }
func (b *InlineElementBox) Descent() fixed.Int26_6 { return b.Element.Descent() }
func (b *InlineElementBox) Advance() fixed.Int26_6 { return b.Element.Advance() }
func (b *InlineElementBox) Length() int            { return 1 }

func (b *InlineElementBox) PointInBox(position int) fixed.Int26_6 {
	if position == 0 {
		return 0
	}
	return b.Element.Advance()
}

func (b *InlineElementBox) PositionInBox(x fixed.Int26_6) int {
	if x < b.Element.Advance()/2 {
		return 0
	}
	return 1
}

// Place calls the element's Place hook once, recording that it has
// been placed so a later reflow doesn't double-place it.
func (b *InlineElementBox) Place(host any, x, y fixed.Int26_6) {
	b.Element.Place(host, x, y)
	b.Placed = true
}

// Delete calls the element's Remove hook iff it was placed.
func (b *InlineElementBox) Delete(host any) {
	if b.Placed {
		b.Element.Remove(host)
		b.Placed = false
	}
}
