// SPDX-License-Identifier: Unlicense OR MIT

// Package font describes the font and glyph contract the layout engine
// consumes. Font rasterization and glyph-atlas allocation are out of
// scope (spec.md §1): Provider is the seam a real font/shaping stack
// plugs into.
package font

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/f32"
)

// Style is the font style.
type Style int

// Weight is a font weight, in CSS units subtracted 400 so the zero
// value is normal text weight.
type Weight int

const (
	Regular Style = iota
	Italic
)

const (
	Thin       Weight = -300
	ExtraLight Weight = -200
	Light      Weight = -100
	Normal     Weight = 0
	Medium     Weight = 100
	SemiBold   Weight = 200
	Bold       Weight = 300
	ExtraBold  Weight = 400
	Black      Weight = 500
)

func (s Style) String() string {
	switch s {
	case Regular:
		return "Regular"
	case Italic:
		return "Italic"
	default:
		panic("invalid Style")
	}
}

func (w Weight) String() string {
	switch {
	case w <= Thin:
		return "Thin"
	case w <= ExtraLight:
		return "ExtraLight"
	case w <= Light:
		return "Light"
	case w <= Normal:
		return "Normal"
	case w <= Medium:
		return "Medium"
	case w <= SemiBold:
		return "SemiBold"
	case w <= Bold:
		return "Bold"
	case w <= ExtraBold:
		return "ExtraBold"
	default:
		return "Black"
	}
}

// Typeface identifies a particular typeface design. The empty string
// denotes the default typeface.
type Typeface string

// Description names the combination of style attributes that resolves
// to a Handle: font_name, font_size, bold, italic (§6).
type Description struct {
	Typeface Typeface
	SizePt   float32
	Style    Style
	Weight   Weight
}

// Handle is an opaque, comparable reference to a shaped font returned
// by a Resolver. Documents store Handles in their font run-list;
// equal Handles are assumed to shape identically.
type Handle interface {
	// Ascent and Descent report the font's natural line metrics in
	// pixels at the Handle's resolved size. Descent is non-positive.
	Ascent() fixed.Int26_6
	Descent() fixed.Int26_6
}

// Resolver turns a style Description into a concrete Handle. The
// Document is responsible for calling a Resolver and publishing the
// result through doc.Document.FontRuns; the layout engine itself never resolves
// fonts, it only reads the resulting run-list (§6).
type Resolver interface {
	Resolve(Description) (Handle, error)
}

// TextureID identifies the atlas texture a shaped Glyph's vertex data
// was rasterized into. The vertex builder (§4.6) groups glyph boxes by
// TextureID identity; any comparable dynamic type is valid.
type TextureID any

// Glyph is the shaped, placed representation of one character,
// produced by a Provider. All geometry is in font-local pixel
// coordinates (§3).
type Glyph struct {
	// Owner identifies the atlas texture this glyph's vertex data was
	// rasterized into.
	Owner TextureID
	// Ascent is the height above the baseline; Descent is the
	// (non-positive) depth below it.
	Ascent, Descent fixed.Int26_6
	// Advance is the horizontal pen displacement this glyph produces.
	Advance fixed.Int26_6
	// Vertices is the glyph quad in font-local coordinates:
	// (x0,y0)-(x1,y1).
	Vertices f32.Rectangle
	// TexCoords holds the four corners' texture coordinates, one
	// (u, v, layer) triple per vertex, wound the same way as Vertices.
	TexCoords [4][3]float32
}

// Provider shapes a substring of a document's text under a font
// Handle into a dense sequence of Glyphs, one per rune. Errors are
// propagated to the caller as lerr.ShapingFailed (§7); the engine
// never retries.
type Provider interface {
	Shape(text string, h Handle) ([]Glyph, error)
}
