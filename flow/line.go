// SPDX-License-Identifier: Unlicense OR MIT

// Package flow implements shaping, line breaking and vertical
// placement: spec.md §4.2, §4.3 and §4.4, grounded on the pyglet
// original's _get_glyphs/_get_owner_runs (layout.py:920-942),
// _flow_glyphs_wrap (layout.py:954-1201), _flow_glyphs_single_line
// (layout.py:1203-1236) and _flow_lines (layout.py:1238-1306).
package flow

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/box"
)

// Alignment is a paragraph's horizontal text alignment.
type Alignment int

const (
	Left Alignment = iota
	Center
	Right
)

// ParseAlignment maps a style value to an Alignment, defaulting to
// Left for anything else (spec.md §6: align "else left").
func ParseAlignment(v any) Alignment {
	switch v {
	case "center":
		return Center
	case "right":
		return Right
	default:
		return Left
	}
}

// Line is a horizontal row of boxes (spec.md §3).
type Line struct {
	Start, Length                int
	Boxes                        []box.Box
	Ascent, Descent, Width       fixed.Int26_6
	X, Y                         fixed.Int26_6
	MarginLeft, MarginRight      fixed.Int26_6
	Align                        Alignment
	ParagraphBegin, ParagraphEnd bool

	// VertexLines are the vertex-list handles the vertex builder
	// attached to this line; Delete clears them, and returning them
	// to their Batch is left to the caller.
	VertexLines []any
}

// NewLine starts an empty line at document position start.
func NewLine(start int) *Line {
	return &Line{Start: start}
}

// AddBox appends a box, folding its ascent/descent/advance/length
// into the line's running totals.
func (l *Line) AddBox(b box.Box) {
	if len(l.Boxes) == 0 || b.Ascent() > l.Ascent {
		l.Ascent = b.Ascent()
	}
	if len(l.Boxes) == 0 || b.Descent() < l.Descent {
		l.Descent = b.Descent()
	}
	l.Boxes = append(l.Boxes, b)
	l.Width += b.Advance()
	l.Length += b.Length()
}

// Delete releases the line's placed inline elements and clears its
// vertex-list handles without returning them to a Batch (the layout
// does that before calling Delete). host is passed through to box.Element.Remove untyped, same as
// box.InlineElementBox.Delete.
func (l *Line) Delete(host any) {
	for _, b := range l.Boxes {
		if eb, ok := b.(*box.InlineElementBox); ok {
			eb.Delete(host)
		}
	}
	l.VertexLines = nil
}

// align computes line.X from its alignment, width and margins,
// forcing left alignment when the line overflows the layout width
// (spec.md §4.4).
func align(a Alignment, marginLeft, marginRight, width, layoutWidth fixed.Int26_6, layoutWidthSet bool) fixed.Int26_6 {
	if layoutWidthSet && width > layoutWidth {
		a = Left
	}
	switch a {
	case Right:
		return layoutWidth - marginRight - width
	case Center:
		return marginLeft + (layoutWidth-marginLeft-marginRight-width)/2
	default:
		return marginLeft
	}
}
