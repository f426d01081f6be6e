// SPDX-License-Identifier: Unlicense OR MIT

// Package doc declares the external document contract the layout
// engine consumes (spec.md §6): character storage plus, for every
// recognized style attribute, a RunList-backed view over it. The
// engine never mutates a Document; rundoc provides a concrete,
// mutable implementation, but any type satisfying Document works.
package doc

import (
	"richtext.dev/layout/box"
	"richtext.dev/layout/font"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
)

// Recognized style attribute names (spec.md §6).
const (
	FontName         = "font_name"
	FontSize         = "font_size"
	Bold             = "bold"
	Italic           = "italic"
	Underline        = "underline"
	Kerning          = "kerning"
	Baseline         = "baseline"
	Color            = "color"
	BackgroundColor  = "background_color"
	Align            = "align"
	Indent           = "indent"
	Leading          = "leading"
	LineSpacing      = "line_spacing"
	MarginLeft       = "margin_left"
	MarginRight      = "margin_right"
	MarginTop        = "margin_top"
	MarginBottom     = "margin_bottom"
	TabStops         = "tab_stops"
	Wrap             = "wrap"
)

// Document is the read contract the layout engine needs. Text
// indices are character (rune) positions, not byte offsets.
type Document interface {
	// Text returns the full document text.
	Text() string
	// Len returns len([]rune(Text())).
	Len() int
	// FontRuns returns the font at each character position, resolved
	// for the given DPI.
	FontRuns(dpi unit.DPI) runlist.Ranger[font.Handle]
	// ElementRuns returns the inline element at each character
	// position, nil where there is none.
	ElementRuns() runlist.Ranger[box.Element]
	// StyleRuns returns the named style attribute's run-list. The
	// caller knows the concrete type to assert from the table in
	// spec.md §6; unrecognized names return an all-nil Ranger.
	StyleRuns(name string) runlist.Ranger[any]
}

// Listener receives document change notifications (spec.md §6). A
// layout registers itself as a document's Listener to react to
// mutations with O(1) invalid-range updates.
type Listener interface {
	OnInsertText(start int, text string)
	OnDeleteText(start, end int)
	OnStyleText(start, end int, attributes []string)
}
