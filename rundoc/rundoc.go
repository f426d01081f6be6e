// SPDX-License-Identifier: Unlicense OR MIT

// Package rundoc provides a minimal, mutable implementation of the
// document contract in doc.Document (spec.md §6): plain text storage
// plus a RunList per style attribute that has been set, a font run-list
// resolved through a font.Resolver, and an element run-list. It
// exists to make the layout engine exercisable without requiring
// every caller to write their own document; grounded on the shape of
// pyglet's AbstractDocument/UnformattedDocument (referenced, not
// copied, from the original's surrounding document.py, which was not
// included in the retrieval pack — the run-list mechanics instead
// follow spec.md §3/§4.1 directly).
package rundoc

import (
	"richtext.dev/layout/box"
	"richtext.dev/layout/doc"
	"richtext.dev/layout/font"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
)

// Document is a RunList-backed, mutable document.
type Document struct {
	runes    []rune
	styles   map[string]*runlist.RunList[any]
	elements *runlist.RunList[box.Element]
	fonts    *runlist.RunList[font.Handle]

	resolver  font.Resolver
	fontCache map[font.Description]font.Handle

	listeners []doc.Listener
}

// NewDocument returns an empty Document. resolver is used to turn
// font_name/font_size/bold/italic style runs into font.Handles; it
// must not be nil. Resolution is performed once, at the DPI the
// resolver was constructed for — a rundoc.Document is bound to one
// DPI for its lifetime, unlike the dpi parameter in
// doc.Document.FontRuns, which this type accepts but ignores (see
// DESIGN.md).
func NewDocument(resolver font.Resolver) *Document {
	return &Document{
		styles:    make(map[string]*runlist.RunList[any]),
		elements:  runlist.New[box.Element](0, nil),
		fonts:     runlist.New[font.Handle](0, nil),
		resolver:  resolver,
		fontCache: make(map[font.Description]font.Handle),
	}
}

// AddListener registers l to receive future mutation notifications.
func (d *Document) AddListener(l doc.Listener) {
	d.listeners = append(d.listeners, l)
}

func (d *Document) Text() string { return string(d.runes) }
func (d *Document) Len() int     { return len(d.runes) }

func (d *Document) FontRuns(unit.DPI) runlist.Ranger[font.Handle] { return d.fonts }
func (d *Document) ElementRuns() runlist.Ranger[box.Element]      { return d.elements }

func (d *Document) StyleRuns(name string) runlist.Ranger[any] {
	if rl, ok := d.styles[name]; ok {
		return rl
	}
	return runlist.NewConst[any](d.Len(), nil)
}

func (d *Document) styleAt(name string, i int) any {
	rl, ok := d.styles[name]
	if !ok || i < 0 || i >= rl.Len() {
		return nil
	}
	return rl.At(i)
}

// InsertText inserts text at character position pos, growing every
// style/element/font run-list and resolving fonts for the new span.
func (d *Document) InsertText(pos int, text string) {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return
	}
	grown := make([]rune, len(d.runes)+n)
	copy(grown, d.runes[:pos])
	copy(grown[pos:], runes)
	copy(grown[pos+n:], d.runes[pos:])
	d.runes = grown

	for _, rl := range d.styles {
		rl.Insert(pos, n)
	}
	d.elements.Insert(pos, n)
	d.fonts.Insert(pos, n)
	d.recomputeFonts(pos, pos+n)

	for _, l := range d.listeners {
		l.OnInsertText(pos, text)
	}
}

// DeleteText removes [start,end).
func (d *Document) DeleteText(start, end int) {
	if start >= end {
		return
	}
	d.runes = append(d.runes[:start], d.runes[end:]...)
	for _, rl := range d.styles {
		rl.Delete(start, end)
	}
	d.elements.Delete(start, end)
	d.fonts.Delete(start, end)

	for _, l := range d.listeners {
		l.OnDeleteText(start, end)
	}
}

// SetStyle sets attribute name to value over [start,end), resolving
// fonts again if the attribute affects font selection.
func (d *Document) SetStyle(start, end int, name string, value any) {
	if start >= end {
		return
	}
	rl, ok := d.styles[name]
	if !ok {
		rl = runlist.New[any](d.Len(), nil)
		d.styles[name] = rl
	}
	rl.SetRun(start, end, value)
	if isFontAttribute(name) {
		d.recomputeFonts(start, end)
	}
	for _, l := range d.listeners {
		l.OnStyleText(start, end, []string{name})
	}
}

// SetElement attaches an inline element to [start,end).
func (d *Document) SetElement(start, end int, e box.Element) {
	if start >= end {
		return
	}
	d.elements.SetRun(start, end, e)
	for _, l := range d.listeners {
		l.OnStyleText(start, end, []string{"element"})
	}
}

func isFontAttribute(name string) bool {
	switch name {
	case doc.FontName, doc.FontSize, doc.Bold, doc.Italic:
		return true
	default:
		return false
	}
}

func (d *Document) recomputeFonts(start, end int) {
	for i := start; i < end; i++ {
		desc := font.Description{
			Typeface: font.Typeface(asString(d.styleAt(doc.FontName, i), "")),
			SizePt:   asFloat(d.styleAt(doc.FontSize, i), 12),
			Weight:   font.Normal,
			Style:    font.Regular,
		}
		if asBool(d.styleAt(doc.Bold, i), false) {
			desc.Weight = font.Bold
		}
		if asBool(d.styleAt(doc.Italic, i), false) {
			desc.Style = font.Italic
		}
		d.fonts.SetRun(i, i+1, d.resolve(desc))
	}
}

func (d *Document) resolve(desc font.Description) font.Handle {
	if h, ok := d.fontCache[desc]; ok {
		return h
	}
	h, err := d.resolver.Resolve(desc)
	if err != nil {
		h = nil
	}
	d.fontCache[desc] = h
	return h
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func asFloat(v any, def float32) float32 {
	if f, ok := v.(float32); ok {
		return f
	}
	return def
}

func asBool(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}
