// SPDX-License-Identifier: Unlicense OR MIT

// Package layout assembles the shaper, flow, vertical placer and
// vertex builder into the three stable layout classes the engine
// exposes (spec.md §6): Static, Scrollable and Incremental, grounded
// on the original's TextLayout → ScrollableTextLayout →
// IncrementalTextLayout hierarchy (layout.py:634-2263), carried into
// Go by embedding in that order.
package layout

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/doc"
	"richtext.dev/layout/flow"
	"richtext.dev/layout/font"
	"richtext.dev/layout/lerr"
	"richtext.dev/layout/unit"
	"richtext.dev/layout/vbuild"
)

// Static relays out its entire document on construction and on every
// SetWidth or SetMultiline call; it tracks no viewport and no
// visibility window. It does not register for document change
// notifications, and its glyph cache keeps the document length seen at
// construction, so edits made to the document afterwards are not
// followed.
type Static struct {
	document doc.Document
	provider font.Provider
	dpi      unit.DPI
	batch    *vbuild.Batch
	group    *vbuild.Group

	x, y                fixed.Int26_6
	width, height       fixed.Int26_6
	widthSet            bool
	multiline           bool
	halign, valign      string
	contentWidth        fixed.Int26_6
	contentHeight       fixed.Int26_6

	cache *flow.GlyphCache
	lines []*flow.Line

	onLayoutUpdate func()
}

// NewStatic constructs a Static layout over document, shaping with
// provider at dpi and emitting vertex geometry into batch under
// parent. widthSet selects whether width is an enforced wrap/anchor
// width or merely advisory (spec.md §6's constructor parameter list).
func NewStatic(document doc.Document, provider font.Provider, dpi unit.DPI, batch *vbuild.Batch, parent *vbuild.Group, width, height fixed.Int26_6, widthSet, multiline bool) (*Static, error) {
	if document == nil || provider == nil || batch == nil {
		return nil, lerr.Invalid("layout: document, provider and batch must not be nil")
	}
	if width < 0 || height < 0 {
		return nil, lerr.Invalid("layout: width and height must be non-negative")
	}
	s := &Static{
		document:  document,
		provider:  provider,
		dpi:       dpi,
		batch:     batch,
		group:     parent,
		width:     width,
		height:    height,
		widthSet:  widthSet,
		multiline: multiline,
		halign:    "left",
		valign:    "top",
		cache:     flow.NewGlyphCache(),
	}
	s.cache.Insert(0, document.Len())
	if err := s.relayoutAll(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetOnLayoutUpdate registers the callback fired once per update
// cycle that changed shaping, flow or line placement (spec.md §4.8).
func (s *Static) SetOnLayoutUpdate(f func()) { s.onLayoutUpdate = f }

func (s *Static) Document() doc.Document { return s.document }
func (s *Static) ContentWidth() fixed.Int26_6  { return s.contentWidth }
func (s *Static) ContentHeight() fixed.Int26_6 { return s.contentHeight }
func (s *Static) LineCount() int               { return len(s.lines) }

// SetX, SetY position the layout's anchor in the host's coordinate
// space; they trigger neither a relayout nor a vertex rebuild. Vertex
// data stays in layout-local coordinates, so applying the translation
// when drawing is left to the caller; the position queries do apply it.
func (s *Static) SetX(x fixed.Int26_6) { s.x = x }
func (s *Static) SetY(y fixed.Int26_6) { s.y = y }
func (s *Static) X() fixed.Int26_6     { return s.x }
func (s *Static) Y() fixed.Int26_6     { return s.y }
func (s *Static) Width() fixed.Int26_6  { return s.width }
func (s *Static) Height() fixed.Int26_6 { return s.height }

// SetWidth changes the wrap/anchor width and relays out the document.
func (s *Static) SetWidth(width fixed.Int26_6, set bool) error {
	if width < 0 {
		return lerr.Invalid("layout: width must be non-negative")
	}
	s.width, s.widthSet = width, set
	return s.relayoutAll()
}

// SetHeight changes the height reported by Height, which Scrollable
// uses for its viewport and scroll clamping. valign anchoring uses the
// content height, not this value.
func (s *Static) SetHeight(height fixed.Int26_6) error {
	if height < 0 {
		return lerr.Invalid("layout: height must be non-negative")
	}
	s.height = height
	return nil
}

// SetMultiline toggles word-wrap/paragraph flow versus single-line
// mode and relays out the document.
func (s *Static) SetMultiline(multiline bool) error {
	s.multiline = multiline
	return s.relayoutAll()
}

// SetAlign sets the overall content anchor (distinct from the
// per-paragraph align style attribute, spec.md §6).
func (s *Static) SetAlign(halign, valign string) {
	s.halign, s.valign = halign, valign
}

// Delete releases every vertex list this layout owns. The layout must
// not be used afterward.
func (s *Static) Delete() {
	for _, l := range s.lines {
		s.deleteLineVertices(l)
		l.Delete(s)
	}
	s.lines = nil
}

func (s *Static) deleteLineVertices(l *flow.Line) {
	for _, vl := range l.VertexLines {
		if v, ok := vl.(*vbuild.VertexList); ok {
			s.batch.Delete(v)
		}
	}
	l.VertexLines = nil
}

// relayoutAll re-shapes, re-flows, re-places and rebuilds vertices for
// the whole document; it is Static's only update policy (spec.md
// §6's "any mutation re-lays out the entire document").
func (s *Static) relayoutAll() error {
	n := s.document.Len()
	shaper := flow.Shaper{Provider: s.provider}
	if n > 0 {
		if err := shaper.Reshape(s.document, s.dpi, s.cache, 0, n); err != nil {
			return err
		}
	}

	for _, l := range s.lines {
		s.deleteLineVertices(l)
		l.Delete(s)
	}

	var lines []*flow.Line
	if s.multiline {
		flow.FlowWrapped(s.document, s.dpi, s.cache, s.width, s.widthSet, 0, n, func(l *flow.Line) bool {
			lines = append(lines, l)
			return true
		})
		if len(lines) == 0 {
			lines = append(lines, flow.FlowSingleLine(s.document, s.dpi, s.cache, 0, 0))
		}
	} else {
		lines = append(lines, flow.FlowSingleLine(s.document, s.dpi, s.cache, 0, n))
	}
	s.lines = lines

	placer := flow.NewVerticalPlacer(s.document)
	_, cw, ch := placer.Place(s.lines, 0, len(s.lines), s.dpi, s.width, s.widthSet)
	s.contentWidth, s.contentHeight = cw, ch

	for _, l := range s.lines {
		vbuild.BuildLine(s.batch, s.group, s.document, s.dpi, l, s)
	}

	if s.onLayoutUpdate != nil {
		s.onLayoutUpdate()
	}
	return nil
}

// anchorOffset returns the translation applied on top of (x,y) to
// honor halign/valign against the current content box.
func (s *Static) anchorOffset() (dx, dy fixed.Int26_6) {
	switch s.halign {
	case "center":
		dx = -s.contentWidth / 2
	case "right":
		dx = -s.contentWidth
	}
	switch s.valign {
	case "center":
		dy = s.contentHeight / 2
	case "bottom":
		dy = s.contentHeight
	}
	return dx, dy
}
