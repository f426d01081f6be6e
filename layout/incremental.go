// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"image/color"
	"math"

	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/doc"
	"richtext.dev/layout/flow"
	"richtext.dev/layout/font"
	"richtext.dev/layout/invalid"
	"richtext.dev/layout/lerr"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
	"richtext.dev/layout/vbuild"
)

// listenable is implemented by documents that support registering a
// doc.Listener, such as rundoc.Document. It is satisfied via
// assertion rather than named in doc.Document itself, since most
// callers of the read-only contract have no mutation story at all.
type listenable interface {
	AddListener(doc.Listener)
}

// Incremental tracks the five invalid ranges from spec.md §4.5 and
// re-lays out only the characters, lines and vertex lists a document
// mutation actually touched (spec.md §6's "full pipeline"), grounded
// on IncrementalTextLayout (layout.py:1594-2263).
type Incremental struct {
	*Scrollable

	invalidGlyphs      *invalid.Range
	invalidFlow        *invalid.Range
	invalidLines       *invalid.Range
	invalidStyle       *invalid.Range
	invalidVertexLines *invalid.Range

	updateDepth int
	lastErr     error

	visibleStart, visibleEnd int

	selectionStart, selectionEnd     int
	selectionColor, selectionBGColor *color.NRGBA
}

// NewIncremental constructs an Incremental layout and, if document
// implements AddListener(doc.Listener), registers itself to receive
// future mutations automatically.
func NewIncremental(document doc.Document, provider font.Provider, dpi unit.DPI, batch *vbuild.Batch, parent *vbuild.Group, width, height fixed.Int26_6, widthSet, multiline bool) (*Incremental, error) {
	sc, err := NewScrollable(document, provider, dpi, batch, parent, width, height, widthSet, multiline)
	if err != nil {
		return nil, err
	}
	inc := &Incremental{
		Scrollable:         sc,
		invalidGlyphs:      invalid.New(),
		invalidFlow:        invalid.New(),
		invalidLines:       invalid.New(),
		invalidStyle:       invalid.New(),
		invalidVertexLines: invalid.New(),
		selectionStart:     0,
		selectionEnd:       0,
	}
	if l, ok := document.(listenable); ok {
		l.AddListener(inc)
	}
	inc.recomputeVisibility(true)
	return inc, nil
}

// Err returns the error from the most recent update cycle, if any.
func (inc *Incremental) Err() error { return inc.lastErr }

// BeginUpdate suppresses update() until a matching EndUpdate (spec.md
// §4.8); calls nest.
func (inc *Incremental) BeginUpdate() { inc.updateDepth++ }

// EndUpdate matches a BeginUpdate; the outermost call runs one
// update() pass.
func (inc *Incremental) EndUpdate() error {
	if inc.updateDepth > 0 {
		inc.updateDepth--
	}
	if inc.updateDepth == 0 {
		return inc.update()
	}
	return nil
}

func (inc *Incremental) maybeUpdate() {
	if inc.updateDepth == 0 {
		inc.lastErr = inc.update()
	}
}

// OnInsertText implements doc.Listener.
func (inc *Incremental) OnInsertText(pos int, text string) {
	n := len([]rune(text))
	if n == 0 {
		return
	}
	inc.cache.Insert(pos, n)
	inc.invalidGlyphs.Insert(pos, n)
	inc.invalidFlow.Insert(pos, n)
	inc.invalidLines.Insert(pos, n)
	inc.invalidStyle.Insert(pos, n)
	inc.invalidVertexLines.Insert(pos, n)
	inc.invalidGlyphs.Invalidate(pos, pos+n)
	if inc.selectionStart > pos {
		inc.selectionStart += n
	}
	if inc.selectionEnd > pos {
		inc.selectionEnd += n
	}
	inc.maybeUpdate()
}

// OnDeleteText implements doc.Listener.
func (inc *Incremental) OnDeleteText(start, end int) {
	if start >= end {
		return
	}
	inc.cache.Delete(start, end)
	inc.invalidGlyphs.Delete(start, end)
	inc.invalidFlow.Delete(start, end)
	inc.invalidLines.Delete(start, end)
	inc.invalidStyle.Delete(start, end)
	inc.invalidVertexLines.Delete(start, end)
	if start < inc.document.Len() {
		inc.invalidFlow.Invalidate(start, start+1)
	} else if start > 0 {
		inc.invalidFlow.Invalidate(start-1, start)
	}
	inc.selectionStart = shiftForDelete(inc.selectionStart, start, end)
	inc.selectionEnd = shiftForDelete(inc.selectionEnd, start, end)
	inc.maybeUpdate()
}

func shiftForDelete(pos, start, end int) int {
	switch {
	case pos > end:
		return pos - (end - start)
	case pos > start:
		return start
	default:
		return pos
	}
}

// OnStyleText implements doc.Listener. Invalidation is conservative:
// any recognized style change invalidates flow, lines and vertex
// lines over its range, and font-affecting attributes additionally
// invalidate glyphs. The original distinguishes narrower
// per-attribute invalidation (e.g. color only touches vertex build);
// this trades some recompute for a single, always-correct path.
func (inc *Incremental) OnStyleText(start, end int, attributes []string) {
	if start >= end {
		return
	}
	for _, name := range attributes {
		if isFontAttribute(name) {
			inc.invalidGlyphs.Invalidate(start, end)
		}
	}
	inc.invalidFlow.Invalidate(start, end)
	inc.invalidLines.Invalidate(start, end)
	inc.invalidStyle.Invalidate(start, end)
	inc.invalidVertexLines.Invalidate(start, end)
	inc.maybeUpdate()
}

func isFontAttribute(name string) bool {
	switch name {
	case doc.FontName, doc.FontSize, doc.Bold, doc.Italic:
		return true
	default:
		return false
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// update runs the five ordered passes guarded by their invalid
// ranges (spec.md §4.8), firing OnLayoutUpdate at most once.
func (inc *Incremental) update() error {
	n := inc.document.Len()
	changed := false

	if inc.invalidGlyphs.IsInvalid() {
		gs, ge := inc.invalidGlyphs.Validate()
		gs, ge = clampInt(gs, 0, n), clampInt(ge, 0, n)
		if gs < ge {
			shaper := flow.Shaper{Provider: inc.provider}
			if err := shaper.Reshape(inc.document, inc.dpi, inc.cache, gs, ge); err != nil {
				inc.invalidGlyphs.Invalidate(gs, ge)
				return err
			}
			inc.invalidFlow.Invalidate(gs, ge)
			changed = true
		}
	}

	if inc.invalidFlow.IsInvalid() {
		fs, fe := inc.invalidFlow.Validate()
		fs, fe = clampInt(fs, 0, n), clampInt(fe, 0, n)
		if fs <= fe {
			inc.reflow(fs)
			changed = true
		}
	}

	if inc.invalidLines.IsInvalid() {
		ls, le := inc.invalidLines.Validate()
		idx := inc.lineIndexAtOrAfter(ls)
		invalidEnd := inc.lineIndexAtOrAfter(le)
		placer := flow.NewVerticalPlacer(inc.document)
		_, cw, ch := placer.Place(inc.lines, idx, invalidEnd, inc.dpi, inc.width, inc.widthSet)
		inc.contentWidth, inc.contentHeight = cw, ch
		inc.clampView()
		changed = true
	}

	inc.recomputeVisibility(false)

	vs, ve, haveVertexWork := math.MaxInt, 0, false
	if inc.invalidVertexLines.IsInvalid() {
		s, e := inc.invalidVertexLines.Validate()
		vs, ve = min(vs, s), max(ve, e)
		haveVertexWork = true
	}
	if inc.invalidStyle.IsInvalid() {
		s, e := inc.invalidStyle.Validate()
		vs, ve = min(vs, s), max(ve, e)
		haveVertexWork = true
	}
	if haveVertexWork {
		inc.rebuildVertices(vs, ve)
	}

	if changed && inc.onLayoutUpdate != nil {
		inc.onLayoutUpdate()
	}
	return nil
}

// reflow re-runs flow from the line containing fs through the end of
// the document, replacing every line from that point on. The original
// stops as soon as the regenerated lines reconverge with the
// untouched tail; this always rebuilds to the end of the document,
// trading the convergence optimization for a simpler, certainly
// correct implementation (see DESIGN.md).
func (inc *Incremental) reflow(fs int) {
	n := inc.document.Len()
	startIdx := len(inc.lines)
	for i, l := range inc.lines {
		if l.Start >= fs {
			startIdx = i
			break
		}
	}
	flowFrom := fs
	if startIdx > 0 && startIdx <= len(inc.lines) {
		prevEndLine := startIdx - 1
		if prevEndLine >= 0 && inc.lines[prevEndLine].Start <= fs && inc.lines[prevEndLine].Start+inc.lines[prevEndLine].Length > fs {
			startIdx = prevEndLine
			flowFrom = inc.lines[prevEndLine].Start
		}
	}

	for _, l := range inc.lines[startIdx:] {
		inc.deleteLineVertices(l)
		l.Delete(inc)
	}
	inc.lines = inc.lines[:startIdx]

	var newLines []*flow.Line
	if inc.multiline {
		flow.FlowWrapped(inc.document, inc.dpi, inc.cache, inc.width, inc.widthSet, flowFrom, n, func(l *flow.Line) bool {
			newLines = append(newLines, l)
			return true
		})
		if len(newLines) == 0 {
			newLines = append(newLines, flow.FlowSingleLine(inc.document, inc.dpi, inc.cache, flowFrom, flowFrom))
		}
	} else {
		newLines = append(newLines, flow.FlowSingleLine(inc.document, inc.dpi, inc.cache, 0, n))
		inc.lines = nil
		startIdx = 0
	}
	inc.lines = append(inc.lines, newLines...)

	inc.invalidLines.Invalidate(startIdx, len(inc.lines))
	for _, l := range newLines {
		inc.invalidVertexLines.Invalidate(l.Start, l.Start+maxInt(l.Length, 1))
	}
}

func (inc *Incremental) lineIndexAtOrAfter(pos int) int {
	for i, l := range inc.lines {
		if l.Start >= pos {
			return i
		}
	}
	if len(inc.lines) == 0 {
		return 0
	}
	return len(inc.lines) - 1
}

// recomputeVisibility diffs the visible line window against the
// viewport, releasing vertex lines for lines that left it and marking
// lines that entered it dirty for rebuild (spec.md §4.7). force
// treats every currently-visible line as newly entered, used on
// construction.
func (inc *Incremental) recomputeVisibility(force bool) {
	yTop := -inc.viewY
	yBottom := yTop - inc.height

	newStart, newEnd := len(inc.lines), len(inc.lines)
	for i, l := range inc.lines {
		visible := l.Y+l.Descent <= yTop && l.Y+l.Ascent >= yBottom
		if visible {
			if newStart == len(inc.lines) {
				newStart = i
			}
			newEnd = i + 1
		} else if newStart != len(inc.lines) {
			break
		}
	}
	if newStart == len(inc.lines) {
		newStart, newEnd = 0, 0
	}

	for i := inc.visibleStart; i < inc.visibleEnd && i < len(inc.lines); i++ {
		if i < newStart || i >= newEnd {
			inc.deleteLineVertices(inc.lines[i])
		}
	}
	for i := newStart; i < newEnd; i++ {
		if force || i < inc.visibleStart || i >= inc.visibleEnd {
			l := inc.lines[i]
			inc.invalidVertexLines.Invalidate(l.Start, l.Start+maxInt(l.Length, 1))
		}
	}
	inc.visibleStart, inc.visibleEnd = newStart, newEnd
}

func (inc *Incremental) rebuildVertices(vs, ve int) {
	d := inc.selectionDocument()
	for i := inc.visibleStart; i < inc.visibleEnd && i < len(inc.lines); i++ {
		l := inc.lines[i]
		lineEnd := l.Start + maxInt(l.Length, 1)
		if lineEnd <= vs || l.Start >= ve {
			continue
		}
		inc.deleteLineVertices(l)
		vbuild.BuildLine(inc.batch, inc.group, d, inc.dpi, l, inc)
	}
}

// selectionDoc overlays the selection's color/background over the
// underlying document's style runs, via runlist.OverriddenRunIterator
// (spec.md §6's selection_color/selection_background_color).
type selectionDoc struct {
	doc.Document
	start, end int
	color, bg  *color.NRGBA
}

func (s selectionDoc) StyleRuns(name string) runlist.Ranger[any] {
	base := s.Document.StyleRuns(name)
	if s.start >= s.end {
		return base
	}
	switch {
	case name == doc.Color && s.color != nil:
		return runlist.OverriddenRunIterator[any](base, s.start, s.end, any(*s.color))
	case name == doc.BackgroundColor && s.bg != nil:
		return runlist.OverriddenRunIterator[any](base, s.start, s.end, any(*s.bg))
	default:
		return base
	}
}

func (inc *Incremental) selectionDocument() doc.Document {
	if inc.selectionColor == nil && inc.selectionBGColor == nil {
		return inc.document
	}
	return selectionDoc{
		Document: inc.document,
		start:    inc.selectionStart,
		end:      inc.selectionEnd,
		color:    inc.selectionColor,
		bg:       inc.selectionBGColor,
	}
}

// SetSelection sets the selection range, clamped to the document.
// Only the symmetric difference of the old and new ranges is marked
// dirty on invalid_style (spec.md §4.4), so moving one end of a large
// selection does not force a full-selection vertex rebuild.
func (inc *Incremental) SetSelection(start, end int) error {
	if start < 0 || end < start {
		return lerr.Invalid("layout: selection bounds reversed or negative")
	}
	n := inc.document.Len()
	oldStart, oldEnd := inc.selectionStart, inc.selectionEnd
	inc.selectionStart, inc.selectionEnd = clampInt(start, 0, n), clampInt(end, 0, n)
	invalidateSymmetricDiff(inc.invalidStyle, oldStart, oldEnd, inc.selectionStart, inc.selectionEnd)
	inc.maybeUpdate()
	return nil
}

// SetSelectionColor sets the selected text's foreground color; nil
// clears the override.
func (inc *Incremental) SetSelectionColor(c *color.NRGBA) {
	inc.selectionColor = c
	inc.invalidateSelectionVertices()
}

// SetSelectionBackgroundColor sets the selected text's background
// fill; nil clears the override.
func (inc *Incremental) SetSelectionBackgroundColor(c *color.NRGBA) {
	inc.selectionBGColor = c
	inc.invalidateSelectionVertices()
}

func (inc *Incremental) invalidateSelectionVertices() {
	if inc.selectionStart < inc.selectionEnd {
		inc.invalidStyle.Invalidate(inc.selectionStart, inc.selectionEnd)
		inc.maybeUpdate()
	}
}

// invalidateSymmetricDiff marks r dirty over the symmetric difference
// of [a0,a1) and [b0,b1): the parts covered by exactly one of the two
// ranges.
func invalidateSymmetricDiff(r *invalid.Range, a0, a1, b0, b1 int) {
	if a0 >= a1 {
		r.Invalidate(b0, b1)
		return
	}
	if b0 >= b1 {
		r.Invalidate(a0, a1)
		return
	}
	overlap := a0 < b1 && b0 < a1
	if !overlap {
		r.Invalidate(a0, a1)
		r.Invalidate(b0, b1)
		return
	}
	if a0 != b0 {
		r.Invalidate(min(a0, b0), max(a0, b0))
	}
	if a1 != b1 {
		r.Invalidate(min(a1, b1), max(a1, b1))
	}
}
