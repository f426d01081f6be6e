// SPDX-License-Identifier: Unlicense OR MIT

package vbuild

import (
	"image/color"

	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/box"
	"richtext.dev/layout/doc"
	"richtext.dev/layout/flow"
	"richtext.dev/layout/font"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
)

var opaqueBlack = color.NRGBA{A: 255}

func toFloat(v fixed.Int26_6) float32 { return float32(v) / 64 }

func colorIter(d doc.Document) runlist.Ranger[any] {
	return runlist.FilteredRunIterator[any](d.StyleRuns(doc.Color), any(opaqueBlack), func(v any) bool {
		_, ok := v.(color.NRGBA)
		return ok
	})
}

func nullableColorIter(d doc.Document, name string) runlist.Ranger[any] {
	return d.StyleRuns(name)
}

func baselineIter(d doc.Document, dpi unit.DPI) func(i int) fixed.Int26_6 {
	pts := optionalPointsLocal(d, doc.Baseline)
	return func(i int) fixed.Int26_6 {
		v, ok := pts.At(i, dpi)
		if !ok {
			return 0
		}
		return v
	}
}

type pointsLocal struct{ src runlist.Ranger[any] }

func optionalPointsLocal(d doc.Document, name string) pointsLocal {
	return pointsLocal{src: d.StyleRuns(name)}
}

func (p pointsLocal) At(i int, dpi unit.DPI) (fixed.Int26_6, bool) {
	v, ok := p.src.At(i).(float32)
	if !ok {
		return 0, false
	}
	return fixed.I(dpi.Px(unit.Pt(v))), true
}

// locator flattens a line's boxes into an O(boxes) index that maps an
// absolute character position to the box covering it and the pen
// position at that box's start.
type locator struct {
	line  *flow.Line
	boxes []box.Box
	starts []int          // absolute char start of each box
	xs     []fixed.Int26_6 // pen x at each box's start
}

func newLocator(line *flow.Line) *locator {
	l := &locator{line: line}
	abs := line.Start
	x := line.X
	for _, b := range line.Boxes {
		l.boxes = append(l.boxes, b)
		l.starts = append(l.starts, abs)
		l.xs = append(l.xs, x)
		abs += b.Length()
		x += b.Advance()
	}
	return l
}

// at returns the box covering absolute position i, i's offset within
// that box, and the box's pen start x.
func (l *locator) at(i int) (b box.Box, local int, boxX fixed.Int26_6, ok bool) {
	for k, s := range l.starts {
		e := l.line.Start + l.line.Length
		if k+1 < len(l.starts) {
			e = l.starts[k+1]
		}
		if i >= s && i < e {
			return l.boxes[k], i - s, l.xs[k], true
		}
	}
	return nil, 0, 0, false
}

// BuildLine emits foreground glyph quads, background quads and
// underlines for line into batch under parent, and places any inline
// elements not yet placed (spec.md §4.6), grounded on
// _GlyphBox.place / _create_vertex_lists (layout.py:274-420).
func BuildLine(batch *Batch, parent *Group, d doc.Document, dpi unit.DPI, line *flow.Line, host any) {
	if line.Length == 0 && len(line.Boxes) == 0 {
		return
	}
	loc := newLocator(line)
	baseline := baselineIter(d, dpi)
	colors := colorIter(d)
	bgColors := nullableColorIter(d, doc.BackgroundColor)
	underlines := nullableColorIter(d, doc.Underline)

	buildForeground(batch, parent, loc, line, baseline, colors)
	buildBackground(batch, parent, loc, line, baseline, bgColors)
	buildUnderline(batch, parent, loc, line, baseline, underlines)

	for _, b := range line.Boxes {
		if eb, ok := b.(*box.InlineElementBox); ok && !eb.Placed {
			bx, _, boxX, _ := loc.at(lineBoxAbsStart(loc, b))
			_ = bx
			eb.Place(host, boxX, line.Y)
		}
	}
}

func lineBoxAbsStart(loc *locator, b box.Box) int {
	for k, bb := range loc.boxes {
		if bb == b {
			return loc.starts[k]
		}
	}
	return loc.line.Start
}

// buildForeground emits one VertexList per maximal sub-range sharing
// a (texture owner, baseline) pair, per spec.md §4.6 and
// _GlyphBox.place (layout.py:274-312): characters within a run still
// carry individual colors, but the quads themselves are coalesced
// into a single draw call instead of one VertexList per glyph.
func buildForeground(batch *Batch, parent *Group, loc *locator, line *flow.Line, baseline func(int) fixed.Int26_6, colors runlist.Ranger[any]) {
	start, end := line.Start, line.Start+line.Length
	var vl *VertexList
	var curOwner font.TextureID
	var curBaseline fixed.Int26_6
	haveCur := false

	for i := start; i < end; i++ {
		b, local, boxX, ok := loc.at(i)
		if !ok {
			continue
		}
		gb, ok := b.(*box.GlyphBox)
		if !ok {
			haveCur = false
			continue
		}
		bl := baseline(i)
		if !haveCur || gb.Owner != curOwner || bl != curBaseline {
			g := batch.GroupFor(OrderForeground, gb.Owner, parent)
			vl = batch.Add(&VertexList{Group: g, Mode: Triangles,
				Positions: batch.pool.get(), TexCoords: batch.pool.get(), Colors: batch.pool.get()})
			curOwner, curBaseline, haveCur = gb.Owner, bl, true
		}
		kg := gb.Glyphs[local]
		x := boxX + gb.PointInBox(local)
		y := line.Y + bl
		col := colors.At(i).(color.NRGBA)
		appendGlyphQuad(vl, toFloat(x), toFloat(y), kg.Glyph.Vertices, kg.Glyph.TexCoords, col)
	}
}

func buildBackground(batch *Batch, parent *Group, loc *locator, line *flow.Line, baseline func(int) fixed.Int26_6, bg runlist.Ranger[any]) {
	group := batch.GroupFor(OrderBackground, nil, parent)
	for c := bg.Ranges(line.Start, line.Start+line.Length); c.Next(); {
		s, e, v := c.Range()
		col, ok := v.(color.NRGBA)
		if !ok {
			continue
		}
		bS, lS, xS, okS := loc.at(s)
		bE, lE, xE, okE := loc.at(e - 1)
		if !okS || !okE {
			continue
		}
		x1 := xS + bS.PointInBox(lS)
		x2 := xE + bE.PointInBox(lE+1)
		y := line.Y + baseline(s)
		vl := batch.Add(&VertexList{Group: group, Mode: Triangles,
			Positions: batch.pool.get(), TexCoords: batch.pool.get(), Colors: batch.pool.get()})
		appendRectQuad(vl, toFloat(x1), toFloat(y+line.Descent), toFloat(x2), toFloat(y+line.Ascent), col)
	}
}

func buildUnderline(batch *Batch, parent *Group, loc *locator, line *flow.Line, baseline func(int) fixed.Int26_6, underline runlist.Ranger[any]) {
	group := batch.GroupFor(OrderDecoration, nil, parent)
	for c := underline.Ranges(line.Start, line.Start+line.Length); c.Next(); {
		s, e, v := c.Range()
		col, ok := v.(color.NRGBA)
		if !ok {
			continue
		}
		bS, lS, xS, okS := loc.at(s)
		bE, lE, xE, okE := loc.at(e - 1)
		if !okS || !okE {
			continue
		}
		x1 := xS + bS.PointInBox(lS)
		x2 := xE + bE.PointInBox(lE+1)
		y := line.Y + baseline(s) - fixed.I(2)
		vl := batch.Add(&VertexList{Group: group, Mode: Lines,
			Positions: batch.pool.get(), TexCoords: batch.pool.get(), Colors: batch.pool.get()})
		appendLine(vl, toFloat(x1), toFloat(y), toFloat(x2), toFloat(y), col)
	}
}
