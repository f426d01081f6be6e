// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/doc"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
)

// points reads a numeric style run-list (stored in points, spec.md
// §6) filtered to float32 values, defaulting to def, and converts
// each lookup to pixels on demand.
type pointsIter struct {
	src runlist.Ranger[any]
	dpi unit.DPI
}

func points(d doc.Document, name string, def float32) pointsIter {
	filtered := runlist.FilteredRunIterator[any](d.StyleRuns(name), any(def), func(v any) bool {
		_, ok := v.(float32)
		return ok
	})
	return pointsIter{src: filtered}
}

func (p pointsIter) At(i int, dpi unit.DPI) fixed.Int26_6 {
	v := p.src.At(i).(float32)
	return fixed.I(dpi.Px(unit.Pt(v)))
}

// optionalPoints is like points but distinguishes "unset" (returns
// ok=false) from an explicit numeric value, used for line_spacing
// which overrides ascent+descent only when set (spec.md §4.4).
type optionalPointsIter struct {
	src runlist.Ranger[any]
}

func optionalPoints(d doc.Document, name string) optionalPointsIter {
	return optionalPointsIter{src: d.StyleRuns(name)}
}

func (p optionalPointsIter) At(i int, dpi unit.DPI) (fixed.Int26_6, bool) {
	v, ok := p.src.At(i).(float32)
	if !ok {
		return 0, false
	}
	return fixed.I(dpi.Px(unit.Pt(v))), true
}

func alignAt(d doc.Document, i int) Alignment {
	return ParseAlignment(d.StyleRuns(doc.Align).At(i))
}

func boolStyle(d doc.Document, name string, def bool) runlist.Ranger[any] {
	return runlist.FilteredRunIterator[any](d.StyleRuns(name), any(def), func(v any) bool {
		_, ok := v.(bool)
		return ok
	})
}

func tabStopsAt(d doc.Document, i int) []float32 {
	v, _ := d.StyleRuns(doc.TabStops).At(i).([]float32)
	return v
}
