// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/doc"
	"richtext.dev/layout/font"
	"richtext.dev/layout/unit"
	"richtext.dev/layout/vbuild"
)

// Scrollable adds viewport clipping and scroll translation on top of
// Static's one-shot relayout (spec.md §6). Its vertex geometry is
// identical to Static's; the viewport is reported for the caller to
// apply as a scissor region, and query coordinates are translated by
// the current scroll offset.
type Scrollable struct {
	*Static
	viewX, viewY fixed.Int26_6
}

// NewScrollable constructs a Scrollable layout. Parameters match
// NewStatic.
func NewScrollable(document doc.Document, provider font.Provider, dpi unit.DPI, batch *vbuild.Batch, parent *vbuild.Group, width, height fixed.Int26_6, widthSet, multiline bool) (*Scrollable, error) {
	st, err := NewStatic(document, provider, dpi, batch, parent, width, height, widthSet, multiline)
	if err != nil {
		return nil, err
	}
	sc := &Scrollable{Static: st}
	sc.clampView()
	return sc, nil
}

func (sc *Scrollable) clampView() {
	maxViewX := sc.contentWidth - sc.width
	if maxViewX < 0 {
		maxViewX = 0
	}
	sc.viewX = clampFixed(sc.viewX, 0, maxViewX)

	minViewY := sc.height - sc.contentHeight
	if minViewY > 0 {
		minViewY = 0
	}
	sc.viewY = clampFixed(sc.viewY, minViewY, 0)
}

func clampFixed(v, lo, hi fixed.Int26_6) fixed.Int26_6 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ViewX, ViewY report the current scroll offset.
func (sc *Scrollable) ViewX() fixed.Int26_6 { return sc.viewX }
func (sc *Scrollable) ViewY() fixed.Int26_6 { return sc.viewY }

// SetViewX, SetViewY scroll the viewport, clamping into
// [0, max(0, content_width-width)] and
// [min(0, height-content_height), 0] respectively (spec.md §4.7).
func (sc *Scrollable) SetViewX(x fixed.Int26_6) {
	sc.viewX = x
	sc.clampView()
}

func (sc *Scrollable) SetViewY(y fixed.Int26_6) {
	sc.viewY = y
	sc.clampView()
}

// Viewport reports the clip rectangle a renderer should scissor
// against: origin in host space plus the configured width/height.
func (sc *Scrollable) Viewport() (x, y, width, height fixed.Int26_6) {
	return sc.X(), sc.Y(), sc.width, sc.height
}

// PositionAtPoint overrides Static's to translate by the scroll
// offset before hit-testing.
func (sc *Scrollable) PositionAtPoint(x, y fixed.Int26_6) int {
	return sc.Static.PositionAtPoint(x-sc.viewX, y-sc.viewY)
}

// PointAtPosition overrides Static's to translate the result by the
// scroll offset.
func (sc *Scrollable) PointAtPosition(pos, line int) (fixed.Int26_6, fixed.Int26_6) {
	x, y := sc.Static.PointAtPosition(pos, line)
	return x + sc.viewX, y + sc.viewY
}

// EnsureLineVisible adjusts ViewY so line i's ascent and descent both
// fit inside the viewport (spec.md §4.7).
func (sc *Scrollable) EnsureLineVisible(i int) {
	if i < 0 || i >= len(sc.lines) {
		return
	}
	line := sc.lines[i]
	top := -line.Y - line.Ascent
	bottom := -line.Y - line.Descent
	if top < -sc.viewY {
		sc.SetViewY(-top)
	} else if bottom > -sc.viewY+sc.height {
		sc.SetViewY(sc.height - bottom)
	}
}

// EnsureXVisible adjusts ViewX so local x is visible, biased ten
// pixels inside either edge (spec.md §4.7).
func (sc *Scrollable) EnsureXVisible(x fixed.Int26_6) {
	bias := fixed.I(10)
	if x < sc.viewX {
		sc.SetViewX(x - bias)
	} else if x > sc.viewX+sc.width {
		sc.SetViewX(x - sc.width + bias)
	}
}
