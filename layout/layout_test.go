// SPDX-License-Identifier: Unlicense OR MIT

package layout_test

import (
	"image/color"
	"testing"

	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/font"
	"richtext.dev/layout/layout"
	"richtext.dev/layout/rundoc"
	"richtext.dev/layout/unit"
	"richtext.dev/layout/vbuild"
)

type stubHandle struct{}

func (stubHandle) Ascent() fixed.Int26_6  { return fixed.I(10) }
func (stubHandle) Descent() fixed.Int26_6 { return fixed.I(-3) }

type constResolver struct{}

func (constResolver) Resolve(font.Description) (font.Handle, error) { return stubHandle{}, nil }

// fixedWidthProvider shapes every rune to the same advance, so wrap
// points land at predictable pixel offsets in tests.
type fixedWidthProvider struct{ advance fixed.Int26_6 }

func (p fixedWidthProvider) Shape(text string, h font.Handle) ([]font.Glyph, error) {
	runes := []rune(text)
	glyphs := make([]font.Glyph, len(runes))
	for i := range glyphs {
		glyphs[i] = font.Glyph{Owner: "tex", Advance: p.advance, Ascent: h.Ascent(), Descent: h.Descent()}
	}
	return glyphs, nil
}

func newTestDoc() *rundoc.Document { return rundoc.NewDocument(constResolver{}) }

func TestStaticLayoutSingleLine(t *testing.T) {
	d := newTestDoc()
	d.InsertText(0, "hello")
	provider := fixedWidthProvider{advance: fixed.I(10)}
	batch := vbuild.NewBatch()

	st, err := layout.NewStatic(d, provider, unit.DefaultDPI, batch, nil, 0, 0, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if st.LineCount() != 1 {
		t.Fatalf("expected 1 line in single-line mode, got %d", st.LineCount())
	}
	if st.ContentWidth() != fixed.I(50) {
		t.Fatalf("expected content width 50px, got %v", st.ContentWidth())
	}
}

func TestIncrementalInsertTriggersRelayout(t *testing.T) {
	d := newTestDoc()
	provider := fixedWidthProvider{advance: fixed.I(10)}
	batch := vbuild.NewBatch()

	inc, err := layout.NewIncremental(d, provider, unit.DefaultDPI, batch, nil, fixed.I(35), 0, true, true)
	if err != nil {
		t.Fatal(err)
	}
	updates := 0
	inc.SetOnLayoutUpdate(func() { updates++ })

	d.InsertText(0, "aaa bbb ccc")
	if inc.LineCount() <= 1 {
		t.Fatalf("expected wrapping to produce multiple lines, got %d", inc.LineCount())
	}
	if updates == 0 {
		t.Fatal("expected OnLayoutUpdate to fire after insert")
	}
}

func TestIncrementalDeleteReflows(t *testing.T) {
	d := newTestDoc()
	provider := fixedWidthProvider{advance: fixed.I(10)}
	batch := vbuild.NewBatch()

	inc, err := layout.NewIncremental(d, provider, unit.DefaultDPI, batch, nil, fixed.I(35), 0, true, true)
	if err != nil {
		t.Fatal(err)
	}
	d.InsertText(0, "aaa bbb ccc")
	before := inc.LineCount()
	d.DeleteText(4, 11)
	if inc.LineCount() >= before {
		t.Fatalf("expected fewer lines after deleting text, got %d (was %d)", inc.LineCount(), before)
	}
}

func TestScrollableClampsView(t *testing.T) {
	d := newTestDoc()
	d.InsertText(0, "aaa\nbbb\nccc\nddd")
	provider := fixedWidthProvider{advance: fixed.I(10)}
	batch := vbuild.NewBatch()

	sc, err := layout.NewScrollable(d, provider, unit.DefaultDPI, batch, nil, fixed.I(100), fixed.I(10), true, true)
	if err != nil {
		t.Fatal(err)
	}
	sc.SetViewY(fixed.I(-1000))
	if sc.ViewY() < sc.Height()-sc.ContentHeight() {
		t.Fatalf("expected ViewY clamped, got %v", sc.ViewY())
	}
	sc.SetViewX(fixed.I(1000))
	maxX := sc.ContentWidth() - sc.Width()
	if maxX < 0 {
		maxX = 0
	}
	if sc.ViewX() != maxX {
		t.Fatalf("expected ViewX clamped to %v, got %v", maxX, sc.ViewX())
	}
}

func TestPositionAtPointRoundTrip(t *testing.T) {
	d := newTestDoc()
	d.InsertText(0, "hello")
	provider := fixedWidthProvider{advance: fixed.I(10)}
	batch := vbuild.NewBatch()

	st, err := layout.NewStatic(d, provider, unit.DefaultDPI, batch, nil, 0, 0, false, false)
	if err != nil {
		t.Fatal(err)
	}
	x, y := st.PointAtPosition(3, -1)
	got := st.PositionAtPoint(x, y)
	if got < 2 || got > 4 {
		t.Fatalf("round-tripped position %d too far from 3", got)
	}
}

func TestIncrementalSelectionDoesNotPanic(t *testing.T) {
	d := newTestDoc()
	d.InsertText(0, "selection test text")
	provider := fixedWidthProvider{advance: fixed.I(10)}
	batch := vbuild.NewBatch()

	inc, err := layout.NewIncremental(d, provider, unit.DefaultDPI, batch, nil, fixed.I(200), fixed.I(200), true, true)
	if err != nil {
		t.Fatal(err)
	}
	red := color.NRGBA{R: 255, A: 255}
	inc.SetSelectionColor(&red)
	if err := inc.SetSelection(2, 6); err != nil {
		t.Fatal(err)
	}
	if batch.Len() == 0 {
		t.Fatal("expected vertex lists to exist after selection update")
	}
}
