// SPDX-License-Identifier: Unlicense OR MIT

package flow_test

import (
	"testing"

	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/box"
	"richtext.dev/layout/doc"
	"richtext.dev/layout/flow"
	"richtext.dev/layout/font"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
)

type stubHandle struct{ name string }

func (h stubHandle) Ascent() fixed.Int26_6  { return fixed.I(10) }
func (h stubHandle) Descent() fixed.Int26_6 { return fixed.I(-3) }

type fixedWidthProvider struct{ advance fixed.Int26_6 }

func (p fixedWidthProvider) Shape(text string, h font.Handle) ([]font.Glyph, error) {
	runes := []rune(text)
	out := make([]font.Glyph, len(runes))
	for i := range out {
		out[i] = font.Glyph{Owner: "atlas0", Advance: p.advance, Ascent: fixed.I(10), Descent: fixed.I(-3)}
	}
	return out, nil
}

type stubDoc struct {
	text    string
	styles  map[string]runlist.Ranger[any]
	fontRun runlist.Ranger[font.Handle]
	elemRun runlist.Ranger[box.Element]
}

func newStubDoc(text string) *stubDoc {
	n := len([]rune(text))
	return &stubDoc{
		text:    text,
		styles:  map[string]runlist.Ranger[any]{},
		fontRun: runlist.NewConst[font.Handle](n, stubHandle{"default"}),
		elemRun: runlist.NewConst[box.Element](n, nil),
	}
}

func (d *stubDoc) Text() string                                { return d.text }
func (d *stubDoc) Len() int                                    { return len([]rune(d.text)) }
func (d *stubDoc) FontRuns(unit.DPI) runlist.Ranger[font.Handle] { return d.fontRun }
func (d *stubDoc) ElementRuns() runlist.Ranger[box.Element]     { return d.elemRun }
func (d *stubDoc) StyleRuns(name string) runlist.Ranger[any] {
	if r, ok := d.styles[name]; ok {
		return r
	}
	return runlist.NewConst[any](d.Len(), nil)
}

func shapeAll(t *testing.T, d *stubDoc) *flow.GlyphCache {
	t.Helper()
	cache := flow.NewGlyphCache()
	cache.Insert(0, d.Len())
	s := &flow.Shaper{Provider: fixedWidthProvider{advance: fixed.I(10)}}
	if err := s.Reshape(d, unit.DefaultDPI, cache, 0, d.Len()); err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	return cache
}

func TestFlowSingleLineMergesOneOwner(t *testing.T) {
	d := newStubDoc("hello world")
	cache := shapeAll(t, d)
	line := flow.FlowSingleLine(d, unit.DefaultDPI, cache, 0, d.Len())
	if len(line.Boxes) != 1 {
		t.Fatalf("expected one merged GlyphBox, got %d boxes", len(line.Boxes))
	}
	if !line.ParagraphBegin || !line.ParagraphEnd {
		t.Error("single line must be both paragraph begin and end")
	}
	if got, want := line.Length, d.Len(); got != want {
		t.Errorf("Length = %d, want %d", got, want)
	}
}

func TestFlowWrappedBreaksOnWhitespace(t *testing.T) {
	d := newStubDoc("aaa bbb ccc")
	cache := shapeAll(t, d)
	var lines []*flow.Line
	flow.FlowWrapped(d, unit.DefaultDPI, cache, fixed.I(35), true, 0, d.Len(), func(l *flow.Line) bool {
		lines = append(lines, l)
		return true
	})
	if len(lines) < 2 {
		t.Fatalf("expected wrapping to produce multiple lines, got %d", len(lines))
	}
	total := 0
	for _, l := range lines {
		total += l.Length
	}
	if total != d.Len() {
		t.Errorf("sum of line lengths = %d, want %d (every character must be covered exactly once)", total, d.Len())
	}
}

func TestFlowWrappedSingleLineWhenNoWidth(t *testing.T) {
	d := newStubDoc("aaa bbb ccc")
	cache := shapeAll(t, d)
	var lines []*flow.Line
	flow.FlowWrapped(d, unit.DefaultDPI, cache, 0, false, 0, d.Len(), func(l *flow.Line) bool {
		lines = append(lines, l)
		return true
	})
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line with wrapping disabled, got %d", len(lines))
	}
}

func TestVerticalPlacerMonotonicallyIncreasesDepth(t *testing.T) {
	d := newStubDoc("aaa bbb ccc")
	cache := shapeAll(t, d)
	var lines []*flow.Line
	flow.FlowWrapped(d, unit.DefaultDPI, cache, fixed.I(35), true, 0, d.Len(), func(l *flow.Line) bool {
		lines = append(lines, l)
		return true
	})
	vp := flow.NewVerticalPlacer(d)
	_, _, height := vp.Place(lines, 0, len(lines), unit.DefaultDPI, fixed.I(35), true)
	if height <= 0 {
		t.Fatalf("content height = %v, want > 0", height)
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].Y >= lines[i-1].Y {
			t.Errorf("line %d.Y = %v should be below line %d.Y = %v", i, lines[i].Y, i-1, lines[i-1].Y)
		}
	}
}
