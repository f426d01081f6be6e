// SPDX-License-Identifier: Unlicense OR MIT

package vbuild_test

import (
	"image/color"
	"testing"

	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/box"
	"richtext.dev/layout/doc"
	"richtext.dev/layout/flow"
	"richtext.dev/layout/font"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
	"richtext.dev/layout/vbuild"
)

type stubHandle struct{}

func (stubHandle) Ascent() fixed.Int26_6  { return fixed.I(10) }
func (stubHandle) Descent() fixed.Int26_6 { return fixed.I(-3) }

type stubDoc struct {
	n      int
	styles map[string]runlist.Ranger[any]
}

func (d *stubDoc) Text() string { return "" }
func (d *stubDoc) Len() int     { return d.n }
func (d *stubDoc) FontRuns(unit.DPI) runlist.Ranger[font.Handle] {
	return runlist.NewConst[font.Handle](d.n, stubHandle{})
}
func (d *stubDoc) ElementRuns() runlist.Ranger[box.Element] {
	return runlist.NewConst[box.Element](d.n, nil)
}
func (d *stubDoc) StyleRuns(name string) runlist.Ranger[any] {
	if r, ok := d.styles[name]; ok {
		return r
	}
	return runlist.NewConst[any](d.n, nil)
}

func TestBuildLineEmitsForegroundQuads(t *testing.T) {
	n := 3
	d := &stubDoc{n: n, styles: map[string]runlist.Ranger[any]{}}
	d.styles[doc.Color] = runlist.NewConst[any](n, any(color.NRGBA{R: 255, A: 255}))

	glyphs := make([]box.KernGlyph, n)
	for i := range glyphs {
		glyphs[i] = box.KernGlyph{Glyph: font.Glyph{Owner: "tex0", Advance: fixed.I(10)}}
	}
	gb := box.NewGlyphBox("tex0", stubHandle{}, glyphs, fixed.I(30))
	line := flow.NewLine(0)
	line.AddBox(gb)
	line.X, line.Y = 0, fixed.I(-10)

	batch := vbuild.NewBatch()
	vbuild.BuildLine(batch, nil, d, unit.DefaultDPI, line, nil)

	if batch.Len() == 0 {
		t.Fatal("expected at least one vertex list to be emitted")
	}
}

func TestBuildLineSkipsEmptyLine(t *testing.T) {
	d := &stubDoc{n: 0, styles: map[string]runlist.Ranger[any]{}}
	line := flow.NewLine(0)
	batch := vbuild.NewBatch()
	vbuild.BuildLine(batch, nil, d, unit.DefaultDPI, line, nil)
	if batch.Len() != 0 {
		t.Fatalf("expected no vertex lists for an empty line, got %d", batch.Len())
	}
}
