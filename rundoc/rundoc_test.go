// SPDX-License-Identifier: Unlicense OR MIT

package rundoc

import (
	"errors"
	"testing"

	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/doc"
	"richtext.dev/layout/font"
	"richtext.dev/layout/unit"
)

type stubHandle struct{ name string }

func (stubHandle) Ascent() fixed.Int26_6  { return fixed.I(10) }
func (stubHandle) Descent() fixed.Int26_6 { return fixed.I(-2) }

type stubResolver struct{ fail bool }

func (r stubResolver) Resolve(desc font.Description) (font.Handle, error) {
	if r.fail {
		return nil, errors.New("no font")
	}
	return stubHandle{name: string(desc.Typeface)}, nil
}

type recordingListener struct {
	inserts []string
	deletes int
	styles  int
}

func (l *recordingListener) OnInsertText(pos int, text string) { l.inserts = append(l.inserts, text) }
func (l *recordingListener) OnDeleteText(start, end int)       { l.deletes++ }
func (l *recordingListener) OnStyleText(start, end int, attributes []string) { l.styles++ }

func TestInsertAndDeleteText(t *testing.T) {
	d := NewDocument(stubResolver{})
	d.InsertText(0, "hello")
	if d.Text() != "hello" || d.Len() != 5 {
		t.Fatalf("got %q len %d", d.Text(), d.Len())
	}
	d.InsertText(5, " world")
	if d.Text() != "hello world" {
		t.Fatalf("got %q", d.Text())
	}
	d.DeleteText(5, 11)
	if d.Text() != "hello" {
		t.Fatalf("got %q", d.Text())
	}
}

func TestSetStyleRecomputesFonts(t *testing.T) {
	d := NewDocument(stubResolver{})
	d.InsertText(0, "abc")
	d.SetStyle(0, 3, doc.FontName, "Go")
	runs := d.FontRuns(unit.DPI(96))
	h, ok := runs.At(0).(stubHandle)
	if !ok || h.name != "Go" {
		t.Fatalf("got %#v", runs.At(0))
	}
}

func TestFontResolutionFailureCachesNilHandle(t *testing.T) {
	d := NewDocument(stubResolver{fail: true})
	d.InsertText(0, "a")
	if d.FontRuns(unit.DPI(96)).At(0) != nil {
		t.Fatalf("expected nil handle on resolution failure")
	}
}

func TestStyleRunsFallsBackToConstForUnknownAttribute(t *testing.T) {
	d := NewDocument(stubResolver{})
	d.InsertText(0, "abc")
	if v := d.StyleRuns("unknown-attribute").At(1); v != nil {
		t.Fatalf("expected nil default, got %#v", v)
	}
}

func TestListenersNotifiedOnMutation(t *testing.T) {
	d := NewDocument(stubResolver{})
	l := &recordingListener{}
	d.AddListener(l)
	d.InsertText(0, "hi")
	d.SetStyle(0, 1, doc.Bold, true)
	d.DeleteText(0, 1)
	if len(l.inserts) != 1 || l.inserts[0] != "hi" {
		t.Fatalf("got %#v", l.inserts)
	}
	if l.styles != 1 || l.deletes != 1 {
		t.Fatalf("styles=%d deletes=%d", l.styles, l.deletes)
	}
}
