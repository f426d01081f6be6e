// SPDX-License-Identifier: Unlicense OR MIT

package runlist_test

import (
	"testing"

	"richtext.dev/layout/runlist"
)

func collect[T any](r runlist.Ranger[T], start, end int) []struct {
	S, E int
	V    T
} {
	var out []struct {
		S, E int
		V    T
	}
	c := r.Ranges(start, end)
	for c.Next() {
		s, e, v := c.Range()
		out = append(out, struct {
			S, E int
			V    T
		}{s, e, v})
	}
	return out
}

func totalLen[T any](r runlist.Ranger[T], n int) int {
	total := 0
	for _, run := range collect(r, 0, n) {
		total += run.E - run.S
	}
	return total
}

func TestTotality(t *testing.T) {
	r := runlist.New(10, "a")
	r.Insert(3, 4)
	r.SetRun(2, 9, "b")
	r.Delete(0, 2)
	if got, want := r.Len(), 12; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got := totalLen[string](r, r.Len()); got != r.Len() {
		t.Fatalf("sum of ranges = %d, want %d", got, r.Len())
	}
}

func TestIdempotentSetRun(t *testing.T) {
	r := runlist.New(10, "x")
	r.SetRun(2, 6, "y")
	before := collect[string](r, 0, 10)
	r.SetRun(2, 6, "y")
	after := collect[string](r, 0, 10)
	if len(before) != len(after) {
		t.Fatalf("SetRun not idempotent: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("SetRun not idempotent at %d: %v vs %v", i, before[i], after[i])
		}
	}
}

func TestRangesClipToRequestedWindow(t *testing.T) {
	r := runlist.New(10, 0)
	r.SetRun(3, 7, 1)
	runs := collect[int](r, 2, 8)
	if len(runs) == 0 {
		t.Fatal("no runs returned")
	}
	if runs[0].S != 2 {
		t.Errorf("first run starts at %d, want 2", runs[0].S)
	}
	if runs[len(runs)-1].E != 8 {
		t.Errorf("last run ends at %d, want 8", runs[len(runs)-1].E)
	}
}

func TestInsertShiftsLaterRuns(t *testing.T) {
	r := runlist.New(5, 0)
	r.SetRun(3, 5, 1)
	r.Insert(1, 2)
	if r.At(0) != 0 || r.At(1) != 0 || r.At(2) != 0 {
		t.Errorf("inserted span should carry the containing run's value")
	}
	if r.At(5) != 1 || r.At(6) != 1 {
		t.Errorf("run after insertion point should shift, got At(5)=%v At(6)=%v", r.At(5), r.At(6))
	}
}

func TestDeleteMergesAcrossGap(t *testing.T) {
	r := runlist.New(10, "a")
	r.SetRun(4, 6, "b")
	r.Delete(4, 6)
	for i := 0; i < r.Len(); i++ {
		if r.At(i) != "a" {
			t.Fatalf("At(%d) = %q, want %q after deleting the only b-run", i, r.At(i), "a")
		}
	}
}

func TestFilteredRunIterator(t *testing.T) {
	r := runlist.New[any](5, nil)
	r.SetRun(1, 3, 42)
	f := runlist.FilteredRunIterator[any](r, 0, func(v any) bool { return v != nil })
	if f.At(0) != 0 {
		t.Errorf("At(0) = %v, want default 0", f.At(0))
	}
	if f.At(1) != 42 {
		t.Errorf("At(1) = %v, want 42", f.At(1))
	}
}

func TestOverriddenRunIterator(t *testing.T) {
	r := runlist.New(10, "base")
	o := runlist.OverriddenRunIterator[string](r, 3, 6, "sel")
	want := []string{"base", "base", "base", "sel", "sel", "sel", "base", "base", "base", "base"}
	for i, w := range want {
		if got := o.At(i); got != w {
			t.Errorf("At(%d) = %q, want %q", i, got, w)
		}
	}
	runs := collect[string](o, 0, 10)
	total := 0
	for _, run := range runs {
		total += run.E - run.S
	}
	if total != 10 {
		t.Errorf("zip/override ranges do not cover [0,10): total=%d", total)
	}
}

func TestZip2Boundaries(t *testing.T) {
	a := runlist.New(10, "x")
	a.SetRun(2, 5, "y")
	b := runlist.New(10, 1)
	b.SetRun(4, 8, 2)
	z := runlist.Zip2[string, int](a, b)
	runs := collect[runlist.Pair[string, int]](z, 0, 10)
	// boundaries from a: 0,2,5,10; from b: 0,4,8,10 -> union 0,2,4,5,8,10
	wantBounds := []int{0, 2, 4, 5, 8, 10}
	if len(runs) != len(wantBounds)-1 {
		t.Fatalf("got %d runs, want %d: %+v", len(runs), len(wantBounds)-1, runs)
	}
	for i, run := range runs {
		if run.S != wantBounds[i] || run.E != wantBounds[i+1] {
			t.Errorf("run %d = [%d,%d), want [%d,%d)", i, run.S, run.E, wantBounds[i], wantBounds[i+1])
		}
	}
}

func TestConstRunIterator(t *testing.T) {
	c := runlist.NewConst(5, true)
	runs := collect[bool](c, 0, 5)
	if len(runs) != 1 || runs[0].S != 0 || runs[0].E != 5 || !runs[0].V {
		t.Fatalf("unexpected const runs: %+v", runs)
	}
}
