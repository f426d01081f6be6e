// SPDX-License-Identifier: Unlicense OR MIT

package invalid_test

import (
	"testing"

	"richtext.dev/layout/invalid"
)

func TestEmptyIsNotInvalid(t *testing.T) {
	r := invalid.New()
	if r.IsInvalid() {
		t.Fatal("fresh Range reports invalid")
	}
}

func TestInvalidateGrowsBounds(t *testing.T) {
	r := invalid.New()
	r.Invalidate(5, 10)
	r.Invalidate(2, 7)
	if !r.IsInvalid() {
		t.Fatal("expected invalid after Invalidate")
	}
	s, e := r.Validate()
	if s != 2 || e != 10 {
		t.Fatalf("Validate() = (%d,%d), want (2,10)", s, e)
	}
	if r.IsInvalid() {
		t.Fatal("Validate did not clear the range")
	}
}

func TestInvalidateEmptyRangeIsNoop(t *testing.T) {
	r := invalid.New()
	r.Invalidate(5, 5)
	if r.IsInvalid() {
		t.Fatal("degenerate Invalidate(5,5) should not mark invalid")
	}
}

func TestInsertShiftsAndInvalidatesNewSpan(t *testing.T) {
	r := invalid.New()
	r.Invalidate(10, 20)
	r.Insert(5, 3)
	s, e := r.Validate()
	if s != 5 || e != 23 {
		t.Fatalf("after insert before range, got (%d,%d), want (5,23)", s, e)
	}
}

func TestInsertInsideValidRegion(t *testing.T) {
	r := invalid.New()
	r.Insert(4, 2)
	s, e := r.Validate()
	if s != 4 || e != 6 {
		t.Fatalf("insert into empty range: got (%d,%d), want (4,6)", s, e)
	}
}

func TestDeleteCollapsesOverlap(t *testing.T) {
	r := invalid.New()
	r.Invalidate(10, 20)
	r.Delete(12, 18)
	s, e := r.Validate()
	if s != 10 || e != 14 {
		t.Fatalf("after delete inside range, got (%d,%d), want (10,14)", s, e)
	}
}

func TestDeleteBeforeRangeShiftsDown(t *testing.T) {
	r := invalid.New()
	r.Invalidate(10, 20)
	r.Delete(0, 5)
	s, e := r.Validate()
	if s != 5 || e != 15 {
		t.Fatalf("after delete before range, got (%d,%d), want (5,15)", s, e)
	}
}
