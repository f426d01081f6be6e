// SPDX-License-Identifier: Unlicense OR MIT

package unit_test

import (
	"testing"

	"richtext.dev/layout/unit"
)

func TestDPIPointsToPixels(t *testing.T) {
	cases := []struct {
		dpi    unit.DPI
		points float32
		want   int
	}{
		{96, 72, 96},
		{96, 36, 48},
		{96, 0, 0},
		{72, 72, 72},
		{0, 72, 96}, // zero DPI falls back to DefaultDPI
	}
	for _, c := range cases {
		got := c.dpi.Px(unit.Pt(c.points))
		if got != c.want {
			t.Errorf("DPI(%v).Px(Pt(%v)) = %d, want %d", c.dpi, c.points, got, c.want)
		}
	}
}

func TestDPIRounding(t *testing.T) {
	// 96 * 10 / 72 = 13.33..., should round to 13.
	got := unit.DPI(96).Px(unit.Pt(10))
	if got != 13 {
		t.Errorf("got %d, want 13", got)
	}
}

func TestAddMax(t *testing.T) {
	d := unit.DPI(96)
	sum := unit.Add(d, unit.Dp(1), unit.Dp(2), unit.Dp(3))
	if sum.V != 6 {
		t.Errorf("Add = %v, want 6", sum)
	}
	max := unit.Max(d, unit.Dp(1), unit.Dp(5), unit.Dp(3))
	if max.V != 5 {
		t.Errorf("Max = %v, want 5", max)
	}
}
