// SPDX-License-Identifier: Unlicense OR MIT

package fontresolve_test

import (
	"testing"

	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/font"
	"richtext.dev/layout/fontresolve"
)

type stubHandle struct{ name string }

func (stubHandle) Ascent() fixed.Int26_6  { return fixed.I(12) }
func (stubHandle) Descent() fixed.Int26_6 { return fixed.I(-3) }

func TestResolveCaseInsensitive(t *testing.T) {
	r := fontresolve.NewResolver()
	regular := stubHandle{name: "arial-regular"}
	r.Register("Arial", fontresolve.NewFamily().Add(font.Normal, font.Regular, regular))

	h, err := r.Resolve(font.Description{Typeface: "aRIAL", SizePt: 12})
	if err != nil {
		t.Fatal(err)
	}
	if h != regular {
		t.Fatalf("got %v, want %v", h, regular)
	}
}

func TestResolveFallsBackToDefaultFamily(t *testing.T) {
	r := fontresolve.NewResolver()
	def := stubHandle{name: "default-regular"}
	r.Register("Sans", fontresolve.NewFamily().Add(font.Normal, font.Regular, def))
	r.SetFallback("Sans")

	h, err := r.Resolve(font.Description{Typeface: "Unregistered", SizePt: 10})
	if err != nil {
		t.Fatal(err)
	}
	if h != def {
		t.Fatalf("got %v, want fallback %v", h, def)
	}
}

func TestResolveClosestWeightFallsBackToNormal(t *testing.T) {
	r := fontresolve.NewResolver()
	regular := stubHandle{name: "sans-regular"}
	r.Register("Sans", fontresolve.NewFamily().Add(font.Normal, font.Regular, regular))

	h, err := r.Resolve(font.Description{Typeface: "Sans", Weight: font.Bold, Style: font.Italic})
	if err != nil {
		t.Fatal(err)
	}
	if h != regular {
		t.Fatalf("got %v, want fallback face %v", h, regular)
	}
}

func TestResolveErrorsWithoutFallback(t *testing.T) {
	r := fontresolve.NewResolver()
	if _, err := r.Resolve(font.Description{Typeface: "Nope"}); err == nil {
		t.Fatal("expected error for unregistered family with no fallback")
	}
}
