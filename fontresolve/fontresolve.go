// SPDX-License-Identifier: Unlicense OR MIT

// Package fontresolve provides a font.Resolver over a small in-memory
// family table, matching font_name case-insensitively the way CSS
// font-family and pyglet's font.load both do, and falling back to a
// configured default family when no requested name matches.
package fontresolve

import (
	"fmt"

	"golang.org/x/text/cases"

	"richtext.dev/layout/font"
)

// Family groups the Handles a typeface provides for each
// weight/style combination it supports.
type Family struct {
	byFace map[font.Weight]map[font.Style]font.Handle
}

// NewFamily returns an empty Family.
func NewFamily() *Family {
	return &Family{byFace: make(map[font.Weight]map[font.Style]font.Handle)}
}

// Add registers h for the given weight and style.
func (f *Family) Add(weight font.Weight, style font.Style, h font.Handle) *Family {
	byStyle, ok := f.byFace[weight]
	if !ok {
		byStyle = make(map[font.Style]font.Handle)
		f.byFace[weight] = byStyle
	}
	byStyle[style] = h
	return f
}

// closest returns the Handle registered for weight/style. When that
// face is missing it tries Regular style at the same weight, then the
// requested style and then Regular at Normal weight, and finally any
// registered face (which one, when several exist, is not defined).
// It does not search for the numerically nearest weight.
func (f *Family) closest(weight font.Weight, style font.Style) (font.Handle, bool) {
	if byStyle, ok := f.byFace[weight]; ok {
		if h, ok := byStyle[style]; ok {
			return h, true
		}
		if h, ok := byStyle[font.Regular]; ok {
			return h, true
		}
	}
	if byStyle, ok := f.byFace[font.Normal]; ok {
		if h, ok := byStyle[style]; ok {
			return h, true
		}
		if h, ok := byStyle[font.Regular]; ok {
			return h, true
		}
	}
	for _, byStyle := range f.byFace {
		for _, h := range byStyle {
			return h, true
		}
	}
	return nil, false
}

// Resolver maps font.Description to font.Handle by case-folded
// typeface name, using a fixed fallback family when font_name is
// empty, unset, or unregistered (spec.md §6 leaves the fallback
// policy to the implementation).
type Resolver struct {
	fold     cases.Caser
	families map[string]*Family
	fallback font.Typeface
}

// NewResolver returns a Resolver with no registered families. Use
// Register to add typefaces and SetFallback to name the family used
// when a request doesn't match any registered name.
func NewResolver() *Resolver {
	return &Resolver{
		fold:     cases.Fold(),
		families: make(map[string]*Family),
	}
}

// Register associates name with family, case-insensitively.
func (r *Resolver) Register(name font.Typeface, family *Family) {
	r.families[r.key(name)] = family
}

// SetFallback names the family used when a request names no
// registered typeface.
func (r *Resolver) SetFallback(name font.Typeface) {
	r.fallback = name
}

func (r *Resolver) key(name font.Typeface) string {
	return r.fold.String(string(name))
}

// Resolve implements font.Resolver.
func (r *Resolver) Resolve(desc font.Description) (font.Handle, error) {
	family, ok := r.families[r.key(desc.Typeface)]
	if !ok {
		family, ok = r.families[r.key(r.fallback)]
	}
	if !ok {
		return nil, fmt.Errorf("fontresolve: no family registered for %q and no fallback set", desc.Typeface)
	}
	h, ok := family.closest(desc.Weight, desc.Style)
	if !ok {
		return nil, fmt.Errorf("fontresolve: family %q has no registered faces", desc.Typeface)
	}
	return h, nil
}
