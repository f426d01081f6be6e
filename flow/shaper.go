// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/box"
	"richtext.dev/layout/doc"
	"richtext.dev/layout/font"
	"richtext.dev/layout/lerr"
	"richtext.dev/layout/runlist"
	"richtext.dev/layout/unit"
)

// slot is one shaped character position: either a plain glyph or an
// inline element box, never both (spec.md §4.2).
type slot struct {
	glyph   font.Glyph
	element *box.InlineElementBox
}

func (s slot) owner() font.TextureID {
	if s.element != nil {
		return nil
	}
	return s.glyph.Owner
}

func (s slot) advance() fixed.Int26_6 {
	if s.element != nil {
		return s.element.Advance()
	}
	return s.glyph.Advance
}

// GlyphCache holds the shaped state the Shaper incrementally
// maintains across the whole document: one slot per character
// position, and the owner-run partition derived from it.
type GlyphCache struct {
	Slots  []slot
	Owners *runlist.RunList[font.TextureID]
}

// NewGlyphCache returns an empty cache sized for an empty document.
func NewGlyphCache() *GlyphCache {
	return &GlyphCache{Owners: runlist.New[font.TextureID](0, nil)}
}

// Insert grows the cache by count empty slots at pos, mirroring a
// document text insertion; the caller must Reshape the new span
// before relying on it.
func (c *GlyphCache) Insert(pos, count int) {
	grown := make([]slot, len(c.Slots)+count)
	copy(grown, c.Slots[:pos])
	copy(grown[pos+count:], c.Slots[pos:])
	c.Slots = grown
	c.Owners.Insert(pos, count)
}

// Delete removes [start,end) from the cache.
func (c *GlyphCache) Delete(start, end int) {
	c.Slots = append(c.Slots[:start], c.Slots[end:]...)
	c.Owners.Delete(start, end)
}

// Shaper re-shapes character ranges into the glyph cache.
type Shaper struct {
	Provider font.Provider
}

// Reshape re-shapes [start,end) and rewrites the owner-run segment
// covering it, without touching adjacent slots (spec.md §4.2's
// contract), grounded on _get_glyphs/_get_owner_runs
// (layout.py:920-942).
func (s *Shaper) Reshape(d doc.Document, dpi unit.DPI, cache *GlyphCache, start, end int) error {
	if start >= end {
		return nil
	}
	text := []rune(d.Text())
	pairs := runlist.Zip2[font.Handle, box.Element](d.FontRuns(dpi), d.ElementRuns())
	for c := pairs.Ranges(start, end); c.Next(); {
		s0, e0, pair := c.Range()
		if pair.B != nil {
			for i := s0; i < e0; i++ {
				cache.Slots[i] = slot{element: box.NewInlineElementBox(pair.B)}
			}
			continue
		}
		if pair.A == nil {
			return lerr.Invalid("shaper: no font resolved for [%d,%d)", s0, e0)
		}
		glyphs, err := s.Provider.Shape(string(text[s0:e0]), pair.A)
		if err != nil {
			return lerr.Shaping(s0, e0, err)
		}
		if len(glyphs) != e0-s0 {
			return lerr.Invalid("shaper: provider returned %d glyphs for %d characters", len(glyphs), e0-s0)
		}
		for i, g := range glyphs {
			cache.Slots[s0+i] = slot{glyph: g}
		}
	}
	s.rebuildOwnerRuns(cache, start, end)
	return nil
}

func (s *Shaper) rebuildOwnerRuns(cache *GlyphCache, start, end int) {
	owner := cache.Slots[start].owner()
	runStart := start
	for i := start + 1; i < end; i++ {
		o := cache.Slots[i].owner()
		if o != owner {
			cache.Owners.SetRun(runStart, i, owner)
			owner = o
			runStart = i
		}
	}
	cache.Owners.SetRun(runStart, end, owner)
}
