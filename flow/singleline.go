// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/box"
	"richtext.dev/layout/doc"
	"richtext.dev/layout/unit"
)

// FlowSingleLine produces exactly one Line containing every box in
// [start,end), merging contiguous same-owner glyphs into one GlyphBox
// (spec.md §4.3 "Single-line flow"), grounded on
// _flow_glyphs_single_line (layout.py:1203-1236).
func FlowSingleLine(d doc.Document, dpi unit.DPI, cache *GlyphCache, start, end int) *Line {
	line := NewLine(start)
	kern := points(d, doc.Kerning, 0)
	fonts := d.FontRuns(dpi)

	if end > start {
		for c := cache.Owners.Ranges(start, end); c.Next(); {
			s0, e0, owner := c.Range()
			if owner == nil {
				for i := s0; i < e0; i++ {
					line.AddBox(cache.Slots[i].element)
				}
				continue
			}
			f := fonts.At(s0)
			var width fixed.Int26_6
			glyphs := make([]box.KernGlyph, 0, e0-s0)
			for i := s0; i < e0; i++ {
				k := kern.At(i, dpi)
				g := cache.Slots[i].glyph
				width += g.Advance + k
				glyphs = append(glyphs, box.KernGlyph{Kern: k, Glyph: g})
			}
			line.AddBox(box.NewGlyphBox(owner, f, glyphs, width))
		}
	}

	if len(line.Boxes) == 0 {
		if d.Len() > 0 {
			f := fonts.At(0)
			line.Ascent, line.Descent = f.Ascent(), f.Descent()
		}
	}
	line.ParagraphBegin, line.ParagraphEnd = true, true
	return line
}
