// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/box"
	"richtext.dev/layout/doc"
	"richtext.dev/layout/unit"
)

const (
	zwsp          rune = 0x200B
	lineSeparator rune = 0x2028
	paragraphSep  rune = 0x2029
)

func isBreakingWhitespace(r rune) bool {
	return r == ' ' || r == zwsp || r == '\t'
}

func isParagraphSeparator(r rune) bool {
	return r == '\n' || r == paragraphSep
}

func isNewLine(r rune) bool {
	return r == lineSeparator || isParagraphSeparator(r)
}

type wrapLineBuilder struct {
	d              doc.Document
	dpi            unit.DPI
	cache          *GlyphCache
	text           []rune
	layoutWidth    fixed.Int26_6
	layoutWidthSet bool

	kern      pointsIter
	indent    pointsIter
	marginL   pointsIter
	marginR   pointsIter
	wrapStyle func(i int) bool
	tabStops  func(i int) []float32

	yield func(*Line) bool
}

// FlowWrapped word-wraps [start,end) into Lines, calling yield for
// each as it is produced; yield returning false stops the flow early
// (mirroring the laziness of the pyglet generator this is grounded
// on: _flow_glyphs_wrap, layout.py:954-1201).
func FlowWrapped(d doc.Document, dpi unit.DPI, cache *GlyphCache, layoutWidth fixed.Int26_6, layoutWidthSet bool, start, end int, yield func(*Line) bool) {
	if end <= start {
		return
	}
	wb := &wrapLineBuilder{
		d: d, dpi: dpi, cache: cache, text: []rune(d.Text()),
		layoutWidth: layoutWidth, layoutWidthSet: layoutWidthSet,
		kern:    points(d, doc.Kerning, 0),
		indent:  points(d, doc.Indent, 0),
		marginL: points(d, doc.MarginLeft, 0),
		marginR: points(d, doc.MarginRight, 0),
		yield:   yield,
	}
	wrapRuns := boolStyle(d, doc.Wrap, true)
	wb.wrapStyle = func(i int) bool {
		if !layoutWidthSet {
			return false
		}
		return wrapRuns.At(i).(bool)
	}
	wb.tabStops = func(i int) []float32 { return tabStopsAt(d, i) }
	wb.run(start, end)
}

func (wb *wrapLineBuilder) run(start, end int) {
	line := NewLine(start)
	line.Align = alignAt(wb.d, start)
	line.MarginLeft = wb.marginL.At(start, wb.dpi)
	line.MarginRight = wb.marginR.At(start, wb.dpi)
	if start == 0 || isParagraphSeparator(wb.text[start-1]) {
		line.ParagraphBegin = true
		line.MarginLeft += wb.indent.At(start, wb.dpi)
	}
	wrap := wb.wrapStyle(start)
	haveWidth := wb.layoutWidthSet
	layoutW := wb.layoutWidth
	width := layoutW - line.MarginLeft - line.MarginRight

	var x fixed.Int26_6
	var runAccum []box.Box
	var runAccumWidth fixed.Int26_6
	var eolWS fixed.Int26_6
	nextStart := start

	fonts := wb.d.FontRuns(wb.dpi)
	font := fonts.At(start)

	stop := false
	for oc := wb.cache.Owners.Ranges(start, end); !stop && oc.Next(); {
		os, oe, owner := oc.Range()
		font = fonts.At(os)

		var ownerAccum []box.KernGlyph
		var ownerAccumWidth fixed.Int26_6
		var ownerAccumCommit []box.KernGlyph
		var ownerAccumCommitWidth fixed.Int26_6
		nokern := true
		index := os

		flushOwnerGlyphBox := func(glyphs []box.KernGlyph, w fixed.Int26_6) {
			if len(glyphs) > 0 {
				line.AddBox(box.NewGlyphBox(owner, font, glyphs, w))
			}
		}

		for i := os; i < oe && !stop; i++ {
			c := wb.text[i]
			var kern fixed.Int26_6
			if nokern {
				nokern = false
			} else {
				kern = wb.kern.At(index, wb.dpi)
			}
			var g fixed.Int26_6
			if owner != nil {
				g = wb.cache.Slots[i].glyph.Advance
			} else {
				g = wb.cache.Slots[i].element.Advance()
			}

			if isBreakingWhitespace(c) {
				for _, b := range runAccum {
					line.AddBox(b)
				}
				runAccum, runAccumWidth = nil, 0

				if c == '\t' {
					kern = wb.tabKern(wb.tabStops(index), x, line.MarginLeft, g)
				}
				ownerAccum = append(ownerAccum, box.KernGlyph{Kern: kern, Glyph: wb.cache.Slots[i].glyph})
				ownerAccumCommit = append(ownerAccumCommit, ownerAccum...)
				ownerAccumCommitWidth += ownerAccumWidth + g + kern
				eolWS += g + kern
				ownerAccum, ownerAccumWidth = nil, 0

				x += g + kern
				index++
				nextStart = index
				continue
			}

			newParagraph := isParagraphSeparator(c)
			newLine := isNewLine(c)
			overflow := wrap && haveWidth && x+kern+g >= width

			if overflow || newLine {
				if newLine {
					for _, b := range runAccum {
						line.AddBox(b)
					}
					runAccum, runAccumWidth = nil, 0
					ownerAccumCommit = append(ownerAccumCommit, ownerAccum...)
					ownerAccumCommitWidth += ownerAccumWidth
					ownerAccum, ownerAccumWidth = nil, 0
					line.Length++
					nextStart = index + 1
				}

				flushOwnerGlyphBox(ownerAccumCommit, ownerAccumCommitWidth)
				ownerAccumCommit, ownerAccumCommitWidth = nil, 0

				if newLine && len(line.Boxes) == 0 {
					line.Ascent, line.Descent = font.Ascent(), font.Descent()
				}

				if len(line.Boxes) > 0 || newLine {
					line.Width -= eolWS
					if newParagraph {
						line.ParagraphEnd = true
					}
					if !wb.yield(line) {
						stop = true
						break
					}
					line = NewLine(nextStart)
					line.Align = alignAt(wb.d, nextStart)
					line.MarginLeft = wb.marginL.At(nextStart, wb.dpi)
					line.MarginRight = wb.marginR.At(nextStart, wb.dpi)
					if newParagraph {
						line.ParagraphBegin = true
					}

					if len(runAccum) > 0 {
						if gb, ok := runAccum[0].(*box.GlyphBox); ok && len(gb.Glyphs) > 0 {
							runAccumWidth -= gb.Glyphs[0].Kern
							gb.Glyphs[0].Kern = 0
						}
					} else if len(ownerAccum) > 0 {
						ownerAccumWidth -= ownerAccum[0].Kern
						ownerAccum[0].Kern = 0
					} else {
						nokern = true
					}
					eolWS = 0
					x = runAccumWidth + ownerAccumWidth
				}
			}
			if stop {
				break
			}

			if owner == nil {
				runAccum = append(runAccum, wb.cache.Slots[i].element)
				runAccumWidth += g
				x += g
			} else if newParagraph {
				wrap = wb.wrapStyle(index + 1)
				line.MarginLeft += wb.indent.At(index+1, wb.dpi)
				if haveWidth {
					width = layoutW - line.MarginLeft - line.MarginRight
				}
			} else if !newLine {
				ownerAccum = append(ownerAccum, box.KernGlyph{Kern: kern, Glyph: wb.cache.Slots[i].glyph})
				ownerAccumWidth += g + kern
				x += g + kern
			}
			index++
			eolWS = 0
		}

		if stop {
			break
		}
		flushOwnerGlyphBox(ownerAccumCommit, ownerAccumCommitWidth)
		if len(ownerAccum) > 0 {
			runAccum = append(runAccum, box.NewGlyphBox(owner, font, ownerAccum, ownerAccumWidth))
			runAccumWidth += ownerAccumWidth
		}
	}

	if !stop {
		for _, b := range runAccum {
			line.AddBox(b)
		}
		if len(line.Boxes) == 0 {
			line.Ascent, line.Descent = font.Ascent(), font.Descent()
		}
		wb.yield(line)
	}
}

// tabKern computes the kern needed so the tab glyph lands exactly on
// the next tab stop: the smallest configured stop strictly greater
// than x+marginLeft, or the next 50-pixel multiple if the configured
// stops are exhausted (spec.md §4.3).
func (wb *wrapLineBuilder) tabKern(stopsPt []float32, x, marginLeft, advance fixed.Int26_6) fixed.Int26_6 {
	cur := x + marginLeft
	for _, sPt := range stopsPt {
		s := fixed.I(wb.dpi.Px(unit.Pt(sPt)))
		if s > cur {
			return s - x - marginLeft - advance
		}
	}
	tab := fixed.I(50)
	stop := (cur/tab + 1) * tab
	return stop - x - marginLeft - advance
}
