// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/doc"
	"richtext.dev/layout/unit"
)

// VerticalPlacer computes each line's Y baseline and X origin (spec.md
// §4.4), grounded on _flow_lines (layout.py:1238-1306).
type VerticalPlacer struct {
	MarginTop    pointsIter
	MarginBottom pointsIter
	LineSpacing  optionalPointsIter
	Leading      pointsIter
}

// NewVerticalPlacer builds a placer reading style run-lists from d.
func NewVerticalPlacer(d doc.Document) *VerticalPlacer {
	return &VerticalPlacer{
		MarginTop:    points(d, doc.MarginTop, 0),
		MarginBottom: points(d, doc.MarginBottom, 0),
		LineSpacing:  optionalPoints(d, doc.LineSpacing),
		Leading:      points(d, doc.Leading, 0),
	}
}

// Place recomputes y (and x) for lines[start:], returning the index
// one past the last line it touched, contentWidth (max over all
// lines of width+marginLeft) and contentHeight (-y at the end).
// layoutWidthSet selects whether overflowing lines force left-align;
// when false, each line is aligned within a width just one unit wider
// than itself plus its margins, so Center and Right place it at (about)
// its left margin.
func (p *VerticalPlacer) Place(lines []*Line, start, invalidEnd int, dpi unit.DPI, layoutWidth fixed.Int26_6, layoutWidthSet bool) (touched int, contentWidth, contentHeight fixed.Int26_6) {
	var y fixed.Int26_6
	var lineSpacing fixed.Int26_6
	haveLineSpacing := false
	if start == 0 {
		y = 0
	} else {
		prev := lines[start-1]
		lineSpacing, haveLineSpacing = p.LineSpacing.At(prev.Start, dpi)
		y = prev.Y
		if !haveLineSpacing {
			y += prev.Descent
		}
		if prev.ParagraphEnd {
			y -= p.MarginBottom.At(prev.Start, dpi)
		}
	}

	for _, l := range lines[:start] {
		if w := l.Width + l.MarginLeft; w > contentWidth {
			contentWidth = w
		}
	}

	lineIndex := start
	for ; lineIndex < len(lines); lineIndex++ {
		line := lines[lineIndex]
		var leading fixed.Int26_6
		if line.ParagraphBegin {
			y -= p.MarginTop.At(line.Start, dpi)
			lineSpacing, haveLineSpacing = p.LineSpacing.At(line.Start, dpi)
			leading = p.Leading.At(line.Start, dpi)
		} else {
			leading = p.Leading.At(line.Start, dpi)
			y -= leading
		}

		if !haveLineSpacing {
			y -= line.Ascent
		} else {
			y -= lineSpacing
		}

		lw := layoutWidth
		set := layoutWidthSet
		if !set {
			lw = line.Width + line.MarginLeft + line.MarginRight + 1
			set = true
		}
		line.X = align(line.Align, line.MarginLeft, line.MarginRight, line.Width, lw, set)

		if w := line.Width + line.MarginLeft; w > contentWidth {
			contentWidth = w
		}

		if line.Y == y && lineIndex >= invalidEnd {
			for _, l := range lines[lineIndex+1:] {
				if w := l.Width + l.MarginLeft; w > contentWidth {
					contentWidth = w
				}
			}
			return lineIndex, contentWidth, -y
		}
		line.Y = y

		if !haveLineSpacing {
			y += line.Descent
		}
		if line.ParagraphEnd {
			y -= p.MarginBottom.At(line.Start, dpi)
		}
	}
	return lineIndex, contentWidth, -y
}
