// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"golang.org/x/image/math/fixed"

	"richtext.dev/layout/doc"
	"richtext.dev/layout/flow"
	"richtext.dev/layout/unit"
)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PositionAtPoint implements spec.md §4.9's position_at_point: locate
// the line by Y, then the box on that line whose advance span
// contains the local X, and ask the box for the exact character
// offset within it.
func (s *Static) PositionAtPoint(x, y fixed.Int26_6) int {
	if len(s.lines) == 0 {
		return 0
	}
	dx, dy := s.anchorOffset()
	lx, ly := x-s.x-dx, y-s.y-dy

	idx := len(s.lines) - 1
	for i, l := range s.lines {
		if l.Y+l.Descent < ly {
			idx = i
			break
		}
	}
	return s.PositionOnLine(idx, lx)
}

// PositionOnLine finds the character offset on line index lineIndex
// nearest local x, clamping lineIndex into range.
func (s *Static) PositionOnLine(lineIndex int, x fixed.Int26_6) int {
	if len(s.lines) == 0 {
		return 0
	}
	lineIndex = clampInt(lineIndex, 0, len(s.lines)-1)
	line := s.lines[lineIndex]
	if len(line.Boxes) == 0 {
		return line.Start
	}
	pos := line.Start
	curX := line.X
	for i, b := range line.Boxes {
		adv := b.Advance()
		if x < curX+adv || i == len(line.Boxes)-1 {
			return pos + b.PositionInBox(x - curX)
		}
		curX += adv
		pos += b.Length()
	}
	return pos
}

// PointAtPosition implements spec.md §4.9's point_at_position. line,
// when >= 0, disambiguates the boundary between two lines that share
// a position (e.g. end-of-line vs start-of-next); -1 selects the line
// found by LineFromPosition.
func (s *Static) PointAtPosition(pos int, line int) (fixed.Int26_6, fixed.Int26_6) {
	dx, dy := s.anchorOffset()
	if len(s.lines) == 0 {
		return s.x + dx, s.y + dy
	}
	pos = clampInt(pos, 0, s.document.Len())
	if line < 0 {
		line = s.LineFromPosition(pos)
	}
	line = clampInt(line, 0, len(s.lines)-1)
	l := s.lines[line]

	curX := l.X
	remaining := pos - l.Start
	x := curX
	for i, b := range l.Boxes {
		if remaining < b.Length() || i == len(l.Boxes)-1 {
			x = curX + b.PointInBox(clampInt(remaining, 0, b.Length()))
			break
		}
		curX += b.Advance()
		remaining -= b.Length()
		x = curX
	}

	baseline := s.baselineBefore(pos)
	return s.x + dx + x, s.y + dy + l.Y + baseline
}

// baselineBefore reads the baseline style of the character just
// before pos, defaulting to 0 (spec.md §4.9).
func (s *Static) baselineBefore(pos int) fixed.Int26_6 {
	if pos <= 0 {
		return 0
	}
	v := s.document.StyleRuns(doc.Baseline).At(pos - 1)
	pt, ok := v.(float32)
	if !ok {
		return 0
	}
	return fixed.I(s.dpi.Px(unit.Pt(pt)))
}

// LineFromPosition returns the index of the line containing pos:
// the line with the largest Start <= pos.
func (s *Static) LineFromPosition(pos int) int {
	if len(s.lines) == 0 {
		return 0
	}
	idx := 0
	for i, l := range s.lines {
		if l.Start <= pos {
			idx = i
		} else {
			break
		}
	}
	return idx
}

// PositionFromLine returns the document position at which line
// lineIndex starts.
func (s *Static) PositionFromLine(lineIndex int) int {
	if len(s.lines) == 0 {
		return 0
	}
	lineIndex = clampInt(lineIndex, 0, len(s.lines)-1)
	return s.lines[lineIndex].Start
}

// GetLineCount reports the number of laid-out lines.
func (s *Static) GetLineCount() int { return len(s.lines) }

// lineAlign exposes a line's resolved alignment, mostly for tests.
func (s *Static) lineAlign(i int) flow.Alignment {
	if i < 0 || i >= len(s.lines) {
		return flow.Left
	}
	return s.lines[i].Align
}
