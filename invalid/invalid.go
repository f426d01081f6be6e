// SPDX-License-Identifier: Unlicense OR MIT

// Package invalid implements the half-open dirty-interval tracker
// described in spec.md §3/§4.5, grounded on the pyglet original's
// _InvalidRange (layout.py:423-458). An IncrementalTextLayout keeps
// five independent instances — one each for glyphs, flow, lines,
// style and vertex lines; its visible line window is tracked
// separately as a plain pair of line indices.
package invalid

import "math"

// Range tracks the smallest [start,end) interval known to need
// recomputation. Construct with New: the zero value reports nothing
// invalid, but Invalidate keeps its start of 0, so it is not a usable
// empty range.
type Range struct {
	start, end int
}

// New returns an empty Range.
func New() *Range {
	return &Range{start: math.MaxInt, end: 0}
}

// IsInvalid reports whether the range currently covers anything.
func (r *Range) IsInvalid() bool {
	return r.end > r.start
}

// Insert shifts the range to account for count positions inserted at
// pos, then marks the inserted span itself invalid: new content is
// always unshaped/unflowed/unstyled until processed.
func (r *Range) Insert(pos, count int) {
	if r.IsInvalid() {
		if r.start >= pos {
			r.start += count
		}
		if r.end >= pos {
			r.end += count
		}
	}
	r.Invalidate(pos, pos+count)
}

// Delete shifts the range to account for [start,end) having been
// removed, collapsing any part of the invalid region that fell inside
// the deleted span down to the deletion point.
func (r *Range) Delete(start, end int) {
	size := end - start
	switch {
	case r.start > end:
		r.start -= size
	case r.start > start:
		r.start = start
	}
	switch {
	case r.end > end:
		r.end -= size
	case r.end > start:
		r.end = start
	}
}

// Invalidate extends the range to cover at least [start,end). An
// empty sub-range is a no-op.
func (r *Range) Invalidate(start, end int) {
	if end <= start {
		return
	}
	if start < r.start {
		r.start = start
	}
	if end > r.end {
		r.end = end
	}
}

// Validate reports the current [start,end) and resets the range to
// empty. Callers use the returned bounds to know exactly what to
// recompute, then move on treating the range as clean.
func (r *Range) Validate() (start, end int) {
	start, end = r.start, r.end
	r.start, r.end = math.MaxInt, 0
	return start, end
}
