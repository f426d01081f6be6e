// SPDX-License-Identifier: Unlicense OR MIT

package runlist

// ConstRunIterator is a Ranger with exactly one run of value covering
// [0, length).
type ConstRunIterator[T any] struct {
	length int
	value  T
}

// NewConst returns a Ranger that reports value for every index in
// [0, length).
func NewConst[T any](length int, value T) Ranger[T] {
	return ConstRunIterator[T]{length: length, value: value}
}

func (c ConstRunIterator[T]) At(int) T { return c.value }

func (c ConstRunIterator[T]) Ranges(start, end int) *Cursor[T] {
	done := start >= end
	return newCursor(func() (int, int, T, bool) {
		if done {
			var zero T
			return 0, 0, zero, false
		}
		done = true
		return start, end, c.value, true
	})
}

// filteredRunIterator replaces values failing pred with def, without
// allocating per element: each underlying run simply has its value
// substituted.
type filteredRunIterator[T any] struct {
	src  Ranger[T]
	def  T
	pred func(T) bool
}

// FilteredRunIterator wraps src so that any run whose value fails
// pred reads as def instead (spec.md §4.1).
func FilteredRunIterator[T any](src Ranger[T], def T, pred func(T) bool) Ranger[T] {
	return filteredRunIterator[T]{src: src, def: def, pred: pred}
}

func (f filteredRunIterator[T]) At(i int) T {
	v := f.src.At(i)
	if f.pred(v) {
		return v
	}
	return f.def
}

func (f filteredRunIterator[T]) Ranges(start, end int) *Cursor[T] {
	inner := f.src.Ranges(start, end)
	return newCursor(func() (int, int, T, bool) {
		if !inner.Next() {
			var zero T
			return 0, 0, zero, false
		}
		s, e, v := inner.Range()
		if !f.pred(v) {
			v = f.def
		}
		return s, e, v, true
	})
}

// overriddenRunIterator forces value on [ovStart,ovEnd), passing
// everything outside that window through from src unchanged.
type overriddenRunIterator[T any] struct {
	src            Ranger[T]
	ovStart, ovEnd int
	value          T
}

// OverriddenRunIterator wraps src so that [start,end) always reads as
// value, regardless of what src stores there (spec.md §4.1, used for
// selection highlighting in §4.9/§8 scenario F).
func OverriddenRunIterator[T any](src Ranger[T], start, end int, value T) Ranger[T] {
	return overriddenRunIterator[T]{src: src, ovStart: start, ovEnd: end, value: value}
}

func (o overriddenRunIterator[T]) At(i int) T {
	if i >= o.ovStart && i < o.ovEnd {
		return o.value
	}
	return o.src.At(i)
}

func (o overriddenRunIterator[T]) Ranges(start, end int) *Cursor[T] {
	// Split the requested window into up to three segments: before
	// the override, the override itself, and after it. Each segment
	// is emitted as its own sub-cursor, advanced in sequence.
	type seg struct {
		s, e int
		isOv bool
	}
	var segs []seg
	if start < o.ovStart {
		segs = append(segs, seg{start, min(end, o.ovStart), false})
	}
	ovS, ovE := max(start, o.ovStart), min(end, o.ovEnd)
	if ovS < ovE {
		segs = append(segs, seg{ovS, ovE, true})
	}
	if end > o.ovEnd {
		segs = append(segs, seg{max(start, o.ovEnd), end, false})
	}
	segIdx := 0
	var cur *Cursor[T]
	return newCursor(func() (int, int, T, bool) {
		for {
			if cur != nil {
				if cur.Next() {
					s, e, v := cur.Range()
					return s, e, v, true
				}
				cur = nil
			}
			if segIdx >= len(segs) {
				var zero T
				return 0, 0, zero, false
			}
			g := segs[segIdx]
			segIdx++
			if g.isOv {
				emitted := false
				cur = newCursor(func() (int, int, T, bool) {
					if emitted {
						var zero T
						return 0, 0, zero, false
					}
					emitted = true
					return g.s, g.e, o.value, true
				})
			} else {
				cur = o.src.Ranges(g.s, g.e)
			}
		}
	})
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
