// SPDX-License-Identifier: Unlicense OR MIT

// Package runlist implements the compressed per-character attribute
// storage described in spec.md §3/§4.1: a RunList partitions [0,N)
// into maximal runs, each carrying one value, and supports point
// lookup, ranged iteration, and the filtered/overridden/zipped/const
// iterator views layered on top of it.
package runlist

import (
	"fmt"
	"reflect"

	"golang.org/x/exp/slices"
)

// Ranger is anything that can be queried like a RunList: a point
// lookup and a ranged, run-coalescing iterator. FilteredRunIterator,
// OverriddenRunIterator, Zip2 and Zip3 implement Ranger by wrapping
// other Rangers, so they compose; ConstRunIterator is a standalone
// Ranger over a single constant run.
type Ranger[T any] interface {
	// At returns the value covering character index i.
	At(i int) T
	// Ranges returns a cursor over [start,end), clipped so the first
	// yielded run starts at start and the last ends at end.
	Ranges(start, end int) *Cursor[T]
}

// Cursor is a stateful, single-pass iterator over runs. Calling Next
// advances it; Range reports the most recently yielded run. A Cursor
// allocates no per-step state beyond what its producer captured when
// Ranges was called.
type Cursor[T any] struct {
	next func() (s, e int, v T, ok bool)
	s, e int
	v    T
}

// Next advances the cursor and reports whether a run was yielded.
func (c *Cursor[T]) Next() bool {
	s, e, v, ok := c.next()
	if !ok {
		return false
	}
	c.s, c.e, c.v = s, e, v
	return true
}

// Range reports the bounds and value of the run the last call to Next
// yielded.
func (c *Cursor[T]) Range() (start, end int, value T) {
	return c.s, c.e, c.v
}

func newCursor[T any](next func() (int, int, T, bool)) *Cursor[T] {
	return &Cursor[T]{next: next}
}

// RunList is the concrete, mutable backing store. The zero value is
// not usable; construct with New.
type RunList[T any] struct {
	length int
	// def is the value assigned to newly created runs: the initial
	// run when length > 0 at construction, and any run grown from
	// nothing by Insert into an empty list.
	def T
	// starts holds the first index of each run in increasing order;
	// starts[0] == 0 whenever length > 0. values[i] is the value of
	// the run starting at starts[i]; the run ends at starts[i+1], or
	// length for the last run.
	starts []int
	values []T
}

// New creates a RunList of the given length with a single run of
// value. length may be zero; value is remembered as the default for
// runs later grown into existence by Insert.
func New[T any](length int, value T) *RunList[T] {
	r := &RunList[T]{length: length, def: value}
	if length > 0 {
		r.starts = []int{0}
		r.values = []T{value}
	}
	return r
}

// Len returns the total length of the run-list.
func (r *RunList[T]) Len() int {
	return r.length
}

// indexOf returns the index into starts/values of the run containing
// position i. i must be in [0, length); panics otherwise (programmer
// error, per spec.md §4.1's "Failure modes: none; out-of-range
// arguments are programmer errors").
func (r *RunList[T]) indexOf(i int) int {
	if i < 0 || i >= r.length {
		panic(fmt.Sprintf("runlist: index %d out of range [0,%d)", i, r.length))
	}
	// starts is sorted; find the last start <= i.
	n, found := slices.BinarySearch(r.starts, i)
	if found {
		return n
	}
	return n - 1
}

// At returns the value covering character index i.
func (r *RunList[T]) At(i int) T {
	return r.values[r.indexOf(i)]
}

// Insert grows the run-list by count positions at pos, extending the
// run containing pos (the inserted span takes its value) and shifting
// every later boundary by +count. pos == Len() appends.
func (r *RunList[T]) Insert(pos, count int) {
	if pos < 0 || pos > r.length {
		panic(fmt.Sprintf("runlist: insert pos %d out of range [0,%d]", pos, r.length))
	}
	if count < 0 {
		panic("runlist: negative insert count")
	}
	if count == 0 {
		return
	}
	if r.length == 0 {
		r.starts = []int{0}
		r.values = []T{r.def}
		r.length = count
		return
	}
	if pos == r.length {
		// Appending extends the last run's value forward.
		r.length += count
		return
	}
	// The inserted span belongs to the run containing pos (a run
	// whose start equals pos absorbs the insertion too, since it is
	// the run At(pos) reports before the mutation); every boundary
	// after it shifts down by count.
	idx := r.indexOf(pos)
	for i := idx + 1; i < len(r.starts); i++ {
		r.starts[i] += count
	}
	r.length += count
}

// Delete removes the half-open range [start,end), shifting later
// boundaries down and merging the runs that become adjacent.
func (r *RunList[T]) Delete(start, end int) {
	if start < 0 || end > r.length || start > end {
		panic(fmt.Sprintf("runlist: delete [%d,%d) out of range [0,%d]", start, end, r.length))
	}
	if start == end {
		return
	}
	size := end - start
	newStarts := make([]int, 0, len(r.starts))
	newValues := make([]T, 0, len(r.values))
	for i, s := range r.starts {
		runEnd := r.length
		if i+1 < len(r.starts) {
			runEnd = r.starts[i+1]
		}
		// Clip [s,runEnd) against the deleted range.
		ns, ne := s, runEnd
		if ns >= end {
			ns -= size
			ne -= size
		} else if ne > start {
			// Overlaps the deletion; shrink to what survives.
			if ne > end {
				ne -= size
			} else {
				ne = start
			}
			if ns > start {
				ns -= min(ns-start, size)
			}
		}
		if ne <= ns {
			continue
		}
		if len(newStarts) > 0 && newStarts[len(newStarts)-1] == ns {
			// Degenerate run produced by clipping; extend previous.
			continue
		}
		newStarts = append(newStarts, ns)
		newValues = append(newValues, r.values[i])
	}
	r.starts = newStarts
	r.values = newValues
	r.length -= size
	r.normalize()
}

// SetRun forces value on [start,end), splitting boundary runs as
// needed. Setting the same value over an interval twice is a no-op
// (idempotent), and an empty interval is always a no-op.
func (r *RunList[T]) SetRun(start, end int, value T) {
	if start < 0 || end > r.length || start > end {
		panic(fmt.Sprintf("runlist: set_run [%d,%d) out of range [0,%d]", start, end, r.length))
	}
	if start == end {
		return
	}
	newStarts := make([]int, 0, len(r.starts)+2)
	newValues := make([]T, 0, len(r.values)+2)
	inserted := false
	for i, s := range r.starts {
		runEnd := r.length
		if i+1 < len(r.starts) {
			runEnd = r.starts[i+1]
		}
		if runEnd <= start || s >= end {
			newStarts = append(newStarts, s)
			newValues = append(newValues, r.values[i])
			continue
		}
		// This run overlaps [start,end); emit the surviving prefix,
		// the override (once), and the surviving suffix.
		if s < start {
			newStarts = append(newStarts, s)
			newValues = append(newValues, r.values[i])
		}
		if !inserted {
			newStarts = append(newStarts, start)
			newValues = append(newValues, value)
			inserted = true
		}
		if runEnd > end {
			newStarts = append(newStarts, end)
			newValues = append(newValues, r.values[i])
		}
	}
	r.starts = newStarts
	r.values = newValues
	r.normalize()
}

// normalize merges adjacent runs that were left with deep-equal
// values by a mutation. Merging is never required for correctness
// (spec.md §4.1: "runs with equal values are not required to be
// merged but must behave identically under iteration") but keeps
// SetRun idempotent and the boundary list from growing without bound.
func (r *RunList[T]) normalize() {
	if len(r.starts) < 2 {
		return
	}
	out := r.starts[:1]
	vals := r.values[:1]
	for i := 1; i < len(r.starts); i++ {
		if deepEqual(r.values[i], vals[len(vals)-1]) {
			continue
		}
		out = append(out, r.starts[i])
		vals = append(vals, r.values[i])
	}
	r.starts = out
	r.values = vals
}

// Ranges returns a cursor over [start,end).
func (r *RunList[T]) Ranges(start, end int) *Cursor[T] {
	if start < 0 || end > r.length || start > end {
		panic(fmt.Sprintf("runlist: ranges [%d,%d) out of range [0,%d]", start, end, r.length))
	}
	if start == end {
		return newCursor(func() (int, int, T, bool) {
			var zero T
			return 0, 0, zero, false
		})
	}
	idx := r.indexOf(start)
	pos := start
	return newCursor(func() (int, int, T, bool) {
		if pos >= end {
			var zero T
			return 0, 0, zero, false
		}
		runEnd := r.length
		if idx+1 < len(r.starts) {
			runEnd = r.starts[idx+1]
		}
		if runEnd > end {
			runEnd = end
		}
		s, v := pos, r.values[idx]
		pos = runEnd
		idx++
		return s, runEnd, v, true
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func deepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
