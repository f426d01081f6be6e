// SPDX-License-Identifier: Unlicense OR MIT

package runlist

// Pair is the tuple type yielded by Zip2: one value from each of the
// two zipped Rangers. Go's type system has no variadic generics, so
// unlike the Python original's ZipRunIterator(*iters), this package
// provides fixed arities: Zip2, which the shaper uses to walk font and
// element runs together, and Zip3, which nothing in this module calls.
type Pair[A, B any] struct {
	A A
	B B
}

// Triple is the three-way analogue of Pair.
type Triple[A, B, C any] struct {
	A A
	B B
	C C
}

type zip2[A, B any] struct {
	a Ranger[A]
	b Ranger[B]
}

// Zip2 yields (s, e, Pair{a, b}) triples whose [s,e) is the
// intersection of a's and b's underlying run boundaries, advancing
// whichever cursor lags behind (spec.md §4.1's ZipRunIterator).
func Zip2[A, B any](a Ranger[A], b Ranger[B]) Ranger[Pair[A, B]] {
	return zip2[A, B]{a: a, b: b}
}

func (z zip2[A, B]) At(i int) Pair[A, B] {
	return Pair[A, B]{A: z.a.At(i), B: z.b.At(i)}
}

func (z zip2[A, B]) Ranges(start, end int) *Cursor[Pair[A, B]] {
	ca := z.a.Ranges(start, end)
	cb := z.b.Ranges(start, end)
	haveA, haveB := ca.Next(), cb.Next()
	pos := start
	return newCursor(func() (int, int, Pair[A, B], bool) {
		if pos >= end || !haveA || !haveB {
			var zero Pair[A, B]
			return 0, 0, zero, false
		}
		as, ae, av := ca.Range()
		bs, be, bv := cb.Range()
		_ = as
		_ = bs
		s := pos
		e := ae
		if be < e {
			e = be
		}
		v := Pair[A, B]{A: av, B: bv}
		pos = e
		if ae == e {
			haveA = ca.Next()
		}
		if be == e {
			haveB = cb.Next()
		}
		return s, e, v, true
	})
}

type zip3[A, B, C any] struct {
	a Ranger[A]
	b Ranger[B]
	c Ranger[C]
}

// Zip3 is Zip2 generalized to three Rangers.
func Zip3[A, B, C any](a Ranger[A], b Ranger[B], c Ranger[C]) Ranger[Triple[A, B, C]] {
	return zip3[A, B, C]{a: a, b: b, c: c}
}

func (z zip3[A, B, C]) At(i int) Triple[A, B, C] {
	return Triple[A, B, C]{A: z.a.At(i), B: z.b.At(i), C: z.c.At(i)}
}

func (z zip3[A, B, C]) Ranges(start, end int) *Cursor[Triple[A, B, C]] {
	ca := z.a.Ranges(start, end)
	cb := z.b.Ranges(start, end)
	cc := z.c.Ranges(start, end)
	haveA, haveB, haveC := ca.Next(), cb.Next(), cc.Next()
	pos := start
	return newCursor(func() (int, int, Triple[A, B, C], bool) {
		if pos >= end || !haveA || !haveB || !haveC {
			var zero Triple[A, B, C]
			return 0, 0, zero, false
		}
		_, ae, av := ca.Range()
		_, be, bv := cb.Range()
		_, ce, cv := cc.Range()
		s := pos
		e := ae
		if be < e {
			e = be
		}
		if ce < e {
			e = ce
		}
		v := Triple[A, B, C]{A: av, B: bv, C: cv}
		pos = e
		if ae == e {
			haveA = ca.Next()
		}
		if be == e {
			haveB = cb.Next()
		}
		if ce == e {
			haveC = cc.Next()
		}
		return s, e, v, true
	})
}
