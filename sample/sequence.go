package sample

import (
	"iter"

	"github.com/mastercactapus/toolpath/coord"
)

// Sequence is a lazily evaluated series of sampled points. It holds no
// cursor, so every call to All starts again from the first point.
type Sequence struct {
	n   int
	gen func(yield func(coord.Point) bool)
}

// Single returns a sequence holding only p.
func Single(p coord.Point) Sequence {
	return Sequence{n: 1, gen: func(yield func(coord.Point) bool) { yield(p) }}
}

// Of returns a sequence over a fixed list of points.
func Of(points ...coord.Point) Sequence {
	return Sequence{n: len(points), gen: func(yield func(coord.Point) bool) {
		for _, p := range points {
			if !yield(p) {
				return
			}
		}
	}}
}

// Len is the number of points the sequence produces.
func (s Sequence) Len() int { return s.n }

func (s Sequence) All() iter.Seq[coord.Point] {
	return func(yield func(coord.Point) bool) {
		if s.gen == nil {
			return
		}
		s.gen(yield)
	}
}

// Points collects the sequence into a slice.
func (s Sequence) Points() []coord.Point {
	res := make([]coord.Point, 0, s.n)
	for p := range s.All() {
		res = append(res, p)
	}
	return res
}

// Last returns the final point, if any.
func (s Sequence) Last() (p coord.Point, ok bool) {
	for p = range s.All() {
		ok = true
	}
	return p, ok
}

// Map returns a sequence applying fn to every point of s.
func (s Sequence) Map(fn func(coord.Point) coord.Point) Sequence {
	return Sequence{n: s.n, gen: func(yield func(coord.Point) bool) {
		for p := range s.All() {
			if !yield(fn(p)) {
				return
			}
		}
	}}
}
