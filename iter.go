package mergejoin

import (
	"iter"
	"slices"
)

// Something that can produce its elements, in key order, as a single-pass sequence. The join
// consumes Elements at most once per join.
type Joinable[T any] interface {
	Elements() iter.Seq2[T, error]
}

// Optional capability for materialized, already-sorted collections. Group yields the elements
// whose key compares equal to key under CompareKeys, in their stored order, and may be called
// repeatedly for the same key. CompareKeys is the order the collection keeps its keys in. Replay
// joins against it without buffering key groups.
type GroupReplayer[T, K any] interface {
	Joinable[T]
	Group(key K) iter.Seq2[T, error]
	CompareKeys(a, b K) int
}

// An infallible sequence.
type Seq[T any] iter.Seq[T]

func (me Seq[T]) Elements() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for t := range me {
			if !yield(t, nil) {
				return
			}
		}
	}
}

// A sequence that can fail while producing its elements. Iteration is expected to end after the
// first non-nil error.
type Seq2[T any] iter.Seq2[T, error]

func (me Seq2[T]) Elements() iter.Seq2[T, error] {
	return iter.Seq2[T, error](me)
}

func Slice[T any](s []T) Joinable[T] {
	return Seq[T](slices.Values(s))
}

var (
	_ Joinable[int] = Seq[int](nil)
	_ Joinable[int] = Seq2[int](nil)
)
