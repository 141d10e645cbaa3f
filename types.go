package mergejoin

import (
	"cmp"
	"fmt"
)

// Three-way comparison, negative when a < b, zero when equal, positive when a > b. Join identity
// is entirely this function's equality.
type CompareFunc[K any] func(a, b K) int

// Extracts the join key from an element. Must be deterministic, and consistent with the order of
// the sequence it's applied to.
type KeyFunc[T, K any] func(T) K

// Produces the result for one matched pair. An error aborts the join.
type Combiner[L, R, Res any] func(l L, r R) (Res, error)

type Pair[L, R any] struct {
	Left  L
	Right R
}

func (me Pair[L, R]) String() string {
	return fmt.Sprintf("(%v, %v)", me.Left, me.Right)
}

// The default Combiner.
func MakePair[L, R any](l L, r R) (Pair[L, R], error) {
	return Pair[L, R]{l, r}, nil
}

// Adapts a combining function that can't fail.
func Combine[L, R, Res any](f func(L, R) Res) Combiner[L, R, Res] {
	return func(l L, r R) (Res, error) {
		return f(l, r), nil
	}
}

// For sequences whose elements are their own keys.
func Identity[T any](t T) T {
	return t
}

func orderedCompare[K cmp.Ordered]() CompareFunc[K] {
	return cmp.Compare[K]
}

type Side int

const (
	Left Side = iota
	Right
)

func (me Side) String() string {
	switch me {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Side(%d)", int(me))
	}
}
