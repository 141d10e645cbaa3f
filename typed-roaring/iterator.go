package typedRoaring

import (
	"iter"

	"github.com/RoaringBitmap/roaring"
)

// Ascends through a Bitmap[T]. Get one from Bitmap.IteratorType and Initialize it.
type Iterator[T BitConstraint] struct {
	roaring.IntIterator
}

func (me *Iterator[T]) Initialize(a *Bitmap[T]) {
	me.IntIterator.Initialize(&a.Bitmap)
}

func (me *Iterator[T]) Next() T {
	return T(me.IntIterator.Next())
}

func (me *Iterator[T]) PeekNext() T {
	return T(me.IntIterator.PeekNext())
}

// Skips values less than minVal.
func (me *Iterator[T]) AdvanceIfNeeded(minVal T) {
	me.IntIterator.AdvanceIfNeeded(uint32(minVal))
}

// The remaining values. Consumes the iterator.
func (me *Iterator[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for me.HasNext() {
			if !yield(me.Next()) {
				return
			}
		}
	}
}
