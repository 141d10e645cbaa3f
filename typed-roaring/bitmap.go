package typedRoaring

import (
	"cmp"
	"iter"

	"github.com/RoaringBitmap/roaring"
)

// A roaring bitmap of T. Values come out in ascending order, which makes a Bitmap a sorted
// sequence of unique keys for joining, with each element being its own key.
type Bitmap[T BitConstraint] struct {
	roaring.Bitmap
}

func FromValues[T BitConstraint](values ...T) *Bitmap[T] {
	var ret Bitmap[T]
	for _, v := range values {
		ret.Add(v)
	}
	return &ret
}

func (me *Bitmap[T]) Contains(x T) bool {
	return me.Bitmap.Contains(uint32(x))
}

func (me *Bitmap[T]) Add(x T) {
	me.Bitmap.Add(uint32(x))
}

// The number of values less than or equal to x.
func (me *Bitmap[T]) Rank(x T) uint64 {
	return me.Bitmap.Rank(uint32(x))
}

// The number of values in [start, end).
func (me *Bitmap[T]) RangeCardinality(start, end T) (card uint64) {
	if end <= start {
		return 0
	}
	card = me.Rank(end - 1)
	if start != 0 {
		card -= me.Rank(start - 1)
	}
	return
}

func (me *Bitmap[T]) Clone() Bitmap[T] {
	return Bitmap[T]{*me.Bitmap.Clone()}
}

// Returns an uninitialized iterator for the type of the receiver.
func (*Bitmap[T]) IteratorType() Iterator[T] {
	return Iterator[T]{}
}

// Ascending values from gte on. The bitmap must not be modified while this is in use.
func (me *Bitmap[T]) IterFrom(gte T) iter.Seq[T] {
	return func(yield func(T) bool) {
		it := me.IteratorType()
		it.Initialize(me)
		it.AdvanceIfNeeded(gte)
		it.Seq()(yield)
	}
}

func (me *Bitmap[T]) Values() iter.Seq[T] {
	return me.IterFrom(0)
}

func (me *Bitmap[T]) Elements() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v := range me.Values() {
			if !yield(v, nil) {
				return
			}
		}
	}
}

// Yields key if it's in the bitmap. Values are unique, so groups never hold more than one.
func (me *Bitmap[T]) Group(key T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if me.Contains(key) {
			yield(key, nil)
		}
	}
}

func (me *Bitmap[T]) CompareKeys(a, b T) int {
	return cmp.Compare(a, b)
}
