package indexed

import (
	"iter"

	g "github.com/anacrolix/generics"
	"github.com/google/btree"
)

type googleBtreeSet[E any] struct {
	inner *btree.BTreeG[E]
}

func (me googleBtreeSet[E]) Iter(yield func(E) bool) {
	me.inner.Ascend(btree.ItemIteratorG[E](yield))
}

func (me googleBtreeSet[E]) IterFrom(start E) iter.Seq[E] {
	return func(yield func(E) bool) {
		me.inner.AscendGreaterOrEqual(start, btree.ItemIteratorG[E](yield))
	}
}

func (me googleBtreeSet[E]) GetGte(start E) (ret g.Option[E]) {
	me.inner.AscendGreaterOrEqual(start, func(e E) bool {
		ret.Set(e)
		return false
	})
	return
}

func (me googleBtreeSet[E]) Delete(e E) (actual E, removed bool) {
	return me.inner.Delete(e)
}

func (me googleBtreeSet[E]) Upsert(e E) (_ E, overwrote bool) {
	return me.inner.ReplaceOrInsert(e)
}

func (me googleBtreeSet[E]) Contains(e E) bool {
	return me.inner.Has(e)
}

func (me googleBtreeSet[E]) Len() int {
	return me.inner.Len()
}

func makeGoogleBtreeSet[E any](cmp func(E, E) int) googleBtreeSet[E] {
	return googleBtreeSet[E]{
		inner: btree.NewG(32, func(a, b E) bool {
			return cmp(a, b) < 0
		}),
	}
}
