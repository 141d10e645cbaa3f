package indexed

import (
	"iter"

	g "github.com/anacrolix/generics"
	"github.com/tidwall/btree"
)

type tidwallBtreeSet[E any] struct {
	inner *btree.BTreeG[E]
}

func (me tidwallBtreeSet[E]) Iter(yield func(E) bool) {
	it := me.inner.Iter()
	defer it.Release()
	for ok := it.First(); ok; ok = it.Next() {
		if !yield(it.Item()) {
			return
		}
	}
}

func (me tidwallBtreeSet[E]) IterFrom(start E) iter.Seq[E] {
	return func(yield func(E) bool) {
		me.inner.Ascend(start, yield)
	}
}

func (me tidwallBtreeSet[E]) GetGte(start E) (ret g.Option[E]) {
	me.inner.Ascend(start, func(e E) bool {
		ret.Set(e)
		return false
	})
	return
}

func (me tidwallBtreeSet[E]) Delete(e E) (actual E, removed bool) {
	return me.inner.Delete(e)
}

func (me tidwallBtreeSet[E]) Upsert(e E) (_ E, overwrote bool) {
	return me.inner.Set(e)
}

func (me tidwallBtreeSet[E]) Contains(e E) bool {
	_, ok := me.inner.Get(e)
	return ok
}

func (me tidwallBtreeSet[E]) Len() int {
	return me.inner.Len()
}

func makeTidwallBtreeSet[E any](cmp func(E, E) int) tidwallBtreeSet[E] {
	inner := btree.NewBTreeGOptions(func(a, b E) bool {
		return cmp(a, b) < 0
	}, btree.Options{
		Degree:  32,
		NoLocks: true,
	})
	return tidwallBtreeSet[E]{inner: inner}
}
