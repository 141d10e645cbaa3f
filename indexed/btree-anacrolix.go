package indexed

import (
	"iter"

	"github.com/anacrolix/btree"
	g "github.com/anacrolix/generics"
)

type anacrolixBtreeSet[E any] struct {
	inner btree.Set[E]
}

func (me *anacrolixBtreeSet[E]) Delete(e E) (actual E, removed bool) {
	actual, _, removed = me.inner.Map.Delete(e)
	return
}

func (me *anacrolixBtreeSet[E]) Upsert(e E) (_ E, overwrote bool) {
	return me.inner.Upsert(e)
}

func (me *anacrolixBtreeSet[E]) Contains(e E) bool {
	_, ok := me.inner.Get(e)
	return ok
}

func (me *anacrolixBtreeSet[E]) Len() int {
	return me.inner.Len()
}

func (me *anacrolixBtreeSet[E]) Iter(yield func(E) bool) {
	it := me.inner.Iterator()
	for it.First(); it.Valid(); it.Next() {
		if !yield(it.Cur()) {
			return
		}
	}
}

func (me *anacrolixBtreeSet[E]) IterFrom(start E) iter.Seq[E] {
	return func(yield func(E) bool) {
		it := me.inner.Iterator()
		for it.SeekGE(start); it.Valid(); it.Next() {
			if !yield(it.Cur()) {
				return
			}
		}
	}
}

func (me *anacrolixBtreeSet[E]) GetGte(start E) (_ g.Option[E]) {
	it := me.inner.Iterator()
	it.SeekGE(start)
	if !it.Valid() {
		return
	}
	return g.Some(it.Cur())
}

func makeAnacrolixBtreeSet[E any](cmp func(E, E) int) *anacrolixBtreeSet[E] {
	return &anacrolixBtreeSet[E]{inner: btree.MakeSet(cmp)}
}
