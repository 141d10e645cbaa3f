package indexed

import (
	"cmp"
	"iter"

	g "github.com/anacrolix/generics"
	"github.com/anacrolix/missinggo/v2/panicif"

	"github.com/anacrolix/mergejoin"
	"github.com/anacrolix/mergejoin/internal/amortize"
)

// A stored element. seq orders elements that share a key by insertion.
type entry[T, K any] struct {
	key   K
	seq   uint64
	value T
}

// An in-memory collection kept ordered by key, with elements sharing a key kept in insertion
// order. It can be joined directly, and since it can replay any key group, mergejoin.Each doesn't
// need to buffer groups taken from it. Not safe for concurrent use, and must not be modified
// while being iterated.
type Table[T comparable, K any] struct {
	set     btreeSet[entry[T, K]]
	keyFunc mergejoin.KeyFunc[T, K]
	cmp     mergejoin.CompareFunc[K]
	nextSeq uint64
	// Tracks changes to the btree.
	version int
	checks  amortize.Atomic
}

type Option func(*config)

type config struct {
	backend Backend
}

func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

func New[T comparable, K any](
	keyFunc mergejoin.KeyFunc[T, K],
	cmp mergejoin.CompareFunc[K],
	opts ...Option,
) *Table[T, K] {
	var c config
	for _, o := range opts {
		o(&c)
	}
	me := &Table[T, K]{
		keyFunc: keyFunc,
		cmp:     cmp,
	}
	me.set = makeSet(c.backend, me.compareEntries)
	return me
}

func NewOrdered[T comparable, K cmp.Ordered](keyFunc mergejoin.KeyFunc[T, K], opts ...Option) *Table[T, K] {
	return New(keyFunc, cmp.Compare[K], opts...)
}

func (me *Table[T, K]) compareEntries(a, b entry[T, K]) int {
	return cmp.Or(
		me.cmp(a.key, b.key),
		cmp.Compare(a.seq, b.seq))
}

// The smallest possible entry for key. No stored entry has seq 0.
func (me *Table[T, K]) seekEntry(key K) entry[T, K] {
	return entry[T, K]{key: key}
}

func (me *Table[T, K]) Insert(values ...T) {
	for _, v := range values {
		me.version++
		me.nextSeq++
		_, overwrote := me.set.Upsert(entry[T, K]{
			key:   me.keyFunc(v),
			seq:   me.nextSeq,
			value: v,
		})
		panicif.True(overwrote)
	}
}

// Removes the first element equal to v among those sharing its key.
func (me *Table[T, K]) Delete(v T) (removed bool) {
	key := me.keyFunc(v)
	var target g.Option[entry[T, K]]
	for e := range me.entriesEq(key) {
		if e.value == v {
			target.Set(e)
			break
		}
	}
	if !target.Ok {
		return false
	}
	me.version++
	actual, removed := me.set.Delete(target.Value)
	panicif.False(removed)
	panicif.NotEq(actual.seq, target.Value.seq)
	return true
}

// Not count because that could imply more than O(1) work.
func (me *Table[T, K]) Len() int {
	return me.set.Len()
}

func (me *Table[T, K]) Iter(yield func(T) bool) {
	me.iterEntries(me.set.Iter)(func(e entry[T, K]) bool {
		return yield(e.value)
	})
}

func (me *Table[T, K]) IterFrom(gte K) iter.Seq[T] {
	return values(me.iterEntries(me.set.IterFrom(me.seekEntry(gte))))
}

// Elements with keys in [gte, lt).
func (me *Table[T, K]) IterRange(gte, lt K) iter.Seq[T] {
	return values(me.entriesWhile(gte, func(e entry[T, K]) bool {
		return me.cmp(e.key, lt) < 0
	}))
}

// The first element with key greater than or equal to gte.
func (me *Table[T, K]) GetGte(gte K) (ret g.Option[T]) {
	e := me.set.GetGte(me.seekEntry(gte))
	if e.Ok {
		ret.Set(e.Value.value)
	}
	return
}

// The first element inserted with key.
func (me *Table[T, K]) GetEq(key K) (ret g.Option[T]) {
	ret = me.GetGte(key)
	if ret.Ok && me.cmp(me.keyFunc(ret.Value), key) != 0 {
		ret = g.None[T]()
	}
	return
}

func (me *Table[T, K]) Contains(key K) bool {
	return me.GetEq(key).Ok
}

func (me *Table[T, K]) Elements() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for v := range me.Iter {
			if !yield(v, nil) {
				return
			}
		}
	}
}

func (me *Table[T, K]) Group(key K) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var n int
		for e := range me.entriesEq(key) {
			n++
			if !yield(e.value, nil) {
				return
			}
		}
		me.checkGroupLen(key, n)
	}
}

func (me *Table[T, K]) CompareKeys(a, b K) int {
	return me.cmp(a, b)
}

func (me *Table[T, K]) entriesEq(key K) iter.Seq[entry[T, K]] {
	return me.entriesWhile(key, func(e entry[T, K]) bool {
		return me.cmp(e.key, key) == 0
	})
}

func (me *Table[T, K]) entriesWhile(gte K, while func(entry[T, K]) bool) iter.Seq[entry[T, K]] {
	return func(yield func(entry[T, K]) bool) {
		for e := range me.iterEntries(me.set.IterFrom(me.seekEntry(gte))) {
			if !while(e) || !yield(e) {
				return
			}
		}
	}
}

// Panics if the table changes while the returned sequence is being consumed.
func (me *Table[T, K]) iterEntries(seq iter.Seq[entry[T, K]]) iter.Seq[entry[T, K]] {
	return func(yield func(entry[T, K]) bool) {
		version := me.version
		for e := range seq {
			if !yield(e) {
				return
			}
			panicif.NotEq(me.version, version)
		}
	}
}

// Occasionally compares a seeked group against a full scan.
func (me *Table[T, K]) checkGroupLen(key K, seeked int) {
	if !me.checks.Try() {
		return
	}
	var scanned int
	for v := range me.Iter {
		if me.cmp(me.keyFunc(v), key) == 0 {
			scanned++
		}
	}
	panicif.NotEq(seeked, scanned)
}

func values[T, K any](entries iter.Seq[entry[T, K]]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := range entries {
			if !yield(e.value) {
				return
			}
		}
	}
}

var _ mergejoin.GroupReplayer[int, int] = (*Table[int, int])(nil)
