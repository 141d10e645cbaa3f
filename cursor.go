package mergejoin

import (
	"iter"
)

// One side of a join: a pulled sequence with a single element of lookahead.
type cursor[T, K any] struct {
	side       Side
	elements   iter.Seq2[T, error]
	next       func() (T, error, bool)
	stop       func()
	keyFunc    KeyFunc[T, K]
	cmp        CompareFunc[K]
	checkOrder bool

	// The lookahead. Only meaningful while ok.
	value T
	key   K
	ok    bool
	// Elements pulled so far.
	consumed int64
}

func newCursor[T, K any](
	side Side,
	src Joinable[T],
	keyFunc KeyFunc[T, K],
	cmp CompareFunc[K],
	checkOrder bool,
) *cursor[T, K] {
	return &cursor[T, K]{
		side:       side,
		elements:   src.Elements(),
		keyFunc:    keyFunc,
		cmp:        cmp,
		checkOrder: checkOrder,
	}
}

// Moves the lookahead to the next element. At the end of the sequence ok becomes false and the
// sequence is released.
func (me *cursor[T, K]) advance() error {
	if me.next == nil {
		me.next, me.stop = iter.Pull2(me.elements)
	}
	v, err, ok := me.next()
	if !ok {
		me.clear()
		me.close()
		return nil
	}
	if err != nil {
		me.clear()
		return &UpstreamError{Side: me.side, Err: err}
	}
	key := me.keyFunc(v)
	if me.checkOrder && me.consumed > 0 && me.cmp(key, me.key) < 0 {
		me.clear()
		return &OrderError{Side: me.side, Index: me.consumed}
	}
	me.value = v
	me.key = key
	me.ok = true
	me.consumed++
	return nil
}

func (me *cursor[T, K]) clear() {
	var (
		zeroT T
		zeroK K
	)
	me.value = zeroT
	me.key = zeroK
	me.ok = false
}

// Releases the underlying sequence. Safe to call more than once, and before the first advance.
func (me *cursor[T, K]) close() {
	if me.stop != nil {
		me.stop()
	}
	me.next = func() (_ T, _ error, _ bool) { return }
}
