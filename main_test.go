package mergejoin

import (
	"iter"
	"log"
)

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

type kv struct {
	k int
	v string
}

func kvKey(e kv) int {
	return e.k
}

func kvValues(l, r kv) [2]string {
	return [2]string{l.v, r.v}
}

// Records how a sequence was consumed, so tests can check it was released.
type trackedSeq[T any] struct {
	values   []T
	failAt   int
	failErr  error
	started  bool
	finished bool
	pulled   int
}

func newTracked[T any](values ...T) *trackedSeq[T] {
	return &trackedSeq[T]{values: values, failAt: -1}
}

// Fails instead of producing the element at index i.
func (me *trackedSeq[T]) failingAt(i int, err error) *trackedSeq[T] {
	me.failAt = i
	me.failErr = err
	return me
}

func (me *trackedSeq[T]) Elements() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		me.started = true
		defer func() { me.finished = true }()
		for i, v := range me.values {
			if i == me.failAt {
				var zero T
				yield(zero, me.failErr)
				return
			}
			me.pulled++
			if !yield(v, nil) {
				return
			}
		}
	}
}

func (me *trackedSeq[T]) released() bool {
	return !me.started || me.finished
}
