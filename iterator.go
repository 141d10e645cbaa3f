package mergejoin

import (
	"cmp"
	"iter"

	"github.com/anacrolix/log"
	"github.com/pkg/errors"
)

// The pull form of a join. Call Next until it returns false, then check Err. Close abandons the
// join early. Not safe for concurrent use.
type Iterator[L, R, K, Res any] struct {
	left    *cursor[L, K]
	right   *cursor[R, K]
	cmp     CompareFunc[K]
	combine Combiner[L, R, Res]
	opts    options
	logger  log.Logger

	// The right elements sharing groupKey, replayed for each left element with that key.
	group    []R
	groupKey K
	inGroup  bool
	groupIdx int

	value   Res
	err     error
	started bool
	closed  bool
	stats   Stats
}

// Joins left and right, which must be ordered by their keys under cmp. Nothing is read from either
// side until the first call to Next.
func Join[L, R, K, Res any](
	left Joinable[L], leftKey KeyFunc[L, K],
	right Joinable[R], rightKey KeyFunc[R, K],
	cmp CompareFunc[K],
	combine Combiner[L, R, Res],
	opts ...Option,
) *Iterator[L, R, K, Res] {
	o := applyOptions(opts)
	ret := &Iterator[L, R, K, Res]{
		left:    newCursor(Left, left, leftKey, cmp, o.checkOrder),
		right:   newCursor(Right, right, rightKey, cmp, o.checkOrder),
		cmp:     cmp,
		combine: combine,
		opts:    o,
		logger:  o.logger,
	}
	if o.groupCapacity > 0 {
		ret.group = make([]R, 0, o.groupCapacity)
	}
	joinsStarted.Add(1)
	return ret
}

// Join with keys compared by cmp.Compare.
func JoinOrdered[L, R any, K cmp.Ordered, Res any](
	left Joinable[L], leftKey KeyFunc[L, K],
	right Joinable[R], rightKey KeyFunc[R, K],
	combine Combiner[L, R, Res],
	opts ...Option,
) *Iterator[L, R, K, Res] {
	return Join(left, leftKey, right, rightKey, orderedCompare[K](), combine, opts...)
}

// Join producing the matched pairs themselves.
func JoinPairs[L, R any, K cmp.Ordered](
	left Joinable[L], leftKey KeyFunc[L, K],
	right Joinable[R], rightKey KeyFunc[R, K],
	opts ...Option,
) *Iterator[L, R, K, Pair[L, R]] {
	return JoinOrdered(left, leftKey, right, rightKey, MakePair[L, R], opts...)
}

// Advances to the next result. Returns false when the join is exhausted, has failed, or was
// closed.
func (me *Iterator[L, R, K, Res]) Next() bool {
	if me.closed {
		return false
	}
	if !me.started {
		me.started = true
		if err := me.prime(); err != nil {
			me.fail(err)
			return false
		}
	}
	for {
		if me.inGroup {
			if me.groupIdx < len(me.group) {
				r := me.group[me.groupIdx]
				me.groupIdx++
				res, err := me.combine(me.left.value, r)
				if err != nil {
					me.fail(&CombineError{Err: err})
					return false
				}
				me.value = res
				me.stats.Emitted++
				return true
			}
			// The group is done with the current left element.
			if err := me.advanceLeft(); err != nil {
				me.fail(err)
				return false
			}
			if me.left.ok && me.cmp(me.left.key, me.groupKey) == 0 {
				me.groupIdx = 0
				continue
			}
			me.releaseGroup()
			continue
		}
		if !me.left.ok || !me.right.ok {
			me.finish()
			return false
		}
		var err error
		switch c := me.cmp(me.left.key, me.right.key); {
		case c < 0:
			err = me.advanceLeft()
		case c > 0:
			err = me.advanceRight()
		default:
			err = me.bufferGroup()
		}
		if err != nil {
			me.fail(err)
			return false
		}
	}
}

// The result produced by the last successful call to Next.
func (me *Iterator[L, R, K, Res]) Value() Res {
	return me.value
}

// The error that stopped the join, if any. Abandoning the join with Close isn't an error.
func (me *Iterator[L, R, K, Res]) Err() error {
	return me.err
}

func (me *Iterator[L, R, K, Res]) Stats() Stats {
	return me.stats
}

// Abandons the join, releasing both sequences and the group buffer. Idempotent.
func (me *Iterator[L, R, K, Res]) Close() {
	if me.closed {
		return
	}
	me.release()
	joinsAbandoned.Add(1)
	me.logger.Levelf(log.Debug, "join abandoned: %+v", me.stats)
}

// Ranges over the remaining results. The join is closed when the loop ends, including by break.
// A failure is yielded once, last, with a zero result.
func (me *Iterator[L, R, K, Res]) All() iter.Seq2[Res, error] {
	return func(yield func(Res, error) bool) {
		defer me.Close()
		for me.Next() {
			if !yield(me.Value(), nil) {
				return
			}
		}
		if err := me.Err(); err != nil {
			var zero Res
			yield(zero, err)
		}
	}
}

// Loads the lookahead for both sides. The right side is left untouched if the left is empty.
func (me *Iterator[L, R, K, Res]) prime() error {
	if err := me.advanceLeft(); err != nil {
		return err
	}
	if !me.left.ok {
		return nil
	}
	return me.advanceRight()
}

func (me *Iterator[L, R, K, Res]) advanceLeft() error {
	err := me.left.advance()
	me.stats.LeftConsumed = me.left.consumed
	return err
}

func (me *Iterator[L, R, K, Res]) advanceRight() error {
	err := me.right.advance()
	me.stats.RightConsumed = me.right.consumed
	return err
}

// Collects every right element with the current right key. On return the right lookahead is past
// the group.
func (me *Iterator[L, R, K, Res]) bufferGroup() error {
	me.groupKey = me.right.key
	me.group = me.group[:0]
	for me.right.ok && me.cmp(me.right.key, me.groupKey) == 0 {
		if limit := me.opts.maxGroupSize; limit > 0 && len(me.group) >= limit {
			return errors.Wrapf(ErrGroupTooLarge, "more than %d right elements share a key", limit)
		}
		me.group = append(me.group, me.right.value)
		if err := me.advanceRight(); err != nil {
			return err
		}
	}
	me.stats.Groups++
	me.stats.MaxGroupBuffered = max(me.stats.MaxGroupBuffered, int64(len(me.group)))
	me.inGroup = true
	me.groupIdx = 0
	return nil
}

func (me *Iterator[L, R, K, Res]) releaseGroup() {
	// Drop references so buffered elements can be collected, but keep the capacity.
	clear(me.group)
	me.group = me.group[:0]
	me.inGroup = false
	me.groupIdx = 0
}

func (me *Iterator[L, R, K, Res]) release() {
	me.closed = true
	me.releaseGroup()
	me.left.close()
	me.right.close()
	var zero Res
	me.value = zero
	resultsEmitted.Add(me.stats.Emitted)
	me.opts.reportStats(me.stats)
}

func (me *Iterator[L, R, K, Res]) finish() {
	me.release()
	joinsCompleted.Add(1)
	me.logger.Levelf(log.Debug, "join completed: %+v", me.stats)
}

func (me *Iterator[L, R, K, Res]) fail(err error) {
	me.err = err
	me.release()
	joinsFailed.Add(1)
	me.logger.Levelf(log.Debug, "join failed after %v results: %v", me.stats.Emitted, err)
}
