package mergejoin

import (
	"iter"

	"github.com/anacrolix/log"
	"github.com/pkg/errors"
)

// The push form of Join. Runs the join to completion, calling yield once per result in join order,
// and stops early without error if yield returns false. Returns the error that aborted the join,
// if any.
func Each[L, R, K, Res any](
	left Joinable[L], leftKey KeyFunc[L, K],
	right Joinable[R], rightKey KeyFunc[R, K],
	cmp CompareFunc[K],
	combine Combiner[L, R, Res],
	yield func(Res) bool,
	opts ...Option,
) error {
	it := Join(left, leftKey, right, rightKey, cmp, combine, opts...)
	defer it.Close()
	for it.Next() {
		if !yield(it.Value()) {
			return nil
		}
	}
	return it.Err()
}

// A lazily started join for use with range. The join begins when iteration does, and a failure is
// yielded once, last, with a zero result.
func All[L, R, K, Res any](
	left Joinable[L], leftKey KeyFunc[L, K],
	right Joinable[R], rightKey KeyFunc[R, K],
	cmp CompareFunc[K],
	combine Combiner[L, R, Res],
	opts ...Option,
) iter.Seq2[Res, error] {
	return func(yield func(Res, error) bool) {
		Join(left, leftKey, right, rightKey, cmp, combine, opts...).All()(yield)
	}
}

// The push form against a collection that can replay key groups. Each left element is matched
// with right.Group(leftKey(l)), so nothing is buffered. Matching and key order are entirely the
// collection's: the results are those of Each with right's own key and right.CompareKeys.
func Replay[L, R, K, Res any](
	left Joinable[L], leftKey KeyFunc[L, K],
	right GroupReplayer[R, K],
	combine Combiner[L, R, Res],
	yield func(Res) bool,
	opts ...Option,
) (err error) {
	o := applyOptions(opts)
	joinsStarted.Add(1)
	var (
		stats   Stats
		stopped bool
	)
	defer func() {
		o.reportStats(stats)
		resultsEmitted.Add(stats.Emitted)
		switch {
		case err != nil:
			joinsFailed.Add(1)
			o.logger.Levelf(log.Debug, "replay join failed after %v results: %v", stats.Emitted, err)
		case stopped:
			joinsAbandoned.Add(1)
			o.logger.Levelf(log.Debug, "replay join abandoned: %+v", stats)
		default:
			joinsCompleted.Add(1)
			o.logger.Levelf(log.Debug, "replay join completed: %+v", stats)
		}
	}()
	cmp := right.CompareKeys
	lc := newCursor(Left, left, leftKey, cmp, o.checkOrder)
	defer lc.close()
	var (
		// The last key looked up, and whether the collection had anything for it. Saves looking up
		// again for runs of left elements that have no match.
		looked    bool
		lastKey   K
		lastEmpty bool
	)
	for {
		err = lc.advance()
		stats.LeftConsumed = lc.consumed
		if err != nil || !lc.ok {
			return
		}
		sameKey := looked && cmp(lc.key, lastKey) == 0
		if sameKey && lastEmpty {
			continue
		}
		var groupLen int64
		for r, rErr := range right.Group(lc.key) {
			if rErr != nil {
				return &UpstreamError{Side: Right, Err: rErr}
			}
			groupLen++
			stats.RightConsumed++
			if limit := o.maxGroupSize; limit > 0 && groupLen > int64(limit) {
				return errors.Wrapf(ErrGroupTooLarge, "more than %d right elements share a key", limit)
			}
			res, cErr := combine(lc.value, r)
			if cErr != nil {
				return &CombineError{Err: cErr}
			}
			stats.Emitted++
			if !yield(res) {
				stopped = true
				return nil
			}
		}
		if !sameKey && groupLen != 0 {
			stats.Groups++
		}
		looked = true
		lastKey = lc.key
		lastEmpty = groupLen == 0
	}
}
