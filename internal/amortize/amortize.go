package amortize

import (
	"sync/atomic"
)

// Returns true less and less often: on the 1st, 2nd, 4th, 8th... call. Spreads expensive
// consistency checks over the life of a structure without making them vanish entirely.
type Atomic struct {
	calls atomic.Int64
	shift atomic.Int32
}

func (me *Atomic) Try() bool {
	m := me.calls.Add(1)
	shift := me.shift.Load()
	if m >= 1<<shift {
		return me.shift.CompareAndSwap(shift, shift+1)
	}
	return false
}

