package typedRoaring

import (
	"golang.org/x/exp/constraints"
)

// Types that convert losslessly to a roaring bitmap's uint32 values. Values outside [0, 2^32) are
// truncated by the conversion, so callers must keep within range.
type BitConstraint interface {
	constraints.Integer
}
