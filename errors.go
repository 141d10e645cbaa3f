package mergejoin

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// A sequence's keys decreased. Only reported when order checking is enabled.
	ErrOutOfOrder = errors.New("sequence keys out of order")
	// A right key group exceeded the limit set by WithMaxGroupSize.
	ErrGroupTooLarge = errors.New("key group too large")
)

// A sequence failed to produce its next element.
type UpstreamError struct {
	Side Side
	Err  error
}

func (me *UpstreamError) Error() string {
	return fmt.Sprintf("advancing %v sequence: %v", me.Side, me.Err)
}

func (me *UpstreamError) Unwrap() error {
	return me.Err
}

// The Combiner failed for a matched pair.
type CombineError struct {
	Err error
}

func (me *CombineError) Error() string {
	return fmt.Sprintf("combining matched pair: %v", me.Err)
}

func (me *CombineError) Unwrap() error {
	return me.Err
}

// A key smaller than its predecessor was seen. Index is the 0-based position of the offending
// element in its sequence.
type OrderError struct {
	Side  Side
	Index int64
}

func (me *OrderError) Error() string {
	return fmt.Sprintf("%v sequence element %d: %v", me.Side, me.Index, ErrOutOfOrder)
}

func (me *OrderError) Unwrap() error {
	return ErrOutOfOrder
}
