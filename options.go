package mergejoin

import (
	"github.com/anacrolix/log"
)

type options struct {
	checkOrder    bool
	maxGroupSize  int
	groupCapacity int
	logger        log.Logger
	stats         *Stats
}

func defaultOptions() options {
	return options{
		checkOrder: defaultCheckOrder,
		logger:     log.Default.WithNames("mergejoin"),
	}
}

type Option func(*options)

func applyOptions(opts []Option) options {
	ret := defaultOptions()
	for _, o := range opts {
		o(&ret)
	}
	return ret
}

// Verify that keys on each side never decrease, failing the join with an *OrderError if they do.
// Costs one comparison per element.
func WithOrderCheck(check bool) Option {
	return func(opts *options) {
		opts.checkOrder = check
	}
}

// Fail the join with ErrGroupTooLarge if more than n right elements share a key. Zero means no
// limit.
func WithMaxGroupSize(n int) Option {
	return func(opts *options) {
		opts.maxGroupSize = n
	}
}

// Initial capacity of the right group buffer.
func WithGroupCapacity(n int) Option {
	return func(opts *options) {
		opts.groupCapacity = n
	}
}

func WithLogger(logger log.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// Stores the join's final Stats in s when it ends, however it ends. For the push forms, which
// have no Iterator to ask.
func WithStats(s *Stats) Option {
	return func(opts *options) {
		opts.stats = s
	}
}

func (me *options) reportStats(s Stats) {
	if me.stats != nil {
		*me.stats = s
	}
}
