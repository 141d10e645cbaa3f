package mergejoin

import (
	"log/slog"
)

// Counters for a single join. MaxGroupBuffered is the peak number of right elements held at once,
// which bounds the join's extra memory.
type Stats struct {
	LeftConsumed     int64
	RightConsumed    int64
	Groups           int64
	Emitted          int64
	MaxGroupBuffered int64
}

func (me Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("left", me.LeftConsumed),
		slog.Int64("right", me.RightConsumed),
		slog.Int64("groups", me.Groups),
		slog.Int64("emitted", me.Emitted),
		slog.Int64("maxGroupBuffered", me.MaxGroupBuffered),
	)
}

var _ slog.LogValuer = Stats{}
