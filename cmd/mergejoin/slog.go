package main

import (
	"context"
	"io"
	"log/slog"
)

// Drops records below minLevel before they reach inner.
type slogLevelFilterHandler struct {
	minLevel slog.Level
	inner    slog.Handler
}

// A text handler on w showing records at minLevel and above.
func newStderrHandler(w io.Writer, minLevel slog.Level) slog.Handler {
	return slogLevelFilterHandler{
		minLevel: minLevel,
		inner: slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}),
	}
}

func (me slogLevelFilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= me.minLevel && me.inner.Enabled(ctx, level)
}

func (me slogLevelFilterHandler) Handle(ctx context.Context, record slog.Record) error {
	return me.inner.Handle(ctx, record)
}

func (me slogLevelFilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return slogLevelFilterHandler{me.minLevel, me.inner.WithAttrs(attrs)}
}

func (me slogLevelFilterHandler) WithGroup(name string) slog.Handler {
	return slogLevelFilterHandler{me.minLevel, me.inner.WithGroup(name)}
}

var _ slog.Handler = slogLevelFilterHandler{}
