package logging

import (
	"context"
	"log/slog"
)

// Logger is the sink awslc reports events to. Arguments follow slog
// conventions: alternating key/value pairs or slog.Attr values.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}

// New adapts a slog logger. A nil logger resolves to slog.Default at each
// call, so later slog.SetDefault calls take effect.
func New(logger *slog.Logger) Logger { return slogSink{logger: logger} }

type slogSink struct {
	logger *slog.Logger
}

func (s slogSink) target() *slog.Logger {
	if s.logger == nil {
		return slog.Default()
	}
	return s.logger
}

func (s slogSink) log(ctx context.Context, level slog.Level, msg string, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.target().Log(ctx, level, msg, args...)
}

func (s slogSink) Debug(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelDebug, msg, args)
}

func (s slogSink) Info(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelInfo, msg, args)
}

func (s slogSink) Warn(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelWarn, msg, args)
}

func (s slogSink) Error(ctx context.Context, msg string, args ...any) {
	s.log(ctx, slog.LevelError, msg, args)
}

func (s slogSink) With(args ...any) Logger {
	return slogSink{logger: s.target().With(args...)}
}

// Discard returns a Logger that drops everything. It is the library default.
func Discard() Logger { return discard{} }

type discard struct{}

func (discard) Debug(context.Context, string, ...any) {}
func (discard) Info(context.Context, string, ...any)  {}
func (discard) Warn(context.Context, string, ...any)  {}
func (discard) Error(context.Context, string, ...any) {}
func (d discard) With(...any) Logger                  { return d }
