package logging

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sirupsen/logrus"
)

// NewLogrus adapts a logrus logger. Passing nil binds to the logrus standard
// logger. Arguments follow slog conventions: alternating key/value pairs or
// slog.Attr values.
func NewLogrus(logger *logrus.Logger) Logger {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &logrusLogger{entry: logrus.NewEntry(logger)}
}

type logrusLogger struct {
	entry *logrus.Entry
}

func (l *logrusLogger) log(ctx context.Context, level logrus.Level, msg string, args []any) {
	e := l.entry
	if ctx != nil {
		e = e.WithContext(ctx)
	}
	if len(args) > 0 {
		e = e.WithFields(fields(args))
	}
	e.Log(level, msg)
}

func (l *logrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logrus.DebugLevel, msg, args)
}

func (l *logrusLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logrus.InfoLevel, msg, args)
}

func (l *logrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logrus.WarnLevel, msg, args)
}

func (l *logrusLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, logrus.ErrorLevel, msg, args)
}

func (l *logrusLogger) With(args ...any) Logger {
	return &logrusLogger{entry: l.entry.WithFields(fields(args))}
}

// fields converts slog-style arguments into logrus fields. A dangling key
// is kept under "!BADKEY", as slog does.
func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2)
	for len(args) > 0 {
		switch a := args[0].(type) {
		case slog.Attr:
			f[a.Key] = a.Value.Any()
			args = args[1:]
		case string:
			if len(args) == 1 {
				f["!BADKEY"] = a
				return f
			}
			f[a] = args[1]
			args = args[2:]
		default:
			f["!BADKEY"] = fmt.Sprint(a)
			args = args[1:]
		}
	}
	return f
}
