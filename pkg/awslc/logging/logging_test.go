package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc/logging"
)

func TestSlogLoggerWith(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	l.With("op", "digest").Debug(context.Background(), "engine call", slog.Int("lib", 29))

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "op=digest")
	assert.Contains(t, out, "lib=29")
}

func TestSlogLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	l.Info(context.Background(), "dropped")
	l.Warn(context.Background(), "kept", "n", 1)
	l.Error(nil, "no context") //nolint:staticcheck

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"level":"WARN","msg":"kept","n":1`)
	assert.Contains(t, out, `"level":"ERROR","msg":"no context"`)
}

func TestSlogLoggerFollowsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	l := logging.New(nil)
	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	l.Info(context.Background(), "after SetDefault")
	assert.Contains(t, buf.String(), "after SetDefault")
}

func TestDiscard(t *testing.T) {
	l := logging.Discard()
	require.NotNil(t, l.With("a", 1))
	l.Error(context.Background(), "dropped")
}

func TestLogrusAdapter(t *testing.T) {
	var buf bytes.Buffer
	lr := logrus.New()
	lr.SetOutput(&buf)
	lr.SetLevel(logrus.DebugLevel)
	lr.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	l := logging.NewLogrus(lr).With("component", "awslc")
	l.Warn(context.Background(), "status remapped", "lib", 30, slog.String("alg", "SHA-256"), "dangling")

	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "component=awslc")
	assert.Contains(t, out, "lib=30")
	assert.Contains(t, out, "alg=SHA-256")
	assert.Contains(t, out, "!BADKEY=dangling")
}
