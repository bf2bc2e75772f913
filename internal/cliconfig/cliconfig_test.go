package cliconfig

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yml := "log:\n  level: debug\n  format: json\nrequire_fips: true\nlock_secrets: true\nmetrics:\n  listen: 127.0.0.1:9464\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "awslc.yaml"), []byte(yml), 0o600))

	f, err := Load("awslc.yaml", false)
	require.NoError(t, err)
	assert.Equal(t, "debug", f.Log.Level)
	assert.Equal(t, "json", f.Log.Format)
	assert.True(t, f.RequireFIPS)
	assert.True(t, f.LockSecrets)
	assert.Equal(t, "127.0.0.1:9464", f.Metrics.Listen)

	cfg := f.LibraryConfig(logrus.New(), nil)
	assert.True(t, cfg.RequireFIPS)
	assert.True(t, cfg.LockSecrets)
	assert.NotNil(t, cfg.Logger)
}

func TestLoadMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	f, err := Load("absent.yaml", true)
	require.NoError(t, err)
	assert.Equal(t, Default(), f)

	_, err = Load("absent.yaml", false)
	assert.Error(t, err)
}

func TestLoadRejects(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	cases := map[string]string{
		"unknown key":  "colour: blue\n",
		"bad level":    "log:\n  level: loud\n",
		"bad format":   "log:\n  format: xml\n",
		"bad listen":   "metrics:\n  listen: nowhere\n",
		"not yaml map": "- a\n- b\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := Load("c.yaml", false)
			assert.Error(t, err)
		})
	}
}

func TestEmptyFileIsDefault(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.yaml"), nil, 0o600))
	f, err := Load("empty.yaml", false)
	require.NoError(t, err)
	assert.Equal(t, Default(), f)
}

func TestSecurePath(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := SecurePath("../outside.yaml")
	assert.Error(t, err)
	p, err := SecurePath("inside/awslc.yaml")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
}

func TestNewLogger(t *testing.T) {
	f := Default()
	f.Log.Format = "json"
	var buf bytes.Buffer
	l, err := f.NewLogger(&buf)
	require.NoError(t, err)
	l.Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
	l.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSlogFormat(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "awslc.yaml"), []byte("log:\n  level: warn\n  format: slog\n"), 0o600))
	f, err := Load("awslc.yaml", false)
	require.NoError(t, err)

	var buf bytes.Buffer
	l, err := f.NewLogger(&buf)
	require.NoError(t, err)
	cfg := f.LibraryConfig(l, nil)

	cfg.Logger.Info(context.Background(), "below level")
	cfg.Logger.Warn(context.Background(), "unclassified failure", "op", "digest.Digest")
	out := buf.String()
	assert.NotContains(t, out, "below level")
	assert.Contains(t, out, `"level":"WARN","msg":"unclassified failure","op":"digest.Digest"`)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, slogLevel(logrus.TraceLevel))
	assert.Equal(t, slog.LevelDebug, slogLevel(logrus.DebugLevel))
	assert.Equal(t, slog.LevelInfo, slogLevel(logrus.InfoLevel))
	assert.Equal(t, slog.LevelWarn, slogLevel(logrus.WarnLevel))
	assert.Equal(t, slog.LevelError, slogLevel(logrus.ErrorLevel))
	assert.Equal(t, slog.LevelError, slogLevel(logrus.PanicLevel))
}
