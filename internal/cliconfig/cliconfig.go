// Package cliconfig loads the awslc-go command's YAML configuration.
package cliconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/logging"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/metrics"
)

// File is the on-disk configuration.
//
//	log:
//	  level: info
//	  format: text
//	require_fips: false
//	lock_secrets: false
//	metrics:
//	  listen: 127.0.0.1:9464
type File struct {
	Log         LogConfig     `yaml:"log"`
	RequireFIPS bool          `yaml:"require_fips"`
	LockSecrets bool          `yaml:"lock_secrets"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// LogConfig selects the log level and format. Format "slog" keeps the
// command's own lines in logrus JSON and routes library events through
// log/slog's JSON handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Default is the configuration used when no file exists.
func Default() *File {
	return &File{
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path on top of Default. A missing file yields Default when
// optional is set. Unknown keys are errors.
func Load(path string, optional bool) (*File, error) {
	f := Default()
	absPath, err := SecurePath(path)
	if err != nil {
		return nil, fmt.Errorf("secure path: %w", err)
	}
	data, err := os.ReadFile(absPath) // #nosec G304 -- absPath validated by SecurePath
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return f, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshal YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks field values without side effects.
func (f *File) Validate() error {
	if f == nil {
		return errors.New("nil config")
	}
	if _, err := logrus.ParseLevel(f.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch f.Log.Format {
	case "text", "json", "slog":
	default:
		return fmt.Errorf("log.format: %q is not text, json or slog", f.Log.Format)
	}
	if f.Metrics.Listen != "" {
		if _, _, err := net.SplitHostPort(f.Metrics.Listen); err != nil {
			return fmt.Errorf("metrics.listen: invalid address %q: %v", f.Metrics.Listen, err)
		}
	}
	return nil
}

// NewLogger builds the logrus logger described by f, writing to w.
func (f *File) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(f.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if f.Log.Format == "json" || f.Log.Format == "slog" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	return l, nil
}

// LibraryConfig builds the awslc.Config for f. m may be nil. The library
// logger shares l's output and level.
func (f *File) LibraryConfig(l *logrus.Logger, m *metrics.Metrics) awslc.Config {
	logger := logging.NewLogrus(l)
	if f.Log.Format == "slog" {
		h := slog.NewJSONHandler(l.Out, &slog.HandlerOptions{Level: slogLevel(l.GetLevel())})
		logger = logging.New(slog.New(h))
	}
	return awslc.Config{
		Logger:      logger,
		Metrics:     m,
		RequireFIPS: f.RequireFIPS,
		LockSecrets: f.LockSecrets,
	}
}

func slogLevel(l logrus.Level) slog.Level {
	switch {
	case l >= logrus.DebugLevel:
		return slog.LevelDebug
	case l == logrus.InfoLevel:
		return slog.LevelInfo
	case l == logrus.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// SecurePath validates that a file path doesn't escape the working directory.
// This prevents path traversal when loading user-specified files.
func SecurePath(path string) (string, error) {
	clean := filepath.Clean(path)
	absPath, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	base, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes working directory", path)
	}
	return absPath, nil
}
