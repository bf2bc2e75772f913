// Package commands implements the awslc-go subcommands.
package commands

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/hsiuhsiu/awslc-go/internal/cliconfig"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/metrics"
)

// Env is shared by every command. The root command fills it in before a
// subcommand runs.
type Env struct {
	Config  *cliconfig.File
	Logger  *logrus.Logger
	Metrics *metrics.Metrics
}

// NewEnv returns an Env with the default configuration, logging to w.
func NewEnv(w io.Writer) *Env {
	cfg := cliconfig.Default()
	l, _ := cfg.NewLogger(w)
	return &Env{Config: cfg, Logger: l}
}

func (e *Env) log() *logrus.Logger {
	if e == nil || e.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return e.Logger
}
