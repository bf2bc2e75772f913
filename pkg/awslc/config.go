package awslc

import (
	"context"
	"sync/atomic"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/logging"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/metrics"
)

// Config holds the process-wide knobs of the library.
type Config struct {
	// Logger receives initialization and unclassified-failure events. Nil
	// discards them.
	Logger logging.Logger

	// Metrics records operation and error counters. Nil records nothing.
	Metrics *metrics.Metrics

	// RequireFIPS makes initialization fail unless the engine runs in FIPS
	// mode.
	RequireFIPS bool

	// LockSecrets keeps private key material of keys created afterwards in
	// mlock'ed memory (portable engine only). Each live key then needs a
	// page of RLIMIT_MEMLOCK headroom.
	LockSecrets bool
}

type config struct {
	logger      logging.Logger
	metrics     *metrics.Metrics
	requireFIPS bool
}

var current atomic.Pointer[config]

func init() {
	current.Store(&config{logger: logging.Discard()})
}

func settings() *config { return current.Load() }

// Configure installs cfg. It may be called at any time; RequireFIPS is
// checked immediately when the library is already initialized.
func Configure(cfg Config) error {
	c := &config{
		logger:      cfg.Logger,
		metrics:     cfg.Metrics,
		requireFIPS: cfg.RequireFIPS,
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	if cfg.RequireFIPS && State() == StateReady && !backend.FIPSMode() {
		return &Error{Op: "Configure", Err: ErrUnsupported}
	}
	backend.SetLockedSecrets(cfg.LockSecrets)
	current.Store(c)
	if State() == StateReady {
		c.metrics.SetBuildInfo(Version, backend.Version(), backend.FIPSMode())
	}
	c.logger.Debug(context.Background(), "awslc configured",
		"require_fips", cfg.RequireFIPS, "lock_secrets", cfg.LockSecrets)
	return nil
}
