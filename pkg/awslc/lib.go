package awslc

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

// LibraryState is the engine lifecycle. Ready and Failed are terminal.
type LibraryState int32

const (
	StateUninitialized LibraryState = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s LibraryState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateInitializing:
		return "Initializing"
	case StateReady:
		return "Ready"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("LibraryState(%d)", int32(s))
	}
}

// libraryGuard runs engine setup exactly once. Concurrent callers block in
// once.Do until the first finishes.
type libraryGuard struct {
	once  sync.Once
	state atomic.Int32
	err   error
	setup func() backend.Status

	// mu serializes service indicator checks.
	mu backend.CryptoMutex
}

func newGuard(setup func() backend.Status) *libraryGuard {
	return &libraryGuard{setup: setup}
}

var guard = newGuard(backend.LibraryInit)

func (g *libraryGuard) ensure() error {
	if LibraryState(g.state.Load()) == StateReady {
		return nil
	}
	g.once.Do(g.run)
	return g.err
}

func (g *libraryGuard) run() {
	g.state.Store(int32(StateInitializing))
	cfg := settings()
	ctx := context.Background()

	if st := g.setup(); !st.OK() {
		g.fail(ctx, fmt.Errorf("%w: engine setup (lib %d, reason %d)", ErrLibraryInit, st.Lib(), st.Reason()))
		return
	}
	backend.MutexInit(&g.mu)
	if cfg.requireFIPS && !backend.FIPSMode() {
		g.fail(ctx, fmt.Errorf("%w: engine is not in FIPS mode", ErrLibraryInit))
		return
	}

	cfg.metrics.SetBuildInfo(Version, backend.Version(), backend.FIPSMode())
	cfg.logger.Info(ctx, "awslc ready", "engine", backend.Version(), "fips", backend.FIPSMode())
	g.state.Store(int32(StateReady))
}

func (g *libraryGuard) fail(ctx context.Context, err error) {
	g.err = err
	g.state.Store(int32(StateFailed))
	settings().logger.Error(ctx, "awslc initialization failed", "error", err)
}

// Init initializes the engine now instead of on first use. It is safe to
// call repeatedly and from many goroutines; a failure is returned to every
// caller for the life of the process.
func Init() error {
	if err := guard.ensure(); err != nil {
		return &Error{Op: "Init", Err: err}
	}
	return nil
}

// Ensure is called by every operation before it reaches the engine.
func Ensure() error { return guard.ensure() }

// Begin marks the start of op: it ensures the engine is ready and counts
// the operation. Subpackages call it first.
func Begin(op string) error {
	if err := guard.ensure(); err != nil {
		return Fail(op, err)
	}
	m := settings().metrics
	if m != nil {
		m.IncOp(op)
		m.SetLiveHandles(backend.LiveHandles())
	}
	return nil
}

// State reports the engine lifecycle state.
func State() LibraryState { return LibraryState(guard.state.Load()) }

// FIPSMode reports whether the engine runs in FIPS mode.
func FIPSMode() bool { return backend.FIPSMode() }
