package awslc

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

func TestGuardRunsSetupOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	g := newGuard(func() backend.Status {
		calls.Add(1)
		<-release
		return backend.StatusOK
	})

	const n = 32
	var (
		wg   sync.WaitGroup
		errs = make([]error, n)
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = g.ensure()
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateReady, LibraryState(g.state.Load()))
	for _, err := range errs {
		assert.NoError(t, err)
	}
	require.NoError(t, g.ensure())
	assert.Equal(t, int32(1), calls.Load())
}

func TestGuardFailureIsTerminal(t *testing.T) {
	var calls atomic.Int32
	g := newGuard(func() backend.Status {
		calls.Add(1)
		return backend.Pack(backend.LibCrypto, backend.ReasonInternalError)
	})

	for range 3 {
		err := g.ensure()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrLibraryInit))
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, StateFailed, LibraryState(g.state.Load()))
}

func TestInit(t *testing.T) {
	require.NoError(t, Init())
	assert.Equal(t, StateReady, State())
	assert.NotEmpty(t, EngineVersion())
	assert.NotEmpty(t, WrapperVersion())
}

func TestLibraryStateString(t *testing.T) {
	tests := []struct {
		state LibraryState
		want  string
	}{
		{StateUninitialized, "Uninitialized"},
		{StateInitializing, "Initializing"},
		{StateReady, "Ready"},
		{StateFailed, "Failed"},
		{LibraryState(9), "LibraryState(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}
