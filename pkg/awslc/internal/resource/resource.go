// Package resource owns engine handles on behalf of the algorithm
// packages.
package resource

import (
	"runtime"
	"sync/atomic"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

// Owner holds exactly one handle. Release swaps it to zero before freeing,
// so the free routine runs at most once however often Release is called.
// A finalizer releases owners that were dropped without Release.
type Owner struct {
	h    atomic.Uintptr
	free func(backend.Handle)
}

// New takes ownership of h. h must be non-zero.
func New(h backend.Handle, free func(backend.Handle)) *Owner {
	o := &Owner{free: free}
	o.h.Store(uintptr(h))
	runtime.SetFinalizer(o, (*Owner).Release)
	return o
}

// Borrow runs fn with the handle. The handle must not outlive fn. A
// released owner yields ErrInvalidInput for op.
func (o *Owner) Borrow(op string, fn func(backend.Handle) error) error {
	_, err := With(o, op, func(h backend.Handle) (struct{}, error) {
		return struct{}{}, fn(h)
	})
	return err
}

// With is Borrow for operations that produce a value.
func With[T any](o *Owner, op string, fn func(backend.Handle) (T, error)) (T, error) {
	var zero T
	if o == nil {
		return zero, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h := backend.Handle(o.h.Load())
	if h == 0 {
		return zero, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	v, err := fn(h)
	runtime.KeepAlive(o)
	return v, err
}

// Release frees the handle. Later calls do nothing.
func (o *Owner) Release() {
	if o == nil {
		return
	}
	h := backend.Handle(o.h.Swap(0))
	if h == 0 {
		return
	}
	runtime.SetFinalizer(o, nil)
	o.free(h)
}

// Released reports whether Release has run.
func (o *Owner) Released() bool { return o == nil || o.h.Load() == 0 }
