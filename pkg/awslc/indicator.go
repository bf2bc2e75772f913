package awslc

import (
	"runtime"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

// ServiceIndicator reports whether an operation used only FIPS-approved
// services.
type ServiceIndicator int

const (
	NonApprovedMode ServiceIndicator = iota
	ApprovedMode
)

func (s ServiceIndicator) String() string {
	if s == ApprovedMode {
		return "Approved"
	}
	return "NonApproved"
}

// CheckServiceIndicator runs fn and reports NonApprovedMode if fn failed
// or ran a service the engine does not approve. Calls that run no
// indicator-setting service, such as digest.NewContext or Context.Update,
// stay ApprovedMode.
//
// Only services run by the calling goroutine count. Checks are serialized
// and pinned to one OS thread, since the engine keeps its counter per
// thread. A check must not run inside another check.
func CheckServiceIndicator(fn func() error) (ServiceIndicator, error) {
	if err := Begin("CheckServiceIndicator"); err != nil {
		return NonApprovedMode, err
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	backend.MutexLockWrite(&guard.mu)
	defer backend.MutexUnlockWrite(&guard.mu)

	done := backend.OpenIndicatorScope()
	err := fn()
	_, unapproved := done()
	if err != nil || unapproved {
		return NonApprovedMode, err
	}
	return ApprovedMode, nil
}
