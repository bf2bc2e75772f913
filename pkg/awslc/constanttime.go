package awslc

import "github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"

// VerifySlicesAreEqual compares a and b in time independent of their
// contents. Slices of different lengths are unequal; the length itself is
// not secret.
func VerifySlicesAreEqual(a, b []byte) error {
	const op = "VerifySlicesAreEqual"
	if err := Begin(op); err != nil {
		return err
	}
	if backend.MemCmp(a, b) != 0 {
		return Fail(op, ErrUnspecified)
	}
	return nil
}
