// Package rand draws randomness from the engine.
package rand

import (
	"io"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
)

// SecureRandom fills buffers with cryptographically secure bytes.
type SecureRandom interface {
	Fill(dest []byte) error
}

// SystemRandom is the engine's RNG, seeded from the operating system.
type SystemRandom struct{}

// Fill implements SecureRandom.
func (SystemRandom) Fill(dest []byte) error {
	const op = "rand.SystemRandom.Fill"
	if err := awslc.Begin(op); err != nil {
		return err
	}
	return awslc.RemapStatus(op, backend.RandBytes(dest))
}

// Fill fills dest from SystemRandom.
func Fill(dest []byte) error { return SystemRandom{}.Fill(dest) }

// Generate returns n random bytes from SystemRandom.
func Generate(n int) ([]byte, error) {
	if n < 0 {
		return nil, awslc.Fail("rand.Generate", awslc.ErrInvalidInput)
	}
	b := make([]byte, n)
	if err := Fill(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Reader adapts r to io.Reader.
func Reader(r SecureRandom) io.Reader { return reader{r} }

type reader struct{ r SecureRandom }

func (r reader) Read(p []byte) (int, error) {
	if err := r.r.Fill(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Lengths accepted by NewDRBG.
const (
	EntropyLen            = backend.DRBGEntropyLen
	MaxPersonalizationLen = backend.DRBGEntropyLen
)

// DRBG is a native SP 800-90A CTR_DRBG (AES-256, no derivation function).
// Output is fully determined by the seed, which makes it useful for
// reproducible tests. It is not safe for concurrent use.
type DRBG struct {
	owner *resource.Owner
}

// NewDRBG seeds a generator with EntropyLen bytes of entropy and an
// optional personalization string.
func NewDRBG(entropy, personalization []byte) (*DRBG, error) {
	const op = "rand.NewDRBG"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if len(entropy) != EntropyLen || len(personalization) > MaxPersonalizationLen {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.DRBGNew(entropy, personalization)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return &DRBG{owner: resource.New(h, backend.DRBGFree)}, nil
}

// NewSystemDRBG seeds a generator from SystemRandom.
func NewSystemDRBG(personalization []byte) (*DRBG, error) {
	seed := make([]byte, EntropyLen)
	defer awslc.ZeroizeBytes(seed)
	if err := Fill(seed); err != nil {
		return nil, err
	}
	return NewDRBG(seed, personalization)
}

// Fill implements SecureRandom. Large requests are split to respect the
// engine's per-call limit.
func (d *DRBG) Fill(dest []byte) error {
	const op = "rand.DRBG.Fill"
	return d.owner.Borrow(op, func(h backend.Handle) error {
		for len(dest) > 0 {
			n := min(len(dest), backend.DRBGMaxGenerateLen)
			if err := awslc.RemapStatus(op, backend.DRBGGenerate(h, dest[:n], nil)); err != nil {
				return err
			}
			dest = dest[n:]
		}
		return nil
	})
}

// Reseed mixes in fresh entropy and optional additional input.
func (d *DRBG) Reseed(entropy, additional []byte) error {
	const op = "rand.DRBG.Reseed"
	if len(entropy) != EntropyLen || len(additional) > MaxPersonalizationLen {
		return awslc.Fail(op, awslc.ErrInvalidInput)
	}
	return d.owner.Borrow(op, func(h backend.Handle) error {
		return awslc.RemapStatus(op, backend.DRBGReseed(h, entropy, additional))
	})
}

// Close zeroes and frees the generator state.
func (d *DRBG) Close() { d.owner.Release() }
