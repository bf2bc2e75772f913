// Package digest computes SHA-1, SHA-2 and SHA-3 digests in the engine.
package digest

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
)

// MaxOutputLen is the largest digest any Algorithm produces.
const MaxOutputLen = 64

// Algorithm is a digest function. The set is closed: use the package
// variables.
type Algorithm struct {
	id   backend.DigestID
	name string
}

var (
	// SHA1_FOR_LEGACY_USE_ONLY is SHA-1. Do not use it for new designs.
	SHA1_FOR_LEGACY_USE_ONLY = &Algorithm{backend.DigestSHA1, "SHA-1"}
	SHA224                   = &Algorithm{backend.DigestSHA224, "SHA-224"}
	SHA256                   = &Algorithm{backend.DigestSHA256, "SHA-256"}
	SHA384                   = &Algorithm{backend.DigestSHA384, "SHA-384"}
	SHA512                   = &Algorithm{backend.DigestSHA512, "SHA-512"}
	SHA512_256               = &Algorithm{backend.DigestSHA512_256, "SHA-512/256"}
	SHA3_256                 = &Algorithm{backend.DigestSHA3_256, "SHA3-256"}
	SHA3_384                 = &Algorithm{backend.DigestSHA3_384, "SHA3-384"}
	SHA3_512                 = &Algorithm{backend.DigestSHA3_512, "SHA3-512"}
)

func (a *Algorithm) String() string { return a.name }

// OutputLen is the digest length in bytes.
func (a *Algorithm) OutputLen() int { return backend.DigestSize(a.id) }

// BlockLen is the internal block length in bytes.
func (a *Algorithm) BlockLen() int { return backend.DigestBlockSize(a.id) }

// Output is a finished digest.
type Output struct {
	alg *Algorithm
	buf [MaxOutputLen]byte
}

// Algorithm reports which function produced o.
func (o Output) Algorithm() *Algorithm { return o.alg }

// Bytes returns the digest value.
func (o Output) Bytes() []byte {
	if o.alg == nil {
		return nil
	}
	n := o.alg.OutputLen()
	return o.buf[:n:n]
}

// Digest hashes data in one call.
func Digest(alg *Algorithm, data []byte) (Output, error) {
	const op = "digest.Digest"
	if err := awslc.Begin(op); err != nil {
		return Output{}, err
	}
	if alg == nil {
		return Output{}, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	out := Output{alg: alg}
	if err := awslc.RemapStatus(op, backend.DigestOneShot(alg.id, data, out.buf[:])); err != nil {
		return Output{}, err
	}
	return out, nil
}

// Context hashes data incrementally. It is not safe for concurrent use.
// Finish or Close must be called to release the engine context.
type Context struct {
	alg   *Algorithm
	owner *resource.Owner
}

// NewContext starts a digest.
func NewContext(alg *Algorithm) (*Context, error) {
	const op = "digest.NewContext"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.DigestNew(alg.id)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return &Context{alg: alg, owner: resource.New(h, backend.DigestFree)}, nil
}

// Algorithm reports the context's digest function.
func (c *Context) Algorithm() *Algorithm { return c.alg }

// Update absorbs data.
func (c *Context) Update(data []byte) error {
	const op = "digest.Context.Update"
	return c.owner.Borrow(op, func(h backend.Handle) error {
		return awslc.RemapStatus(op, backend.DigestUpdate(h, data))
	})
}

// Write implements io.Writer.
func (c *Context) Write(p []byte) (int, error) {
	if err := c.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Clone returns an independent copy of the current state.
func (c *Context) Clone() (*Context, error) {
	const op = "digest.Context.Clone"
	return resource.With(c.owner, op, func(h backend.Handle) (*Context, error) {
		cp, st := backend.DigestCopy(h)
		if err := awslc.RemapStatus(op, st); err != nil {
			return nil, err
		}
		return &Context{alg: c.alg, owner: resource.New(cp, backend.DigestFree)}, nil
	})
}

// Finish returns the digest and releases the context.
func (c *Context) Finish() (Output, error) {
	const op = "digest.Context.Finish"
	out := Output{alg: c.alg}
	err := c.owner.Borrow(op, func(h backend.Handle) error {
		return awslc.RemapStatus(op, backend.DigestFinal(h, out.buf[:]))
	})
	c.owner.Release()
	if err != nil {
		return Output{}, err
	}
	return out, nil
}

// Close releases the context without finishing it. It is safe to call
// after Finish.
func (c *Context) Close() { c.owner.Release() }
