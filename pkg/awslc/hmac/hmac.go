// Package hmac computes and verifies HMAC tags.
package hmac

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/digest"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// Algorithm is an HMAC construction over a digest.
type Algorithm struct {
	id     backend.DigestID
	digest *digest.Algorithm
}

var (
	// HMAC_SHA1_FOR_LEGACY_USE_ONLY is HMAC-SHA1. Do not use it for new
	// designs.
	HMAC_SHA1_FOR_LEGACY_USE_ONLY = &Algorithm{backend.DigestSHA1, digest.SHA1_FOR_LEGACY_USE_ONLY}
	HMAC_SHA224                   = &Algorithm{backend.DigestSHA224, digest.SHA224}
	HMAC_SHA256                   = &Algorithm{backend.DigestSHA256, digest.SHA256}
	HMAC_SHA384                   = &Algorithm{backend.DigestSHA384, digest.SHA384}
	HMAC_SHA512                   = &Algorithm{backend.DigestSHA512, digest.SHA512}
)

// Digest returns the underlying digest algorithm.
func (a *Algorithm) Digest() *digest.Algorithm { return a.digest }

func (a *Algorithm) String() string { return "HMAC-" + a.digest.String() }

// Tag is an HMAC output.
type Tag struct {
	buf [digest.MaxOutputLen]byte
	n   int
}

// Bytes returns the tag value.
func (t Tag) Bytes() []byte { return t.buf[:t.n:t.n] }

// Key is a keyed HMAC state. Sign and Verify may be called concurrently.
// Close releases the engine state and wipes the key.
type Key struct {
	alg   *Algorithm
	owner *resource.Owner
}

// NewKey keys alg with keyValue. Any key length is accepted, as in RFC 2104.
func NewKey(alg *Algorithm, keyValue []byte) (*Key, error) {
	const op = "hmac.NewKey"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.HMACNew(alg.id, keyValue)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return &Key{alg: alg, owner: resource.New(h, backend.HMACFree)}, nil
}

// GenerateKey keys alg with OutputLen random bytes drawn from rng.
func GenerateKey(alg *Algorithm, rng rand.SecureRandom) (*Key, error) {
	if alg == nil || rng == nil {
		return nil, awslc.Fail("hmac.GenerateKey", awslc.ErrInvalidInput)
	}
	kv := make([]byte, alg.digest.OutputLen())
	defer awslc.ZeroizeBytes(kv)
	if err := rng.Fill(kv); err != nil {
		return nil, err
	}
	return NewKey(alg, kv)
}

// Algorithm reports the key's algorithm.
func (k *Key) Algorithm() *Algorithm { return k.alg }

// Close releases the key.
func (k *Key) Close() { k.owner.Release() }

func (k *Key) context(op string) (*Context, error) {
	if k == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	return resource.With(k.owner, op, func(h backend.Handle) (*Context, error) {
		cp, st := backend.HMACCopy(h)
		if err := awslc.RemapStatus(op, st); err != nil {
			return nil, err
		}
		return &Context{alg: k.alg, owner: resource.New(cp, backend.HMACFree)}, nil
	})
}

// Sign computes the tag of data.
func Sign(key *Key, data []byte) (Tag, error) {
	const op = "hmac.Sign"
	if err := awslc.Begin(op); err != nil {
		return Tag{}, err
	}
	c, err := key.context(op)
	if err != nil {
		return Tag{}, err
	}
	if err := c.Update(data); err != nil {
		c.Close()
		return Tag{}, err
	}
	return c.Sign()
}

// Verify checks tag against data in constant time.
func Verify(key *Key, data, tag []byte) error {
	const op = "hmac.Verify"
	if key == nil {
		return awslc.Fail(op, awslc.ErrInvalidInput)
	}
	computed, err := Sign(key, data)
	if err != nil {
		return err
	}
	defer awslc.ZeroizeBytes(computed.buf[:])
	if len(tag) != computed.n || backend.MemCmp(computed.Bytes(), tag) != 0 {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	return nil
}

// Context computes a tag incrementally. It is not safe for concurrent use.
type Context struct {
	alg   *Algorithm
	owner *resource.Owner
}

// NewContext starts a tag computation under key.
func NewContext(key *Key) (*Context, error) {
	const op = "hmac.NewContext"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	return key.context(op)
}

// Update absorbs data.
func (c *Context) Update(data []byte) error {
	const op = "hmac.Context.Update"
	return c.owner.Borrow(op, func(h backend.Handle) error {
		return awslc.RemapStatus(op, backend.HMACUpdate(h, data))
	})
}

// Write implements io.Writer.
func (c *Context) Write(p []byte) (int, error) {
	if err := c.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Sign returns the tag and releases the context.
func (c *Context) Sign() (Tag, error) {
	const op = "hmac.Context.Sign"
	t := Tag{n: c.alg.digest.OutputLen()}
	err := c.owner.Borrow(op, func(h backend.Handle) error {
		return awslc.RemapStatus(op, backend.HMACFinal(h, t.buf[:]))
	})
	c.owner.Release()
	if err != nil {
		return Tag{}, err
	}
	return t, nil
}

// Close releases the context without signing.
func (c *Context) Close() { c.owner.Release() }
