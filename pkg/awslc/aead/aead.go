// Package aead provides authenticated encryption with associated data.
//
// Keys come in three shapes: LessSafeKey takes an explicit nonce per call,
// SealingKey and OpeningKey draw nonces from a NonceSequence, and
// RandomizedNonceKey picks a random nonce for every seal. Open never
// returns partial plaintext: on failure the buffer is zeroed.
package aead

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
)

// NonceLen is the nonce length of every Algorithm.
const NonceLen = 12

// MaxTagLen is the longest tag any Algorithm produces.
const MaxTagLen = 16

// Algorithm is an AEAD cipher suite.
type Algorithm struct {
	id   backend.AEADID
	name string
}

var (
	AES_128_GCM       = &Algorithm{backend.AEADAES128GCM, "AES-128-GCM"}
	AES_192_GCM       = &Algorithm{backend.AEADAES192GCM, "AES-192-GCM"}
	AES_256_GCM       = &Algorithm{backend.AEADAES256GCM, "AES-256-GCM"}
	CHACHA20_POLY1305 = &Algorithm{backend.AEADChaCha20Poly1305, "ChaCha20-Poly1305"}
)

func (a *Algorithm) String() string { return a.name }

// KeyLen is the key length in bytes.
func (a *Algorithm) KeyLen() int { return backend.AEADKeyLen(a.id) }

// NonceLen is the nonce length in bytes.
func (a *Algorithm) NonceLen() int { return backend.AEADNonceLen(a.id) }

// TagLen is the tag length in bytes.
func (a *Algorithm) TagLen() int { return backend.AEADMaxOverhead(a.id) }

// Nonce is a 96-bit nonce. A nonce must never be reused with the same key.
type Nonce [NonceLen]byte

// NonceAssumeUniqueForKey wraps b, which the caller guarantees is unique
// for the key it will be used with.
func NonceAssumeUniqueForKey(b [NonceLen]byte) Nonce { return Nonce(b) }

// NonceFromSlice is NonceAssumeUniqueForKey for slices. Lengths other
// than NonceLen are rejected.
func NonceFromSlice(b []byte) (Nonce, error) {
	if len(b) != NonceLen {
		return Nonce{}, awslc.Fail("aead.NonceFromSlice", awslc.ErrInvalidInput)
	}
	return Nonce(b), nil
}

// Tag is an authentication tag produced by a separate-tag seal.
type Tag struct {
	buf [MaxTagLen]byte
	n   int
}

// Bytes returns the tag value.
func (t Tag) Bytes() []byte { return t.buf[:t.n:t.n] }

// UnboundKey is an AEAD key not yet bound to a nonce strategy. Wrap it in
// one of the key types to use it.
type UnboundKey struct {
	alg   *Algorithm
	owner *resource.Owner
}

// NewUnboundKey validates key against alg and loads it into the engine.
func NewUnboundKey(alg *Algorithm, key []byte) (*UnboundKey, error) {
	const op = "aead.NewUnboundKey"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil || len(key) != alg.KeyLen() {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.AEADNew(alg.id, key, alg.TagLen())
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return &UnboundKey{alg: alg, owner: resource.New(h, backend.AEADFree)}, nil
}

// Algorithm reports the key's algorithm.
func (k *UnboundKey) Algorithm() *Algorithm { return k.alg }

// Close releases the engine context.
func (k *UnboundKey) Close() { k.owner.Release() }

// sealInPlace encrypts inOut and appends the tag, growing the slice.
func (k *UnboundKey) sealInPlace(op string, nonce Nonce, aad, inOut []byte) ([]byte, error) {
	n := len(inOut)
	buf := grow(inOut, k.alg.TagLen())
	written, err := resource.With(k.owner, op, func(h backend.Handle) (int, error) {
		w, st := backend.AEADSeal(h, buf, nonce[:], buf[:n], aad)
		return w, awslc.RemapStatus(op, st)
	})
	if err != nil {
		return inOut, err
	}
	return buf[:written], nil
}

func (k *UnboundKey) sealSeparate(op string, nonce Nonce, aad, inOut []byte) (Tag, error) {
	tagLen := k.alg.TagLen()
	scratch := make([]byte, len(inOut)+tagLen)
	copy(scratch, inOut)
	sealed, err := k.sealInPlace(op, nonce, aad, scratch[:len(inOut)])
	if err != nil {
		awslc.ZeroizeBytes(scratch)
		return Tag{}, err
	}
	copy(inOut, sealed)
	t := Tag{n: tagLen}
	copy(t.buf[:], sealed[len(inOut):])
	return t, nil
}

// openInPlace authenticates and decrypts ciphertext||tag in inOut,
// returning the plaintext prefix. On failure inOut is zeroed.
func (k *UnboundKey) openInPlace(op string, nonce Nonce, aad, inOut []byte) ([]byte, error) {
	if len(inOut) < k.alg.TagLen() {
		awslc.ZeroizeBytes(inOut)
		return nil, awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	written, err := resource.With(k.owner, op, func(h backend.Handle) (int, error) {
		w, st := backend.AEADOpen(h, inOut, nonce[:], inOut, aad)
		if !st.OK() {
			// Any open failure is an authentication failure to the caller.
			return 0, awslc.Fail(op, awslc.ErrVerificationFailed)
		}
		return w, nil
	})
	if err != nil {
		awslc.ZeroizeBytes(inOut)
		return nil, err
	}
	return inOut[:written], nil
}

func grow(b []byte, extra int) []byte {
	n := len(b) + extra
	if cap(b) >= n {
		return b[:n]
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}
