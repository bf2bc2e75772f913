// Package agreement performs ephemeral key agreement: X25519 and ECDH over
// the NIST P-curves.
package agreement

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// Algorithm is a key agreement algorithm.
type Algorithm struct {
	typ   backend.KeyType
	curve backend.Curve
	name  string
}

var (
	X25519    = &Algorithm{backend.KeyTypeX25519, backend.CurveUnknown, "X25519"}
	ECDH_P256 = &Algorithm{backend.KeyTypeEC, backend.CurveP256, "ECDH-P256"}
	ECDH_P384 = &Algorithm{backend.KeyTypeEC, backend.CurveP384, "ECDH-P384"}
	ECDH_P521 = &Algorithm{backend.KeyTypeEC, backend.CurveP521, "ECDH-P521"}
)

func (a *Algorithm) String() string { return a.name }

// PrivateKeyLen is the raw private key length: 32 for X25519, the scalar
// length for ECDH.
func (a *Algorithm) PrivateKeyLen() int {
	if a.typ == backend.KeyTypeX25519 {
		return backend.X25519KeyLen
	}
	return a.curve.ScalarLen()
}

// PublicKeyLen is the raw public key length: 32 for X25519, an
// uncompressed point for ECDH.
func (a *Algorithm) PublicKeyLen() int {
	if a.typ == backend.KeyTypeX25519 {
		return backend.X25519KeyLen
	}
	return a.curve.UncompressedPointLen()
}

// SharedSecretLen is the length of the secret handed to the kdf.
func (a *Algorithm) SharedSecretLen() int { return a.PrivateKeyLen() }

// PublicKey is a computed public key.
type PublicKey struct {
	alg   *Algorithm
	bytes []byte
}

// Algorithm reports the key's algorithm.
func (p *PublicKey) Algorithm() *Algorithm { return p.alg }

// Bytes returns the raw encoding.
func (p *PublicKey) Bytes() []byte { return append([]byte(nil), p.bytes...) }

// UnparsedPublicKey is a peer public key not yet validated.
type UnparsedPublicKey struct {
	Algorithm *Algorithm
	Bytes     []byte
}

// PrivateKey is a key agreement private key.
type PrivateKey struct {
	alg   *Algorithm
	owner *resource.Owner
}

// GenerateEphemeral creates a private key from the engine RNG.
//
// rng is accepted for API compatibility and not used.
func GenerateEphemeral(alg *Algorithm, rng rand.SecureRandom) (*PrivateKey, error) {
	const op = "agreement.GenerateEphemeral"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.PKeyGenerate(alg.typ, alg.curve, 0)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return &PrivateKey{alg: alg, owner: resource.New(h, backend.PKeyFree)}, nil
}

// PrivateKeyFromBytes loads a raw private key: 32 bytes for X25519, a
// big-endian scalar in [1, n) for ECDH.
func PrivateKeyFromBytes(alg *Algorithm, raw []byte) (*PrivateKey, error) {
	const op = "agreement.PrivateKeyFromBytes"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	if len(raw) != alg.PrivateKeyLen() {
		return nil, awslc.Reject(op, awslc.ReasonInvalidEncoding)
	}
	h, st := backend.PKeyFromRawPrivate(alg.typ, alg.curve, raw)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return &PrivateKey{alg: alg, owner: resource.New(h, backend.PKeyFree)}, nil
}

// Algorithm reports the key's algorithm.
func (k *PrivateKey) Algorithm() *Algorithm { return k.alg }

// PublicKey computes the public key.
func (k *PrivateKey) PublicKey() (*PublicKey, error) {
	const op = "agreement.PrivateKey.PublicKey"
	return resource.With(k.owner, op, func(h backend.Handle) (*PublicKey, error) {
		pub, st := backend.PKeyRawPublic(h)
		if err := awslc.RemapStatus(op, st); err != nil {
			return nil, err
		}
		return &PublicKey{alg: k.alg, bytes: pub}, nil
	})
}

// Close releases the key.
func (k *PrivateKey) Close() { k.owner.Release() }

// Agree computes the shared secret with peer and passes it to kdf. The
// secret is zeroed when kdf returns; kdf must copy what it keeps. Any
// failure, including a peer key of another algorithm or an invalid point,
// is ErrUnspecified, and kdf is not called.
func Agree[T any](priv *PrivateKey, peer UnparsedPublicKey, kdf func(secret []byte) (T, error)) (T, error) {
	const op = "agreement.Agree"
	var zero T
	if err := awslc.Begin(op); err != nil {
		return zero, err
	}
	if priv == nil || peer.Algorithm != priv.alg || len(peer.Bytes) != priv.alg.PublicKeyLen() {
		return zero, awslc.Fail(op, awslc.ErrUnspecified)
	}
	secret, err := resource.With(priv.owner, op, func(h backend.Handle) ([]byte, error) {
		s, st := backend.PKeyDerive(h, peer.Bytes)
		if !st.OK() {
			return nil, awslc.Fail(op, awslc.ErrUnspecified)
		}
		return s, nil
	})
	if err != nil {
		return zero, err
	}
	defer awslc.ZeroizeBytes(secret)
	return kdf(secret)
}

// AgreeEphemeral is Agree that consumes priv: the key is released whether
// or not agreement succeeds.
func AgreeEphemeral[T any](priv *PrivateKey, peer UnparsedPublicKey, kdf func(secret []byte) (T, error)) (T, error) {
	if priv != nil {
		defer priv.Close()
	}
	return Agree(priv, peer, kdf)
}
