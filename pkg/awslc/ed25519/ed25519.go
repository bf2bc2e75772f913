// Package ed25519 signs and verifies with Ed25519 (RFC 8032).
package ed25519

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/pkcs8"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// Fixed sizes.
const (
	SeedLen      = backend.Ed25519SeedLen
	PublicKeyLen = backend.Ed25519PublicKeyLen
	SignatureLen = backend.Ed25519SignatureLen
)

// PublicKey is a raw 32-byte Ed25519 public key.
type PublicKey [PublicKeyLen]byte

// Bytes returns a copy of the key.
func (p PublicKey) Bytes() []byte { return append([]byte(nil), p[:]...) }

// Seed is the 32-byte private seed of a key pair. Zeroize it when done.
type Seed [SeedLen]byte

// Zeroize wipes the seed.
func (s *Seed) Zeroize() { awslc.ZeroizeBytes(s[:]) }

// KeyPair is an Ed25519 private key with its public key. Sign may be
// called concurrently.
type KeyPair struct {
	owner  *resource.Owner
	public PublicKey
}

func newKeyPair(op string, h backend.Handle) (*KeyPair, error) {
	pub, st := backend.PKeyRawPublic(h)
	if err := awslc.RemapStatus(op, st); err != nil {
		backend.PKeyFree(h)
		return nil, err
	}
	kp := &KeyPair{owner: resource.New(h, backend.PKeyFree)}
	copy(kp.public[:], pub)
	return kp, nil
}

// Generate creates a key pair from the engine RNG.
func Generate() (*KeyPair, error) {
	const op = "ed25519.Generate"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	h, st := backend.PKeyGenerate(backend.KeyTypeEd25519, backend.CurveUnknown, 0)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, h)
}

// GeneratePKCS8 creates a key pair and returns its PKCS#8 v1 encoding.
//
// The key is drawn from the engine RNG: rng is accepted for API
// compatibility and not used.
func GeneratePKCS8(rng rand.SecureRandom) (*pkcs8.Document, error) {
	kp, err := Generate()
	if err != nil {
		return nil, err
	}
	defer kp.Close()
	return kp.ToPKCS8()
}

// FromSeed derives the key pair for a 32-byte seed.
func FromSeed(seed []byte) (*KeyPair, error) {
	const op = "ed25519.FromSeed"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if len(seed) != SeedLen {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.PKeyFromRawPrivate(backend.KeyTypeEd25519, backend.CurveUnknown, seed)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, h)
}

// FromSeedAndPublicKey is FromSeed that also checks the derived public
// key against publicKey.
func FromSeedAndPublicKey(seed, publicKey []byte) (*KeyPair, error) {
	const op = "ed25519.FromSeedAndPublicKey"
	if len(publicKey) != PublicKeyLen {
		return nil, awslc.Reject(op, awslc.ReasonInvalidEncoding)
	}
	kp, err := FromSeed(seed)
	if err != nil {
		return nil, err
	}
	if backend.MemCmp(kp.public[:], publicKey) != 0 {
		kp.Close()
		return nil, awslc.Reject(op, awslc.ReasonInconsistentComponents)
	}
	return kp, nil
}

// FromPKCS8 parses a PKCS#8 v1 document. Version 2 documents are rejected
// with ReasonUnsupportedVersion.
func FromPKCS8(der []byte) (*KeyPair, error) {
	const op = "ed25519.FromPKCS8"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if err := pkcs8.RequireV1(der); err != nil {
		return nil, awslc.Fail(op, err)
	}
	h, st := backend.PKeyParsePrivate(der)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	if backend.PKeyType(h) != backend.KeyTypeEd25519 {
		backend.PKeyFree(h)
		return nil, awslc.Reject(op, awslc.ReasonWrongAlgorithm)
	}
	return newKeyPair(op, h)
}

// PublicKey returns the public half.
func (kp *KeyPair) PublicKey() PublicKey { return kp.public }

// Sign returns the deterministic signature of msg.
func (kp *KeyPair) Sign(msg []byte) ([]byte, error) {
	const op = "ed25519.KeyPair.Sign"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	return resource.With(kp.owner, op, func(h backend.Handle) ([]byte, error) {
		sig, st := backend.PKeySign(h, backend.DigestUnknown, backend.PaddingNone, msg)
		return sig, awslc.RemapStatus(op, st)
	})
}

// Seed returns a copy of the private seed.
func (kp *KeyPair) Seed() (*Seed, error) {
	const op = "ed25519.KeyPair.Seed"
	return resource.With(kp.owner, op, func(h backend.Handle) (*Seed, error) {
		raw, st := backend.PKeyRawPrivate(h)
		if err := awslc.RemapStatus(op, st); err != nil {
			return nil, err
		}
		defer awslc.ZeroizeBytes(raw)
		s := new(Seed)
		copy(s[:], raw)
		return s, nil
	})
}

// ToPKCS8 serializes the key pair as PKCS#8 v1.
func (kp *KeyPair) ToPKCS8() (*pkcs8.Document, error) {
	const op = "ed25519.KeyPair.ToPKCS8"
	return resource.With(kp.owner, op, func(h backend.Handle) (*pkcs8.Document, error) {
		der, st := backend.PKeyMarshalPrivate(h)
		if err := awslc.RemapStatus(op, st); err != nil {
			return nil, err
		}
		return pkcs8.NewDocument(der), nil
	})
}

// Close releases the key.
func (kp *KeyPair) Close() { kp.owner.Release() }

// Verify checks sig over msg under a raw 32-byte public key. Every failure,
// including a malformed key or signature, is ErrVerificationFailed.
func Verify(publicKey, msg, sig []byte) error {
	const op = "ed25519.Verify"
	if err := awslc.Begin(op); err != nil {
		return err
	}
	if len(publicKey) != PublicKeyLen || len(sig) != SignatureLen {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	h, st := backend.PKeyFromRawPublic(backend.KeyTypeEd25519, backend.CurveUnknown, publicKey)
	if !st.OK() {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	defer backend.PKeyFree(h)
	if !backend.PKeyVerify(h, backend.DigestUnknown, backend.PaddingNone, msg, sig).OK() {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	return nil
}
