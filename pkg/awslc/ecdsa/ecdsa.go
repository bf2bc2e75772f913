// Package ecdsa signs and verifies ECDSA over P-256, P-384, P-521 and
// secp256k1, with ASN.1 DER or fixed-width r||s signatures.
package ecdsa

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/pkcs8"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// Algorithm fixes the curve, the message digest and the signature format.
type Algorithm struct {
	curve backend.Curve
	md    backend.DigestID
	fixed bool
	name  string
}

var (
	ECDSA_P256_SHA256_ASN1  = &Algorithm{backend.CurveP256, backend.DigestSHA256, false, "ECDSA_P256_SHA256_ASN1"}
	ECDSA_P256_SHA256_FIXED = &Algorithm{backend.CurveP256, backend.DigestSHA256, true, "ECDSA_P256_SHA256_FIXED"}
	ECDSA_P256_SHA384_ASN1  = &Algorithm{backend.CurveP256, backend.DigestSHA384, false, "ECDSA_P256_SHA384_ASN1"}
	ECDSA_P384_SHA256_ASN1  = &Algorithm{backend.CurveP384, backend.DigestSHA256, false, "ECDSA_P384_SHA256_ASN1"}
	ECDSA_P384_SHA384_ASN1  = &Algorithm{backend.CurveP384, backend.DigestSHA384, false, "ECDSA_P384_SHA384_ASN1"}
	ECDSA_P384_SHA384_FIXED = &Algorithm{backend.CurveP384, backend.DigestSHA384, true, "ECDSA_P384_SHA384_FIXED"}
	ECDSA_P521_SHA512_ASN1  = &Algorithm{backend.CurveP521, backend.DigestSHA512, false, "ECDSA_P521_SHA512_ASN1"}
	ECDSA_P521_SHA512_FIXED = &Algorithm{backend.CurveP521, backend.DigestSHA512, true, "ECDSA_P521_SHA512_FIXED"}

	// secp256k1 is never FIPS approved.
	ECDSA_P256K1_SHA256_ASN1  = &Algorithm{backend.CurveSecp256k1, backend.DigestSHA256, false, "ECDSA_P256K1_SHA256_ASN1"}
	ECDSA_P256K1_SHA256_FIXED = &Algorithm{backend.CurveSecp256k1, backend.DigestSHA256, true, "ECDSA_P256K1_SHA256_FIXED"}
)

func (a *Algorithm) String() string { return a.name }

// Curve names the curve.
func (a *Algorithm) Curve() string { return a.curve.String() }

// PublicKeyLen is the length of an uncompressed public point.
func (a *Algorithm) PublicKeyLen() int { return a.curve.UncompressedPointLen() }

// PrivateKeyLen is the length of a big-endian private scalar.
func (a *Algorithm) PrivateKeyLen() int { return a.curve.ScalarLen() }

// PublicKey is an uncompressed X9.62 point with its SPKI encoding.
type PublicKey struct {
	alg   *Algorithm
	point []byte
	der   []byte
}

// Algorithm reports the key's algorithm.
func (p *PublicKey) Algorithm() *Algorithm { return p.alg }

// Bytes returns the uncompressed point 0x04 || X || Y.
func (p *PublicKey) Bytes() []byte { return append([]byte(nil), p.point...) }

// AsDER returns the X.509 SubjectPublicKeyInfo encoding.
func (p *PublicKey) AsDER() []byte { return append([]byte(nil), p.der...) }

// KeyPair is an ECDSA private key. Sign may be called concurrently.
type KeyPair struct {
	alg    *Algorithm
	owner  *resource.Owner
	public *PublicKey
}

func newKeyPair(op string, alg *Algorithm, h backend.Handle) (*KeyPair, error) {
	if backend.PKeyType(h) != backend.KeyTypeEC || backend.PKeyCurve(h) != alg.curve {
		backend.PKeyFree(h)
		return nil, awslc.Reject(op, awslc.ReasonWrongAlgorithm)
	}
	point, st := backend.PKeyRawPublic(h)
	if err := awslc.RemapStatus(op, st); err != nil {
		backend.PKeyFree(h)
		return nil, err
	}
	der, st := backend.PKeyMarshalPublic(h)
	if err := awslc.RemapStatus(op, st); err != nil {
		backend.PKeyFree(h)
		return nil, err
	}
	return &KeyPair{
		alg:    alg,
		owner:  resource.New(h, backend.PKeyFree),
		public: &PublicKey{alg: alg, point: point, der: der},
	}, nil
}

// Generate creates a key pair from the engine RNG.
func Generate(alg *Algorithm) (*KeyPair, error) {
	const op = "ecdsa.Generate"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.PKeyGenerate(backend.KeyTypeEC, alg.curve, 0)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, alg, h)
}

// FromPKCS8 parses a PKCS#8 v1 document for alg's curve.
func FromPKCS8(alg *Algorithm, der []byte) (*KeyPair, error) {
	const op = "ecdsa.FromPKCS8"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	if err := pkcs8.RequireV1(der); err != nil {
		return nil, awslc.Fail(op, err)
	}
	h, st := backend.PKeyParsePrivate(der)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, alg, h)
}

// FromPrivateKeyDER parses an RFC 5915 ECPrivateKey that names its curve.
func FromPrivateKeyDER(alg *Algorithm, der []byte) (*KeyPair, error) {
	const op = "ecdsa.FromPrivateKeyDER"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.PKeyParseECPrivate(der)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, alg, h)
}

// FromPrivateKeyBytes loads a big-endian scalar of exactly PrivateKeyLen
// bytes.
func FromPrivateKeyBytes(alg *Algorithm, scalar []byte) (*KeyPair, error) {
	const op = "ecdsa.FromPrivateKeyBytes"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	if len(scalar) != alg.PrivateKeyLen() {
		return nil, awslc.Reject(op, awslc.ReasonInvalidEncoding)
	}
	h, st := backend.PKeyFromRawPrivate(backend.KeyTypeEC, alg.curve, scalar)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, alg, h)
}

// Algorithm reports the key's algorithm.
func (kp *KeyPair) Algorithm() *Algorithm { return kp.alg }

// PublicKey returns the public half.
func (kp *KeyPair) PublicKey() *PublicKey { return kp.public }

// Sign hashes msg and signs it in the key's format.
//
// The nonce comes from the engine RNG: rng is accepted for API
// compatibility and not used.
func (kp *KeyPair) Sign(rng rand.SecureRandom, msg []byte) ([]byte, error) {
	const op = "ecdsa.KeyPair.Sign"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	return resource.With(kp.owner, op, func(h backend.Handle) ([]byte, error) {
		der, st := backend.PKeySign(h, kp.alg.md, backend.PaddingNone, msg)
		if err := awslc.RemapStatus(op, st); err != nil {
			return nil, err
		}
		if !kp.alg.fixed {
			return der, nil
		}
		sig, ok := derToFixed(der, kp.alg.curve.ScalarLen())
		if !ok {
			return nil, awslc.Fail(op, awslc.ErrUnspecified)
		}
		return sig, nil
	})
}

// ToPKCS8 serializes the key as PKCS#8 v1.
func (kp *KeyPair) ToPKCS8() (*pkcs8.Document, error) {
	const op = "ecdsa.KeyPair.ToPKCS8"
	return resource.With(kp.owner, op, func(h backend.Handle) (*pkcs8.Document, error) {
		der, st := backend.PKeyMarshalPrivate(h)
		if err := awslc.RemapStatus(op, st); err != nil {
			return nil, err
		}
		return pkcs8.NewDocument(der), nil
	})
}

// PrivateKeyDER returns the RFC 5915 ECPrivateKey encoding with the curve
// named. The caller should wipe it with awslc.ZeroizeBytes.
func (kp *KeyPair) PrivateKeyDER() ([]byte, error) {
	const op = "ecdsa.KeyPair.PrivateKeyDER"
	return resource.With(kp.owner, op, func(h backend.Handle) ([]byte, error) {
		der, st := backend.PKeyMarshalECPrivate(h)
		return der, awslc.RemapStatus(op, st)
	})
}

// PrivateKeyBytes returns the big-endian scalar. The caller should wipe
// it with awslc.ZeroizeBytes.
func (kp *KeyPair) PrivateKeyBytes() ([]byte, error) {
	const op = "ecdsa.KeyPair.PrivateKeyBytes"
	return resource.With(kp.owner, op, func(h backend.Handle) ([]byte, error) {
		raw, st := backend.PKeyRawPrivate(h)
		return raw, awslc.RemapStatus(op, st)
	})
}

// Close releases the key.
func (kp *KeyPair) Close() { kp.owner.Release() }

// Verify checks sig over msg under an uncompressed public point. Every
// failure, including a malformed key or signature, is
// ErrVerificationFailed.
func Verify(alg *Algorithm, publicKey, msg, sig []byte) error {
	const op = "ecdsa.Verify"
	if err := awslc.Begin(op); err != nil {
		return err
	}
	if alg == nil {
		return awslc.Fail(op, awslc.ErrInvalidInput)
	}
	if alg.fixed {
		der, ok := fixedToDER(sig, alg.curve.ScalarLen())
		if !ok {
			return awslc.Fail(op, awslc.ErrVerificationFailed)
		}
		sig = der
	}
	h, st := backend.PKeyFromRawPublic(backend.KeyTypeEC, alg.curve, publicKey)
	if !st.OK() {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	defer backend.PKeyFree(h)
	if !backend.PKeyVerify(h, alg.md, backend.PaddingNone, msg, sig).OK() {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	return nil
}

// VerifySignature is Verify with a as the algorithm.
func (a *Algorithm) VerifySignature(publicKey, msg, sig []byte) error {
	return Verify(a, publicKey, msg, sig)
}
