// Package rsa signs and verifies RSA PKCS#1 v1.5 and PSS signatures.
//
// Key generation is slow, seconds for 8192-bit keys, and cannot be
// interrupted. Run Generate on a goroutine you own if the caller needs to
// give up early.
package rsa

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/resource"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/pkcs8"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// Accepted modulus sizes for private keys.
const (
	MinModulusBits = 2048
	MaxModulusBits = 8192
)

// KeySize is a modulus size Generate supports.
type KeySize int

const (
	KeySize2048 KeySize = 2048
	KeySize3072 KeySize = 3072
	KeySize4096 KeySize = 4096
	KeySize8192 KeySize = 8192
)

// Padding is a signing scheme: the padding mode and the message digest.
type Padding struct {
	md   backend.DigestID
	pad  backend.Padding
	name string
}

var (
	RSA_PKCS1_SHA256 = &Padding{backend.DigestSHA256, backend.PaddingPKCS1, "RSA_PKCS1_SHA256"}
	RSA_PKCS1_SHA384 = &Padding{backend.DigestSHA384, backend.PaddingPKCS1, "RSA_PKCS1_SHA384"}
	RSA_PKCS1_SHA512 = &Padding{backend.DigestSHA512, backend.PaddingPKCS1, "RSA_PKCS1_SHA512"}
	RSA_PSS_SHA256   = &Padding{backend.DigestSHA256, backend.PaddingPSS, "RSA_PSS_SHA256"}
	RSA_PSS_SHA384   = &Padding{backend.DigestSHA384, backend.PaddingPSS, "RSA_PSS_SHA384"}
	RSA_PSS_SHA512   = &Padding{backend.DigestSHA512, backend.PaddingPSS, "RSA_PSS_SHA512"}
)

func (p *Padding) String() string { return p.name }

// Parameters is a verification scheme with the modulus sizes it accepts.
type Parameters struct {
	md   backend.DigestID
	pad  backend.Padding
	min, max int
	name string
}

var (
	RSA_PKCS1_2048_8192_SHA256 = &Parameters{backend.DigestSHA256, backend.PaddingPKCS1, 2048, 8192, "RSA_PKCS1_2048_8192_SHA256"}
	RSA_PKCS1_2048_8192_SHA384 = &Parameters{backend.DigestSHA384, backend.PaddingPKCS1, 2048, 8192, "RSA_PKCS1_2048_8192_SHA384"}
	RSA_PKCS1_2048_8192_SHA512 = &Parameters{backend.DigestSHA512, backend.PaddingPKCS1, 2048, 8192, "RSA_PKCS1_2048_8192_SHA512"}
	RSA_PKCS1_3072_8192_SHA384 = &Parameters{backend.DigestSHA384, backend.PaddingPKCS1, 3072, 8192, "RSA_PKCS1_3072_8192_SHA384"}
	RSA_PSS_2048_8192_SHA256   = &Parameters{backend.DigestSHA256, backend.PaddingPSS, 2048, 8192, "RSA_PSS_2048_8192_SHA256"}
	RSA_PSS_2048_8192_SHA384   = &Parameters{backend.DigestSHA384, backend.PaddingPSS, 2048, 8192, "RSA_PSS_2048_8192_SHA384"}
	RSA_PSS_2048_8192_SHA512   = &Parameters{backend.DigestSHA512, backend.PaddingPSS, 2048, 8192, "RSA_PSS_2048_8192_SHA512"}
)

func (p *Parameters) String() string { return p.name }

// PublicKey is an RSA public key.
type PublicKey struct {
	pkcs1 []byte
	spki  []byte
	bits  int
}

// Bytes returns the PKCS#1 RSAPublicKey encoding.
func (p *PublicKey) Bytes() []byte { return append([]byte(nil), p.pkcs1...) }

// AsDER returns the X.509 SubjectPublicKeyInfo encoding.
func (p *PublicKey) AsDER() []byte { return append([]byte(nil), p.spki...) }

// ModulusLen is the modulus length in bytes.
func (p *PublicKey) ModulusLen() int { return (p.bits + 7) / 8 }

// KeyPair is an RSA private key. Sign may be called concurrently.
type KeyPair struct {
	owner  *resource.Owner
	public *PublicKey
}

func newKeyPair(op string, h backend.Handle) (*KeyPair, error) {
	fail := func(err error) (*KeyPair, error) {
		backend.PKeyFree(h)
		return nil, err
	}
	if backend.PKeyType(h) != backend.KeyTypeRSA {
		return fail(awslc.Reject(op, awslc.ReasonWrongAlgorithm))
	}
	bits := backend.PKeyBits(h)
	switch {
	case bits < MinModulusBits:
		return fail(awslc.Reject(op, awslc.ReasonTooSmall))
	case bits > MaxModulusBits:
		return fail(awslc.Reject(op, awslc.ReasonTooLarge))
	}
	pkcs1, st := backend.PKeyRawPublic(h)
	if err := awslc.RemapStatus(op, st); err != nil {
		return fail(err)
	}
	spki, st := backend.PKeyMarshalPublic(h)
	if err := awslc.RemapStatus(op, st); err != nil {
		return fail(err)
	}
	return &KeyPair{
		owner:  resource.New(h, backend.PKeyFree),
		public: &PublicKey{pkcs1: pkcs1, spki: spki, bits: bits},
	}, nil
}

// Generate creates a key pair of the given size.
func Generate(size KeySize) (*KeyPair, error) {
	const op = "rsa.Generate"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	switch size {
	case KeySize2048, KeySize3072, KeySize4096, KeySize8192:
	default:
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.PKeyGenerate(backend.KeyTypeRSA, backend.CurveUnknown, int(size))
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, h)
}

// FromPKCS8 parses a PKCS#8 v1 document holding an RSA key.
func FromPKCS8(der []byte) (*KeyPair, error) {
	const op = "rsa.FromPKCS8"
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
	return newKeyPair(op, h)
}

// FromDER parses a PKCS#1 RSAPrivateKey.
func FromDER(der []byte) (*KeyPair, error) {
	const op = "rsa.FromDER"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	h, st := backend.PKeyParseRSAPrivate(der)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return newKeyPair(op, h)
}

// PublicKey returns the public half.
func (kp *KeyPair) PublicKey() *PublicKey { return kp.public }

// PublicModulusLen is the modulus length in bytes, which is also the
// signature length.
func (kp *KeyPair) PublicModulusLen() int { return kp.public.ModulusLen() }

// Sign hashes msg and signs it with padding. PSS uses a salt as long as
// the digest.
//
// Any randomness comes from the engine RNG: rng is accepted for API
// compatibility and not used.
func (kp *KeyPair) Sign(padding *Padding, rng rand.SecureRandom, msg []byte) ([]byte, error) {
	const op = "rsa.KeyPair.Sign"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if padding == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	return resource.With(kp.owner, op, func(h backend.Handle) ([]byte, error) {
		sig, st := backend.PKeySign(h, padding.md, padding.pad, msg)
		return sig, awslc.RemapStatus(op, st)
	})
}

// ToPKCS8 serializes the key as PKCS#8 v1.
func (kp *KeyPair) ToPKCS8() (*pkcs8.Document, error) {
	const op = "rsa.KeyPair.ToPKCS8"
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

// Verify checks sig over msg under a PKCS#1 RSAPublicKey. Every failure,
// including a malformed key or a modulus outside params' range, is
// ErrVerificationFailed.
func Verify(params *Parameters, publicKey, msg, sig []byte) error {
	const op = "rsa.Verify"
	if err := awslc.Begin(op); err != nil {
		return err
	}
	if params == nil {
		return awslc.Fail(op, awslc.ErrInvalidInput)
	}
	h, st := backend.PKeyFromRawPublic(backend.KeyTypeRSA, backend.CurveUnknown, publicKey)
	if !st.OK() {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	defer backend.PKeyFree(h)
	if bits := backend.PKeyBits(h); bits < params.min || bits > params.max {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	if !backend.PKeyVerify(h, params.md, params.pad, msg, sig).OK() {
		return awslc.Fail(op, awslc.ErrVerificationFailed)
	}
	return nil
}

// VerifySignature is Verify with p as the parameters.
func (p *Parameters) VerifySignature(publicKey, msg, sig []byte) error {
	return Verify(p, publicKey, msg, sig)
}
