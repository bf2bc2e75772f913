// Package signature verifies signatures from any supported scheme through
// one entry point.
package signature

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/ecdsa"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/ed25519"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rsa"
)

// VerificationAlgorithm checks a signature under a public key in the
// algorithm's own encoding.
type VerificationAlgorithm interface {
	VerifySignature(publicKey, msg, sig []byte) error
	String() string
}

type ed25519Algorithm struct{}

func (ed25519Algorithm) VerifySignature(publicKey, msg, sig []byte) error {
	return ed25519.Verify(publicKey, msg, sig)
}

func (ed25519Algorithm) String() string { return "ED25519" }

// Verification algorithms. Public keys are raw 32 bytes for Ed25519,
// uncompressed points for ECDSA and PKCS#1 RSAPublicKey for RSA.
var (
	ED25519 VerificationAlgorithm = ed25519Algorithm{}

	ECDSA_P256_SHA256_ASN1    VerificationAlgorithm = ecdsa.ECDSA_P256_SHA256_ASN1
	ECDSA_P256_SHA256_FIXED   VerificationAlgorithm = ecdsa.ECDSA_P256_SHA256_FIXED
	ECDSA_P256_SHA384_ASN1    VerificationAlgorithm = ecdsa.ECDSA_P256_SHA384_ASN1
	ECDSA_P384_SHA256_ASN1    VerificationAlgorithm = ecdsa.ECDSA_P384_SHA256_ASN1
	ECDSA_P384_SHA384_ASN1    VerificationAlgorithm = ecdsa.ECDSA_P384_SHA384_ASN1
	ECDSA_P384_SHA384_FIXED   VerificationAlgorithm = ecdsa.ECDSA_P384_SHA384_FIXED
	ECDSA_P521_SHA512_ASN1    VerificationAlgorithm = ecdsa.ECDSA_P521_SHA512_ASN1
	ECDSA_P521_SHA512_FIXED   VerificationAlgorithm = ecdsa.ECDSA_P521_SHA512_FIXED
	ECDSA_P256K1_SHA256_ASN1  VerificationAlgorithm = ecdsa.ECDSA_P256K1_SHA256_ASN1
	ECDSA_P256K1_SHA256_FIXED VerificationAlgorithm = ecdsa.ECDSA_P256K1_SHA256_FIXED

	RSA_PKCS1_2048_8192_SHA256 VerificationAlgorithm = rsa.RSA_PKCS1_2048_8192_SHA256
	RSA_PKCS1_2048_8192_SHA384 VerificationAlgorithm = rsa.RSA_PKCS1_2048_8192_SHA384
	RSA_PKCS1_2048_8192_SHA512 VerificationAlgorithm = rsa.RSA_PKCS1_2048_8192_SHA512
	RSA_PKCS1_3072_8192_SHA384 VerificationAlgorithm = rsa.RSA_PKCS1_3072_8192_SHA384
	RSA_PSS_2048_8192_SHA256   VerificationAlgorithm = rsa.RSA_PSS_2048_8192_SHA256
	RSA_PSS_2048_8192_SHA384   VerificationAlgorithm = rsa.RSA_PSS_2048_8192_SHA384
	RSA_PSS_2048_8192_SHA512   VerificationAlgorithm = rsa.RSA_PSS_2048_8192_SHA512
)

// UnparsedPublicKey pairs public key bytes with the algorithm that will
// interpret them. The bytes are not checked until Verify.
type UnparsedPublicKey struct {
	Algorithm VerificationAlgorithm
	Bytes     []byte
}

// NewUnparsedPublicKey is a convenience constructor.
func NewUnparsedPublicKey(alg VerificationAlgorithm, publicKey []byte) UnparsedPublicKey {
	return UnparsedPublicKey{Algorithm: alg, Bytes: publicKey}
}

// Verify checks sig over msg. Every failure is ErrVerificationFailed.
func (k UnparsedPublicKey) Verify(msg, sig []byte) error {
	if k.Algorithm == nil {
		return awslc.Fail("signature.UnparsedPublicKey.Verify", awslc.ErrInvalidInput)
	}
	return k.Algorithm.VerifySignature(k.Bytes, msg, sig)
}
