package ecdsa_test

import (
	stdecdsa "crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"hash"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/ecdsa"
)

type brokenRandom struct{}

func (brokenRandom) Fill([]byte) error { return errors.New("no entropy here") }

var nist = []struct {
	asn1, fixed *ecdsa.Algorithm
	curve elliptic.Curve
	hash  func() hash.Hash
}{
	{ecdsa.ECDSA_P256_SHA256_ASN1, ecdsa.ECDSA_P256_SHA256_FIXED, elliptic.P256(), sha256.New},
	{ecdsa.ECDSA_P384_SHA384_ASN1, ecdsa.ECDSA_P384_SHA384_FIXED, elliptic.P384(), sha512.New384},
	{ecdsa.ECDSA_P521_SHA512_ASN1, ecdsa.ECDSA_P521_SHA512_FIXED, elliptic.P521(), sha512.New},
}

func digestOf(h func() hash.Hash, msg []byte) []byte {
	d := h()
	d.Write(msg)
	return d.Sum(nil)
}

func TestSignVerifyAgainstStdlib(t *testing.T) {
	msg := []byte("interop")
	for _, tt := range nist {
		t.Run(tt.asn1.Curve(), func(t *testing.T) {
			kp, err := ecdsa.Generate(tt.asn1)
			require.NoError(t, err)
			defer kp.Close()
			point := kp.PublicKey().Bytes()
			require.Len(t, point, tt.asn1.PublicKeyLen())

			sig, err := kp.Sign(brokenRandom{}, msg)
			require.NoError(t, err)
			assert.NoError(t, ecdsa.Verify(tt.asn1, point, msg, sig))

			pub, err := stdecdsa.ParseUncompressedPublicKey(tt.curve, point)
			require.NoError(t, err)
			assert.True(t, stdecdsa.VerifyASN1(pub, digestOf(tt.hash, msg), sig))

			priv, err := stdecdsa.GenerateKey(tt.curve, rand.Reader)
			require.NoError(t, err)
			theirs, err := stdecdsa.SignASN1(rand.Reader, priv, digestOf(tt.hash, msg))
			require.NoError(t, err)
			theirPoint, err := priv.PublicKey.Bytes()
			require.NoError(t, err)
			assert.NoError(t, ecdsa.Verify(tt.asn1, theirPoint, msg, theirs))
		})
	}
}

func TestFixedFormat(t *testing.T) {
	msg := []byte("fixed width")
	for _, tt := range nist {
		t.Run(tt.fixed.String(), func(t *testing.T) {
			kp, err := ecdsa.Generate(tt.fixed)
			require.NoError(t, err)
			defer kp.Close()

			sig, err := kp.Sign(nil, msg)
			require.NoError(t, err)
			assert.Len(t, sig, 2*tt.fixed.PrivateKeyLen())
			point := kp.PublicKey().Bytes()
			assert.NoError(t, ecdsa.Verify(tt.fixed, point, msg, sig))
			assert.ErrorIs(t, ecdsa.Verify(tt.asn1, point, msg, sig), awslc.ErrVerificationFailed)
			assert.ErrorIs(t, ecdsa.Verify(tt.fixed, point, msg, sig[1:]), awslc.ErrVerificationFailed)
		})
	}
}

func TestSecp256k1AgainstBtcec(t *testing.T) {
	msg := []byte("bitcoin")
	digest := sha256.Sum256(msg)

	kp, err := ecdsa.Generate(ecdsa.ECDSA_P256K1_SHA256_ASN1)
	require.NoError(t, err)
	defer kp.Close()
	sig, err := kp.Sign(nil, msg)
	require.NoError(t, err)

	pub, err := btcec.ParsePubKey(kp.PublicKey().Bytes())
	require.NoError(t, err)
	parsed, err := btcecdsa.ParseDERSignature(sig)
	require.NoError(t, err)
	assert.True(t, parsed.Verify(digest[:], pub))

	priv, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	theirs := btcecdsa.Sign(priv, digest[:]).Serialize()
	point := priv.PubKey().SerializeUncompressed()
	assert.NoError(t, ecdsa.Verify(ecdsa.ECDSA_P256K1_SHA256_ASN1, point, msg, theirs))

	scalar := priv.Serialize()
	mine, err := ecdsa.FromPrivateKeyBytes(ecdsa.ECDSA_P256K1_SHA256_FIXED, scalar)
	require.NoError(t, err)
	defer mine.Close()
	assert.Equal(t, point, mine.PublicKey().Bytes())
}

func TestVerifyRejectsBitFlips(t *testing.T) {
	kp, err := ecdsa.Generate(ecdsa.ECDSA_P256_SHA256_ASN1)
	require.NoError(t, err)
	defer kp.Close()
	msg := []byte("tamper")
	sig, err := kp.Sign(nil, msg)
	require.NoError(t, err)
	point := kp.PublicKey().Bytes()

	flip := func(b []byte, i int) []byte {
		c := append([]byte(nil), b...)
		c[i/8] ^= 1 << (i % 8)
		return c
	}
	alg := ecdsa.ECDSA_P256_SHA256_ASN1
	assert.ErrorIs(t, ecdsa.Verify(alg, point, flip(msg, 3), sig), awslc.ErrVerificationFailed)
	assert.ErrorIs(t, ecdsa.Verify(alg, point, msg, flip(sig, 8*len(sig)-1)), awslc.ErrVerificationFailed)
	assert.ErrorIs(t, ecdsa.Verify(alg, flip(point, 8*len(point)-1), msg, sig), awslc.ErrVerificationFailed)
	assert.ErrorIs(t, ecdsa.Verify(alg, point[:10], msg, sig), awslc.ErrVerificationFailed)
}

func TestEncodingsRoundTrip(t *testing.T) {
	alg := ecdsa.ECDSA_P384_SHA384_ASN1
	kp, err := ecdsa.Generate(alg)
	require.NoError(t, err)
	defer kp.Close()
	want := kp.PublicKey().Bytes()

	doc, err := kp.ToPKCS8()
	require.NoError(t, err)
	defer doc.Close()
	fromDoc, err := ecdsa.FromPKCS8(alg, doc.Bytes())
	require.NoError(t, err)
	defer fromDoc.Close()
	assert.Equal(t, want, fromDoc.PublicKey().Bytes())
	assert.Equal(t, kp.PublicKey().AsDER(), fromDoc.PublicKey().AsDER())

	der, err := kp.PrivateKeyDER()
	require.NoError(t, err)
	fromDER, err := ecdsa.FromPrivateKeyDER(alg, der)
	require.NoError(t, err)
	defer fromDER.Close()
	assert.Equal(t, want, fromDER.PublicKey().Bytes())

	scalar, err := kp.PrivateKeyBytes()
	require.NoError(t, err)
	assert.Len(t, scalar, alg.PrivateKeyLen())
	fromScalar, err := ecdsa.FromPrivateKeyBytes(alg, scalar)
	require.NoError(t, err)
	defer fromScalar.Close()
	assert.Equal(t, want, fromScalar.PublicKey().Bytes())

	sig, err := fromScalar.Sign(nil, []byte("m"))
	require.NoError(t, err)
	assert.NoError(t, ecdsa.Verify(alg, want, []byte("m"), sig))
}

func TestRejectsWrongCurve(t *testing.T) {
	kp, err := ecdsa.Generate(ecdsa.ECDSA_P256_SHA256_ASN1)
	require.NoError(t, err)
	defer kp.Close()
	doc, err := kp.ToPKCS8()
	require.NoError(t, err)

	_, err = ecdsa.FromPKCS8(ecdsa.ECDSA_P384_SHA384_ASN1, doc.Bytes())
	var kr *awslc.KeyRejected
	require.ErrorAs(t, err, &kr)
	assert.Equal(t, awslc.ReasonWrongAlgorithm, kr.Reason)

	_, err = ecdsa.FromPrivateKeyBytes(ecdsa.ECDSA_P384_SHA384_ASN1, make([]byte, 32))
	require.ErrorAs(t, err, &kr)
	assert.Equal(t, awslc.ReasonInvalidEncoding, kr.Reason)
}

func TestClosedKey(t *testing.T) {
	kp, err := ecdsa.Generate(ecdsa.ECDSA_P256_SHA256_FIXED)
	require.NoError(t, err)
	kp.Close()
	_, err = kp.Sign(nil, []byte("x"))
	assert.ErrorIs(t, err, awslc.ErrInvalidInput)
	_, err = kp.PrivateKeyBytes()
	assert.ErrorIs(t, err, awslc.ErrInvalidInput)
}
