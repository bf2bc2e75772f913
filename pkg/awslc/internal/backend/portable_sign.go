//go:build !(cgo && awslc)

package backend

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"

	"github.com/btcsuite/btcd/btcec/v2"
	btcecdsa "github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"golang.org/x/crypto/curve25519"
)

func cryptoHash(id DigestID) crypto.Hash {
	switch id {
	case DigestSHA1:
		return crypto.SHA1
	case DigestSHA224:
		return crypto.SHA224
	case DigestSHA256:
		return crypto.SHA256
	case DigestSHA384:
		return crypto.SHA384
	case DigestSHA512:
		return crypto.SHA512
	case DigestSHA512_256:
		return crypto.SHA512_256
	default:
		return 0
	}
}

func digestOf(id DigestID, msg []byte) ([]byte, Status) {
	f := hashFunc(id)
	if f == nil || cryptoHash(id) == 0 {
		return nil, Pack(LibEVP, EVPInvalidDigestType)
	}
	h := f()
	h.Write(msg)
	return h.Sum(nil), StatusOK
}

func signApproved(k *pkey, md DigestID) bool {
	switch k.typ {
	case KeyTypeEd25519:
		return true
	case KeyTypeEC:
		return k.curve != CurveSecp256k1 && md != DigestSHA1
	case KeyTypeRSA:
		return k.rsaPub.N.BitLen() >= 2048 && md != DigestSHA1
	default:
		return false
	}
}

// PKeySign mirrors EVP_DigestSign. Ed25519 takes md DigestUnknown and signs
// msg directly; ECDSA output is ASN.1 DER. pad applies to RSA only.
func PKeySign(h Handle, md DigestID, pad Padding, msg []byte) ([]byte, Status) {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return nil, st
	}
	if !k.hasPrivate() {
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	var sig []byte
	switch k.typ {
	case KeyTypeEd25519:
		if md != DigestUnknown {
			return nil, Pack(LibEVP, EVPInvalidDigestType)
		}
		sk := ed25519.NewKeyFromSeed(k.priv.bytes())
		sig = ed25519.Sign(sk, msg)
		Cleanse(sk)

	case KeyTypeEC:
		digest, st := digestOf(md, msg)
		if !st.OK() {
			return nil, st
		}
		if k.curve == CurveSecp256k1 {
			var s btcec.ModNScalar
			s.SetByteSlice(k.priv.bytes())
			priv := btcec.PrivKeyFromScalar(&s)
			sig = btcecdsa.Sign(priv, digest).Serialize()
			priv.Zero()
			s.Zero()
			break
		}
		priv, err := ecdsa.ParseRawPrivateKey(ellipticCurve(k.curve), k.priv.bytes())
		if err != nil {
			return nil, Pack(LibEC, ECInvalidPrivateKey)
		}
		if sig, err = ecdsa.SignASN1(rand.Reader, priv, digest); err != nil {
			return nil, Pack(LibECDSA, ReasonInternalError)
		}

	case KeyTypeRSA:
		digest, st := digestOf(md, msg)
		if !st.OK() {
			return nil, st
		}
		var err error
		switch pad {
		case PaddingPKCS1:
			sig, err = rsa.SignPKCS1v15(rand.Reader, k.rsa, cryptoHash(md), digest)
		case PaddingPSS:
			sig, err = rsa.SignPSS(rand.Reader, k.rsa, cryptoHash(md), digest,
				&rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
		default:
			return nil, Pack(LibEVP, EVPInvalidPaddingMode)
		}
		if err != nil {
			return nil, Pack(LibRSA, ReasonInternalError)
		}

	default:
		return nil, Pack(LibEVP, EVPOperationNotSupported)
	}
	indicate(signApproved(k, md))
	return sig, StatusOK
}

// PKeyVerify mirrors EVP_DigestVerify.
func PKeyVerify(h Handle, md DigestID, pad Padding, msg, sig []byte) Status {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return st
	}
	switch k.typ {
	case KeyTypeEd25519:
		if md != DigestUnknown {
			return Pack(LibEVP, EVPInvalidDigestType)
		}
		if len(sig) != Ed25519SignatureLen || !ed25519.Verify(ed25519.PublicKey(k.pub), msg, sig) {
			return Pack(LibEVP, EVPInvalidSignature)
		}

	case KeyTypeEC:
		digest, st := digestOf(md, msg)
		if !st.OK() {
			return st
		}
		if k.curve == CurveSecp256k1 {
			pub, err := btcec.ParsePubKey(k.pub)
			if err != nil {
				return Pack(LibEC, ECPointIsNotOnCurve)
			}
			parsed, err := btcecdsa.ParseDERSignature(sig)
			if err != nil || !parsed.Verify(digest, pub) {
				return Pack(LibECDSA, ECDSABadSignature)
			}
			break
		}
		pub, err := ecdsa.ParseUncompressedPublicKey(ellipticCurve(k.curve), k.pub)
		if err != nil {
			return Pack(LibEC, ECPointIsNotOnCurve)
		}
		if !ecdsa.VerifyASN1(pub, digest, sig) {
			return Pack(LibECDSA, ECDSABadSignature)
		}

	case KeyTypeRSA:
		digest, st := digestOf(md, msg)
		if !st.OK() {
			return st
		}
		var err error
		switch pad {
		case PaddingPKCS1:
			err = rsa.VerifyPKCS1v15(k.rsaPub, cryptoHash(md), digest, sig)
		case PaddingPSS:
			err = rsa.VerifyPSS(k.rsaPub, cryptoHash(md), digest, sig,
				&rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash})
		default:
			return Pack(LibEVP, EVPInvalidPaddingMode)
		}
		if err != nil {
			return Pack(LibRSA, RSABadSignature)
		}

	default:
		return Pack(LibEVP, EVPOperationNotSupported)
	}
	indicate(signApproved(k, md))
	return StatusOK
}

// PKeyDerive mirrors EVP_PKEY_derive against a raw peer public key (32
// bytes for X25519, an uncompressed point for EC). EC output is the
// x-coordinate.
func PKeyDerive(h Handle, peer []byte) ([]byte, Status) {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return nil, st
	}
	if k.priv == nil {
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	switch k.typ {
	case KeyTypeX25519:
		if len(peer) != X25519KeyLen {
			return nil, Pack(LibEVP, EVPDecodeError)
		}
		out, err := curve25519.X25519(k.priv.bytes(), peer)
		if err != nil {
			return nil, Pack(LibEVP, EVPInvalidPeerKey)
		}
		indicate(false)
		return out, StatusOK

	case KeyTypeEC:
		if !ecValidPoint(k.curve, peer) {
			return nil, Pack(LibEC, ECPointIsNotOnCurve)
		}
		if k.curve == CurveSecp256k1 {
			pub, err := btcec.ParsePubKey(peer)
			if err != nil {
				return nil, Pack(LibEC, ECPointIsNotOnCurve)
			}
			var s btcec.ModNScalar
			s.SetByteSlice(k.priv.bytes())
			priv := btcec.PrivKeyFromScalar(&s)
			out := btcec.GenerateSharedSecret(priv, pub)
			priv.Zero()
			s.Zero()
			indicate(false)
			return out, StatusOK
		}
		curve := ecdhCurve(k.curve)
		priv, err := curve.NewPrivateKey(k.priv.bytes())
		if err != nil {
			return nil, Pack(LibEC, ECInvalidPrivateKey)
		}
		pub, err := curve.NewPublicKey(peer)
		if err != nil {
			return nil, Pack(LibEC, ECPointIsNotOnCurve)
		}
		out, err := priv.ECDH(pub)
		if err != nil {
			return nil, Pack(LibEVP, EVPInvalidPeerKey)
		}
		indicate(true)
		return out, StatusOK

	default:
		return nil, Pack(LibEVP, EVPOperationNotSupported)
	}
}
