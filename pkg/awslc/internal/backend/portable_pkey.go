//go:build !(cgo && awslc)

package backend

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/curve25519"
)

// pkey is the portable EVP_PKEY.
type pkey struct {
	typ   KeyType
	curve Curve
	// priv is the Ed25519 seed, X25519 scalar or EC scalar; nil for
	// public-only keys and for RSA.
	priv *secret
	// pub is the raw public key: 32 bytes for Ed25519/X25519, the
	// uncompressed point for EC. Unused for RSA.
	pub    []byte
	rsa    *rsa.PrivateKey
	rsaPub *rsa.PublicKey
}

func (k *pkey) free() {
	if k.priv != nil {
		k.priv.destroy()
		k.priv = nil
	}
	if k.rsa != nil {
		wipeBig(k.rsa.D)
		for _, p := range k.rsa.Primes {
			wipeBig(p)
		}
		wipeBig(k.rsa.Precomputed.Dp)
		wipeBig(k.rsa.Precomputed.Dq)
		wipeBig(k.rsa.Precomputed.Qinv)
		k.rsa = nil
	}
	k.rsaPub = nil
}

func wipeBig(x *big.Int) {
	if x == nil {
		return
	}
	clear(x.Bits())
	x.SetInt64(0)
}

func (k *pkey) hasPrivate() bool { return k.priv != nil || k.rsa != nil }

func ellipticCurve(c Curve) elliptic.Curve {
	switch c {
	case CurveP256:
		return elliptic.P256()
	case CurveP384:
		return elliptic.P384()
	case CurveP521:
		return elliptic.P521()
	default:
		return nil
	}
}

func ecdhCurve(c Curve) ecdh.Curve {
	switch c {
	case CurveP256:
		return ecdh.P256()
	case CurveP384:
		return ecdh.P384()
	case CurveP521:
		return ecdh.P521()
	default:
		return nil
	}
}

// ecPublicFromScalar returns d*G uncompressed, rejecting d outside [1, n-1].
func ecPublicFromScalar(c Curve, d []byte) ([]byte, bool) {
	if len(d) != c.ScalarLen() {
		return nil, false
	}
	if c == CurveSecp256k1 {
		var s btcec.ModNScalar
		if s.SetByteSlice(d) || s.IsZero() {
			s.Zero()
			return nil, false
		}
		priv := btcec.PrivKeyFromScalar(&s)
		pub := priv.PubKey().SerializeUncompressed()
		priv.Zero()
		s.Zero()
		return pub, true
	}
	curve := ellipticCurve(c)
	if curve == nil {
		return nil, false
	}
	priv, err := ecdsa.ParseRawPrivateKey(curve, d)
	if err != nil {
		return nil, false
	}
	pub, err := priv.PublicKey.Bytes()
	if err != nil {
		return nil, false
	}
	return pub, true
}

// ecValidPoint reports whether p is an uncompressed point on c.
func ecValidPoint(c Curve, p []byte) bool {
	if len(p) != c.UncompressedPointLen() || p[0] != 4 {
		return false
	}
	if c == CurveSecp256k1 {
		_, err := btcec.ParsePubKey(p)
		return err == nil
	}
	curve := ellipticCurve(c)
	if curve == nil {
		return false
	}
	_, err := ecdsa.ParseUncompressedPublicKey(curve, p)
	return err == nil
}

// newRawPrivate copies raw into a new key, deriving the public half.
func newRawPrivate(typ KeyType, c Curve, raw []byte) (*pkey, Status) {
	switch typ {
	case KeyTypeEd25519:
		if len(raw) != Ed25519SeedLen {
			return nil, Pack(LibEVP, EVPDecodeError)
		}
		sk := ed25519.NewKeyFromSeed(raw)
		pub := append([]byte(nil), sk[32:]...)
		Cleanse(sk)
		return &pkey{typ: typ, priv: copySecret(raw), pub: pub}, StatusOK
	case KeyTypeX25519:
		if len(raw) != X25519KeyLen {
			return nil, Pack(LibEVP, EVPDecodeError)
		}
		pub, err := curve25519.X25519(raw, curve25519.Basepoint)
		if err != nil {
			return nil, Pack(LibEVP, EVPDecodeError)
		}
		return &pkey{typ: typ, priv: copySecret(raw), pub: pub}, StatusOK
	case KeyTypeEC:
		if c.ScalarLen() == 0 {
			return nil, Pack(LibEC, ECUnknownGroup)
		}
		if len(raw) != c.ScalarLen() {
			return nil, Pack(LibEC, ECDecodeError)
		}
		pub, ok := ecPublicFromScalar(c, raw)
		if !ok {
			return nil, Pack(LibEC, ECInvalidPrivateKey)
		}
		return &pkey{typ: typ, curve: c, priv: copySecret(raw), pub: pub}, StatusOK
	default:
		return nil, Pack(LibEVP, EVPUnsupportedAlgorithm)
	}
}

// newRawPublic copies raw into a new public-only key.
func newRawPublic(typ KeyType, c Curve, raw []byte) (*pkey, Status) {
	switch typ {
	case KeyTypeEd25519, KeyTypeX25519:
		if len(raw) != 32 {
			return nil, Pack(LibEVP, EVPDecodeError)
		}
		return &pkey{typ: typ, pub: append([]byte(nil), raw...)}, StatusOK
	case KeyTypeEC:
		if c.ScalarLen() == 0 {
			return nil, Pack(LibEC, ECUnknownGroup)
		}
		if len(raw) == 0 || raw[0] != 4 {
			return nil, Pack(LibEC, ECInvalidEncoding)
		}
		if !ecValidPoint(c, raw) {
			return nil, Pack(LibEC, ECPointIsNotOnCurve)
		}
		return &pkey{typ: typ, curve: c, pub: append([]byte(nil), raw...)}, StatusOK
	case KeyTypeRSA:
		pub, err := x509.ParsePKCS1PublicKey(raw)
		if err != nil {
			return nil, Pack(LibRSA, RSABadEncoding)
		}
		return &pkey{typ: typ, rsaPub: pub}, StatusOK
	default:
		return nil, Pack(LibEVP, EVPUnsupportedAlgorithm)
	}
}

func rawPublic(k *pkey) ([]byte, Status) {
	if k.typ == KeyTypeRSA {
		return x509.MarshalPKCS1PublicKey(k.rsaPub), StatusOK
	}
	return append([]byte(nil), k.pub...), StatusOK
}

func generate(typ KeyType, c Curve, bits int) (*pkey, Status) {
	switch typ {
	case KeyTypeEd25519, KeyTypeX25519:
		seed := make([]byte, 32)
		if _, err := rand.Read(seed); err != nil {
			return nil, Pack(LibRAND, ReasonInternalError)
		}
		k, st := newRawPrivate(typ, CurveUnknown, seed)
		Cleanse(seed)
		return k, st
	case KeyTypeEC:
		var d []byte
		switch c {
		case CurveSecp256k1:
			priv, err := btcec.NewPrivateKey()
			if err != nil {
				return nil, Pack(LibRAND, ReasonInternalError)
			}
			d = priv.Serialize()
			priv.Zero()
		default:
			curve := ellipticCurve(c)
			if curve == nil {
				return nil, Pack(LibEC, ECUnknownGroup)
			}
			priv, err := ecdsa.GenerateKey(curve, rand.Reader)
			if err != nil {
				return nil, Pack(LibEC, ReasonInternalError)
			}
			if d, err = priv.Bytes(); err != nil {
				return nil, Pack(LibEC, ReasonInternalError)
			}
		}
		k, st := newRawPrivate(typ, c, d)
		Cleanse(d)
		return k, st
	case KeyTypeRSA:
		if bits < 1024 {
			return nil, Pack(LibRSA, RSAKeySizeTooSmall)
		}
		priv, err := rsa.GenerateKey(rand.Reader, bits)
		if err != nil {
			return nil, Pack(LibRSA, RSABadRSAParameters)
		}
		return &pkey{typ: typ, rsa: priv, rsaPub: &priv.PublicKey}, StatusOK
	default:
		return nil, Pack(LibEVP, EVPUnsupportedAlgorithm)
	}
}

// PKeyGenerate mirrors EVP_PKEY_keygen. curve applies to KeyTypeEC and bits
// to KeyTypeRSA.
func PKeyGenerate(typ KeyType, c Curve, bits int) (Handle, Status) {
	k, st := generate(typ, c, bits)
	if !st.OK() {
		return 0, st
	}
	indicate(typ == KeyTypeEd25519 || typ == KeyTypeEC && c != CurveSecp256k1 || typ == KeyTypeRSA && bits >= 2048)
	return put(k), StatusOK
}

// PKeyFromRawPrivate mirrors EVP_PKEY_new_raw_private_key, and
// EC_KEY_oct2priv for KeyTypeEC.
func PKeyFromRawPrivate(typ KeyType, c Curve, raw []byte) (Handle, Status) {
	k, st := newRawPrivate(typ, c, raw)
	if !st.OK() {
		return 0, st
	}
	return put(k), StatusOK
}

// PKeyFromRawPublic mirrors EVP_PKEY_new_raw_public_key, EC_POINT_oct2point
// for KeyTypeEC and RSA_public_key_from_bytes for KeyTypeRSA.
func PKeyFromRawPublic(typ KeyType, c Curve, raw []byte) (Handle, Status) {
	k, st := newRawPublic(typ, c, raw)
	if !st.OK() {
		return 0, st
	}
	return put(k), StatusOK
}

// PKeyParsePrivate mirrors EVP_parse_private_key.
func PKeyParsePrivate(der []byte) (Handle, Status) {
	k, st := parsePKCS8(der)
	if !st.OK() {
		return 0, st
	}
	return put(k), StatusOK
}

// PKeyParseECPrivate mirrors EC_KEY_parse_private_key with the group taken
// from the key's own parameters.
func PKeyParseECPrivate(der []byte) (Handle, Status) {
	k, st := parseECPrivateKey(der, CurveUnknown)
	if !st.OK() {
		return 0, st
	}
	return put(k), StatusOK
}

// PKeyParseRSAPrivate mirrors RSA_private_key_from_bytes (PKCS#1).
func PKeyParseRSAPrivate(der []byte) (Handle, Status) {
	k, st := parseRSAPrivateKey(der)
	if !st.OK() {
		return 0, st
	}
	return put(k), StatusOK
}

// PKeyParsePublic mirrors EVP_parse_public_key (X.509 SPKI).
func PKeyParsePublic(der []byte) (Handle, Status) {
	k, st := parseSPKI(der)
	if !st.OK() {
		return 0, st
	}
	return put(k), StatusOK
}

// PKeyMarshalPrivate mirrors EVP_marshal_private_key.
func PKeyMarshalPrivate(h Handle) ([]byte, Status) {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return nil, st
	}
	if !k.hasPrivate() {
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	return marshalPKCS8(k)
}

// PKeyMarshalECPrivate mirrors EC_KEY_marshal_private_key with parameters.
func PKeyMarshalECPrivate(h Handle) ([]byte, Status) {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return nil, st
	}
	if k.typ != KeyTypeEC {
		return nil, Pack(LibEVP, EVPExpectingAnECKey)
	}
	if !k.hasPrivate() {
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	return marshalECPrivateKey(k, true), StatusOK
}

// PKeyMarshalPublic mirrors EVP_marshal_public_key.
func PKeyMarshalPublic(h Handle) ([]byte, Status) {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return nil, st
	}
	return marshalSPKI(k)
}

// PKeyRawPublic returns the raw public key: 32 bytes for Ed25519/X25519,
// the uncompressed point for EC and PKCS#1 RSAPublicKey DER for RSA.
func PKeyRawPublic(h Handle) ([]byte, Status) {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return nil, st
	}
	return rawPublic(k)
}

// PKeyRawPrivate returns the seed or big-endian scalar. RSA keys have no
// raw private form.
func PKeyRawPrivate(h Handle) ([]byte, Status) {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return nil, st
	}
	if k.priv == nil {
		if k.typ == KeyTypeRSA {
			return nil, Pack(LibEVP, EVPOperationNotSupported)
		}
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	return append([]byte(nil), k.priv.bytes()...), StatusOK
}

// PKeyType mirrors EVP_PKEY_id.
func PKeyType(h Handle) KeyType {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return KeyTypeNone
	}
	return k.typ
}

// PKeyCurve reports the group of an EC key.
func PKeyCurve(h Handle) Curve {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return CurveUnknown
	}
	return k.curve
}

// PKeyBits mirrors EVP_PKEY_bits.
func PKeyBits(h Handle) int {
	k, st := lookup[*pkey](h)
	if !st.OK() {
		return 0
	}
	switch k.typ {
	case KeyTypeRSA:
		return k.rsaPub.N.BitLen()
	case KeyTypeEC:
		if k.curve == CurveP521 {
			return 521
		}
		return 8 * k.curve.ScalarLen()
	case KeyTypeEd25519, KeyTypeX25519:
		return 253
	default:
		return 0
	}
}

// PKeyFree mirrors EVP_PKEY_free.
func PKeyFree(h Handle) { del(h) }
