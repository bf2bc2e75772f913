//go:build !(cgo && awslc)

package backend

import (
	"bytes"
	"crypto/x509"
	encoding_asn1 "encoding/asn1"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	oidRSAEncryption = encoding_asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	oidECPublicKey   = encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}
	oidEd25519       = encoding_asn1.ObjectIdentifier{1, 3, 101, 112}
	oidX25519        = encoding_asn1.ObjectIdentifier{1, 3, 101, 110}

	oidP256      = encoding_asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	oidP384      = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 34}
	oidP521      = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 35}
	oidSecp256k1 = encoding_asn1.ObjectIdentifier{1, 3, 132, 0, 10}
)

var (
	tagECParams    = asn1.Tag(0).Constructed().ContextSpecific()
	tagECPublic    = asn1.Tag(1).Constructed().ContextSpecific()
	tagAttributes  = asn1.Tag(0).Constructed().ContextSpecific()
	tagOnePublic   = asn1.Tag(1).ContextSpecific()
	errPKCS8Decode = Pack(LibEVP, EVPDecodeError)
	errECDecode    = Pack(LibEC, ECDecodeError)
)

func curveOID(c Curve) encoding_asn1.ObjectIdentifier {
	switch c {
	case CurveP256:
		return oidP256
	case CurveP384:
		return oidP384
	case CurveP521:
		return oidP521
	case CurveSecp256k1:
		return oidSecp256k1
	default:
		return nil
	}
}

func curveFromOID(oid encoding_asn1.ObjectIdentifier) Curve {
	for _, c := range []Curve{CurveP256, CurveP384, CurveP521, CurveSecp256k1} {
		if oid.Equal(curveOID(c)) {
			return c
		}
	}
	return CurveUnknown
}

// parsePKCS8 mirrors EVP_parse_private_key: PrivateKeyInfo (v1) and
// OneAsymmetricKey (v2, RFC 5958) are both accepted.
func parsePKCS8(der []byte) (*pkey, Status) {
	input := cryptobyte.String(der)
	var (
		pki, algID, inner cryptobyte.String
		version           int64
		oid               encoding_asn1.ObjectIdentifier
	)
	if !input.ReadASN1(&pki, asn1.SEQUENCE) || !input.Empty() ||
		!pki.ReadASN1Integer(&version) ||
		!pki.ReadASN1(&algID, asn1.SEQUENCE) ||
		!algID.ReadASN1ObjectIdentifier(&oid) ||
		!pki.ReadASN1(&inner, asn1.OCTET_STRING) {
		return nil, errPKCS8Decode
	}
	if version != 0 && version != 1 {
		return nil, errPKCS8Decode
	}
	var (
		pubField cryptobyte.String
		hasPub   bool
	)
	if !pki.SkipOptionalASN1(tagAttributes) ||
		!pki.ReadOptionalASN1(&pubField, &hasPub, tagOnePublic) ||
		!pki.Empty() {
		return nil, errPKCS8Decode
	}
	if hasPub && version != 1 {
		return nil, errPKCS8Decode
	}

	switch {
	case oid.Equal(oidEd25519), oid.Equal(oidX25519):
		typ := KeyTypeEd25519
		if oid.Equal(oidX25519) {
			typ = KeyTypeX25519
		}
		var raw cryptobyte.String
		if !algID.Empty() || !inner.ReadASN1(&raw, asn1.OCTET_STRING) || !inner.Empty() || len(raw) != 32 {
			return nil, errPKCS8Decode
		}
		k, st := newRawPrivate(typ, CurveUnknown, raw)
		if !st.OK() {
			return nil, st
		}
		if hasPub {
			var unused uint8
			if !pubField.ReadUint8(&unused) || unused != 0 || !bytes.Equal(pubField, k.pub) {
				k.free()
				return nil, errPKCS8Decode
			}
		}
		return k, StatusOK

	case oid.Equal(oidECPublicKey):
		var curveID encoding_asn1.ObjectIdentifier
		if !algID.ReadASN1ObjectIdentifier(&curveID) || !algID.Empty() {
			return nil, errPKCS8Decode
		}
		c := curveFromOID(curveID)
		if c == CurveUnknown {
			return nil, Pack(LibEC, ECUnknownGroup)
		}
		return parseECPrivateKey(inner, c)

	case oid.Equal(oidRSAEncryption):
		if !algID.Empty() && !algID.SkipASN1(asn1.NULL) {
			return nil, errPKCS8Decode
		}
		return parseRSAPrivateKey(inner)

	default:
		return nil, Pack(LibEVP, EVPUnsupportedAlgorithm)
	}
}

// parseECPrivateKey mirrors EC_KEY_parse_private_key (RFC 5915). want is
// the group from the enclosing structure, or CurveUnknown when the
// parameters must come from the key itself.
func parseECPrivateKey(der []byte, want Curve) (*pkey, Status) {
	input := cryptobyte.String(der)
	var (
		seq, d, params, pubField cryptobyte.String
		version                  int64
		hasParams, hasPub        bool
	)
	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1Integer(&version) || version != 1 ||
		!seq.ReadASN1(&d, asn1.OCTET_STRING) ||
		!seq.ReadOptionalASN1(&params, &hasParams, tagECParams) ||
		!seq.ReadOptionalASN1(&pubField, &hasPub, tagECPublic) ||
		!seq.Empty() {
		return nil, errECDecode
	}
	c := want
	if hasParams {
		var oid encoding_asn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&oid) || !params.Empty() {
			return nil, errECDecode
		}
		got := curveFromOID(oid)
		if got == CurveUnknown {
			return nil, Pack(LibEC, ECUnknownGroup)
		}
		if want != CurveUnknown && got != want {
			return nil, Pack(LibEC, ECGroupMismatch)
		}
		c = got
	}
	if c == CurveUnknown {
		return nil, Pack(LibEC, ECUnknownGroup)
	}
	n := c.ScalarLen()
	if len(d) > n {
		return nil, Pack(LibEC, ECInvalidPrivateKey)
	}
	scalar := make([]byte, n)
	copy(scalar[n-len(d):], d)
	k, st := newRawPrivate(KeyTypeEC, c, scalar)
	Cleanse(scalar)
	if !st.OK() {
		return nil, st
	}
	if hasPub {
		var pt []byte
		if !pubField.ReadASN1BitStringAsBytes(&pt) || !pubField.Empty() {
			k.free()
			return nil, errECDecode
		}
		if len(pt) == 0 || !bytes.Equal(pt, k.pub) {
			k.free()
			return nil, Pack(LibEC, ECPublicKeyValidationFailed)
		}
	}
	return k, StatusOK
}

func parseRSAPrivateKey(der []byte) (*pkey, Status) {
	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, Pack(LibRSA, RSABadEncoding)
	}
	return &pkey{typ: KeyTypeRSA, rsa: priv, rsaPub: &priv.PublicKey}, StatusOK
}

// parseSPKI mirrors EVP_parse_public_key.
func parseSPKI(der []byte) (*pkey, Status) {
	input := cryptobyte.String(der)
	var (
		spki, algID cryptobyte.String
		oid         encoding_asn1.ObjectIdentifier
		pub         []byte
	)
	if !input.ReadASN1(&spki, asn1.SEQUENCE) || !input.Empty() ||
		!spki.ReadASN1(&algID, asn1.SEQUENCE) ||
		!algID.ReadASN1ObjectIdentifier(&oid) ||
		!spki.ReadASN1BitStringAsBytes(&pub) ||
		!spki.Empty() {
		return nil, errPKCS8Decode
	}
	switch {
	case oid.Equal(oidEd25519):
		return newRawPublic(KeyTypeEd25519, CurveUnknown, pub)
	case oid.Equal(oidX25519):
		return newRawPublic(KeyTypeX25519, CurveUnknown, pub)
	case oid.Equal(oidECPublicKey):
		var curveID encoding_asn1.ObjectIdentifier
		if !algID.ReadASN1ObjectIdentifier(&curveID) || !algID.Empty() {
			return nil, errPKCS8Decode
		}
		return newRawPublic(KeyTypeEC, curveFromOID(curveID), pub)
	case oid.Equal(oidRSAEncryption):
		return newRawPublic(KeyTypeRSA, CurveUnknown, pub)
	default:
		return nil, Pack(LibEVP, EVPUnknownPublicKeyType)
	}
}

func addAlgorithm(b *cryptobyte.Builder, k *pkey) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		switch k.typ {
		case KeyTypeEd25519:
			b.AddASN1ObjectIdentifier(oidEd25519)
		case KeyTypeX25519:
			b.AddASN1ObjectIdentifier(oidX25519)
		case KeyTypeEC:
			b.AddASN1ObjectIdentifier(oidECPublicKey)
			b.AddASN1ObjectIdentifier(curveOID(k.curve))
		case KeyTypeRSA:
			b.AddASN1ObjectIdentifier(oidRSAEncryption)
			b.AddASN1NULL()
		}
	})
}

// marshalPKCS8 mirrors EVP_marshal_private_key, which always writes v1.
func marshalPKCS8(k *pkey) ([]byte, Status) {
	var inner []byte
	switch k.typ {
	case KeyTypeEd25519, KeyTypeX25519:
		b := cryptobyte.NewBuilder(nil)
		b.AddASN1OctetString(k.priv.bytes())
		inner = b.BytesOrPanic()
	case KeyTypeEC:
		inner = marshalECPrivateKey(k, false)
	case KeyTypeRSA:
		inner = x509.MarshalPKCS1PrivateKey(k.rsa)
	}
	defer Cleanse(inner)
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		addAlgorithm(b, k)
		b.AddASN1OctetString(inner)
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, Pack(LibEVP, EVPEncodeError)
	}
	return out, StatusOK
}

// marshalECPrivateKey mirrors EC_KEY_marshal_private_key. The group
// parameters are omitted inside PKCS#8, where the algorithm carries them.
func marshalECPrivateKey(k *pkey, withParams bool) []byte {
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(1)
		b.AddASN1OctetString(k.priv.bytes())
		if withParams {
			b.AddASN1(tagECParams, func(b *cryptobyte.Builder) {
				b.AddASN1ObjectIdentifier(curveOID(k.curve))
			})
		}
		b.AddASN1(tagECPublic, func(b *cryptobyte.Builder) {
			b.AddASN1BitString(k.pub)
		})
	})
	return b.BytesOrPanic()
}

// marshalSPKI mirrors EVP_marshal_public_key.
func marshalSPKI(k *pkey) ([]byte, Status) {
	pub, st := rawPublic(k)
	if !st.OK() {
		return nil, st
	}
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addAlgorithm(b, k)
		b.AddASN1BitString(pub)
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, Pack(LibEVP, EVPEncodeError)
	}
	return out, StatusOK
}
