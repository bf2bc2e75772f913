//go:build cgo && awslc

package backend

/*
#include "awslc_shim.h"
*/
import "C"

import "unsafe"

func evpkey(h Handle) *C.EVP_PKEY { return (*C.EVP_PKEY)(unsafe.Pointer(uintptr(h))) }

func newKey(p *C.EVP_PKEY, errc C.uint32_t) (Handle, Status) {
	if p == nil {
		return 0, Status(errc)
	}
	return track(unsafe.Pointer(p)), StatusOK
}

func curveNID(c Curve) C.int {
	nid, err := CurveToNID(c)
	if err != nil {
		return 0
	}
	return C.int(nid)
}

// PKeyGenerate mirrors EVP_PKEY_keygen.
func PKeyGenerate(typ KeyType, c Curve, bits int) (Handle, Status) {
	if typ == KeyTypeEC && c.ScalarLen() == 0 {
		return 0, Pack(LibEC, ECUnknownGroup)
	}
	var errc C.uint32_t
	before := indicatorBefore()
	h, st := newKey(C.awslc_go_pkey_generate(C.int(typ), curveNID(c), C.int(bits), &errc), errc)
	return h, indicated(before, st)
}

// PKeyFromRawPrivate mirrors EVP_PKEY_new_raw_private_key, and
// EC_KEY_set_private_key for KeyTypeEC.
func PKeyFromRawPrivate(typ KeyType, c Curve, raw []byte) (Handle, Status) {
	if typ == KeyTypeEC && len(raw) != c.ScalarLen() {
		return 0, Pack(LibEC, ECDecodeError)
	}
	var errc C.uint32_t
	p, n := cbuf(raw)
	return newKey(C.awslc_go_pkey_raw_private(C.int(typ), curveNID(c), p, n, &errc), errc)
}

// PKeyFromRawPublic mirrors EVP_PKEY_new_raw_public_key, EC_POINT_oct2point
// for KeyTypeEC and RSA_public_key_from_bytes for KeyTypeRSA.
func PKeyFromRawPublic(typ KeyType, c Curve, raw []byte) (Handle, Status) {
	if typ == KeyTypeEC && c.ScalarLen() == 0 {
		return 0, Pack(LibEC, ECUnknownGroup)
	}
	var errc C.uint32_t
	p, n := cbuf(raw)
	return newKey(C.awslc_go_pkey_raw_public(C.int(typ), curveNID(c), p, n, &errc), errc)
}

func parse(kind int, der []byte) (Handle, Status) {
	var errc C.uint32_t
	p, n := cbuf(der)
	return newKey(C.awslc_go_pkey_parse(C.int(kind), p, n, &errc), errc)
}

// PKeyParsePrivate mirrors EVP_parse_private_key.
func PKeyParsePrivate(der []byte) (Handle, Status) { return parse(0, der) }

// PKeyParseECPrivate mirrors EC_KEY_parse_private_key.
func PKeyParseECPrivate(der []byte) (Handle, Status) { return parse(1, der) }

// PKeyParseRSAPrivate mirrors RSA_private_key_from_bytes.
func PKeyParseRSAPrivate(der []byte) (Handle, Status) { return parse(2, der) }

// PKeyParsePublic mirrors EVP_parse_public_key.
func PKeyParsePublic(der []byte) (Handle, Status) { return parse(3, der) }

func marshal(kind int, h Handle) ([]byte, Status) {
	var (
		errc C.uint32_t
		n    C.size_t
	)
	p := C.awslc_go_pkey_marshal(C.int(kind), evpkey(h), &n, &errc)
	if p == nil {
		return nil, Status(errc)
	}
	return takeBytes(p, n), StatusOK
}

// PKeyMarshalPrivate mirrors EVP_marshal_private_key.
func PKeyMarshalPrivate(h Handle) ([]byte, Status) {
	if C.awslc_go_pkey_has_private(evpkey(h)) == 0 {
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	return marshal(0, h)
}

// PKeyMarshalECPrivate mirrors EC_KEY_marshal_private_key with parameters.
func PKeyMarshalECPrivate(h Handle) ([]byte, Status) {
	if PKeyType(h) != KeyTypeEC {
		return nil, Pack(LibEVP, EVPExpectingAnECKey)
	}
	if C.awslc_go_pkey_has_private(evpkey(h)) == 0 {
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	return marshal(1, h)
}

// PKeyMarshalPublic mirrors EVP_marshal_public_key.
func PKeyMarshalPublic(h Handle) ([]byte, Status) { return marshal(2, h) }

// PKeyRawPublic returns the raw public key: 32 bytes for Ed25519/X25519,
// the uncompressed point for EC and PKCS#1 RSAPublicKey DER for RSA.
func PKeyRawPublic(h Handle) ([]byte, Status) {
	var (
		errc C.uint32_t
		n    C.size_t
	)
	p := C.awslc_go_pkey_raw_public_bytes(evpkey(h), &n, &errc)
	if p == nil {
		return nil, Status(errc)
	}
	return takeBytes(p, n), StatusOK
}

// PKeyRawPrivate returns the seed or big-endian scalar.
func PKeyRawPrivate(h Handle) ([]byte, Status) {
	var (
		errc C.uint32_t
		n    C.size_t
	)
	p := C.awslc_go_pkey_raw_private_bytes(evpkey(h), &n, &errc)
	if p == nil {
		return nil, Status(errc)
	}
	return takeBytes(p, n), StatusOK
}

// PKeyType mirrors EVP_PKEY_id.
func PKeyType(h Handle) KeyType { return KeyType(C.EVP_PKEY_id(evpkey(h))) }

// PKeyCurve reports the group of an EC key.
func PKeyCurve(h Handle) Curve {
	c, err := NIDToCurve(int(C.awslc_go_pkey_curve_nid(evpkey(h))))
	if err != nil {
		return CurveUnknown
	}
	return c
}

// PKeyBits mirrors EVP_PKEY_bits.
func PKeyBits(h Handle) int { return int(C.EVP_PKEY_bits(evpkey(h))) }

// PKeySign mirrors EVP_DigestSign.
func PKeySign(h Handle, md DigestID, pad Padding, msg []byte) ([]byte, Status) {
	if C.awslc_go_pkey_has_private(evpkey(h)) == 0 {
		return nil, Pack(LibEVP, EVPNotAPrivateKey)
	}
	var (
		errc C.uint32_t
		n    C.size_t
	)
	pm, mn := cbuf(msg)
	before := indicatorBefore()
	p := C.awslc_go_pkey_sign(evpkey(h), C.int(md), C.int(pad), pm, mn, &n, &errc)
	if p == nil {
		return nil, Status(errc)
	}
	return takeBytes(p, n), indicated(before, StatusOK)
}

// PKeyVerify mirrors EVP_DigestVerify.
func PKeyVerify(h Handle, md DigestID, pad Padding, msg, sig []byte) Status {
	pm, mn := cbuf(msg)
	ps, sn := cbuf(sig)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_pkey_verify(evpkey(h), C.int(md), C.int(pad), pm, mn, ps, sn)))
}

// PKeyDerive mirrors EVP_PKEY_derive against a raw peer public key.
func PKeyDerive(h Handle, peer []byte) ([]byte, Status) {
	var (
		errc C.uint32_t
		n    C.size_t
	)
	pp, pn := cbuf(peer)
	before := indicatorBefore()
	p := C.awslc_go_pkey_derive(evpkey(h), pp, pn, &n, &errc)
	if p == nil {
		return nil, Status(errc)
	}
	return takeBytes(p, n), indicated(before, StatusOK)
}

// PKeyFree mirrors EVP_PKEY_free.
func PKeyFree(h Handle) {
	C.EVP_PKEY_free(evpkey(h))
	untrack()
}
