//go:build cgo && awslc

package backend

/*
#include "awslc_shim.h"
*/
import "C"

func kdfDigest(id DigestID) Status {
	switch id {
	case DigestSHA1, DigestSHA224, DigestSHA256, DigestSHA384, DigestSHA512, DigestSHA512_256:
		return StatusOK
	default:
		return Pack(LibHKDF, EVPInvalidDigestType)
	}
}

// HKDF mirrors HKDF().
func HKDF(id DigestID, out, secret, salt, info []byte) Status {
	if st := kdfDigest(id); !st.OK() {
		return st
	}
	po, on := cbuf(out)
	ps, sn := cbuf(secret)
	pt, tn := cbuf(salt)
	pi, in := cbuf(info)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_hkdf(C.int(id), po, on, ps, sn, pt, tn, pi, in)))
}

// HKDFExtract mirrors HKDF_extract.
func HKDFExtract(id DigestID, secret, salt []byte) ([]byte, Status) {
	if st := kdfDigest(id); !st.OK() {
		return nil, st
	}
	prk := make([]byte, C.EVP_MAX_MD_SIZE)
	var n C.size_t
	po, _ := cbuf(prk)
	ps, sn := cbuf(secret)
	pt, tn := cbuf(salt)
	before := indicatorBefore()
	if st := indicated(before, Status(C.awslc_go_hkdf_extract(C.int(id), po, &n, ps, sn, pt, tn))); !st.OK() {
		return nil, st
	}
	return prk[:n], StatusOK
}

// HKDFExpand mirrors HKDF_expand.
func HKDFExpand(id DigestID, out, prk, info []byte) Status {
	if st := kdfDigest(id); !st.OK() {
		return st
	}
	po, on := cbuf(out)
	pp, pn := cbuf(prk)
	pi, in := cbuf(info)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_hkdf_expand(C.int(id), po, on, pp, pn, pi, in)))
}
