//go:build cgo && awslc && !fips

package backend

/*
#include "awslc_shim.h"

static inline uint32_t awslc_go_kbkdf(int id, uint8_t *out, size_t out_len, const uint8_t *secret,
                                      size_t secret_len, const uint8_t *info, size_t info_len) {
  return KBKDF_ctr_hmac(out, out_len, awslc_go_md(id), secret, secret_len, info, info_len)
             ? 0
             : awslc_go_err();
}
*/
import "C"

// KBKDFCtrHMAC mirrors KBKDF_ctr_hmac.
func KBKDFCtrHMAC(id DigestID, out, secret, info []byte) Status {
	switch id {
	case DigestSHA224, DigestSHA256, DigestSHA384, DigestSHA512:
	default:
		return Pack(LibHMAC, EVPInvalidDigestType)
	}
	po, on := cbuf(out)
	ps, sn := cbuf(secret)
	pi, in := cbuf(info)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_kbkdf(C.int(id), po, on, ps, sn, pi, in)))
}
