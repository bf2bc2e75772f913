//go:build cgo && awslc

package backend

/*
#include "awslc_shim.h"
*/
import "C"

import "unsafe"

func mdctx(h Handle) *C.EVP_MD_CTX { return (*C.EVP_MD_CTX)(unsafe.Pointer(uintptr(h))) }

// DigestNew mirrors EVP_MD_CTX_new + EVP_DigestInit_ex.
func DigestNew(id DigestID) (Handle, Status) {
	if DigestSize(id) == 0 {
		return 0, Pack(LibDigest, EVPInvalidDigestType)
	}
	var errc C.uint32_t
	ctx := C.awslc_go_digest_new(C.int(id), &errc)
	if ctx == nil {
		return 0, Status(errc)
	}
	return track(unsafe.Pointer(ctx)), StatusOK
}

// DigestUpdate mirrors EVP_DigestUpdate.
func DigestUpdate(h Handle, data []byte) Status {
	p, n := cbuf(data)
	return Status(C.awslc_go_digest_update(mdctx(h), p, n))
}

// DigestFinal mirrors EVP_DigestFinal_ex. out must hold the digest size.
func DigestFinal(h Handle, out []byte) Status {
	if len(out) < int(C.EVP_MD_CTX_size(mdctx(h))) {
		return Pack(LibDigest, EVPBufferTooSmall)
	}
	p, _ := cbuf(out)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_digest_final(mdctx(h), p)))
}

// DigestCopy mirrors EVP_MD_CTX_copy_ex into a fresh context.
func DigestCopy(h Handle) (Handle, Status) {
	var errc C.uint32_t
	ctx := C.awslc_go_digest_copy(mdctx(h), &errc)
	if ctx == nil {
		return 0, Status(errc)
	}
	return track(unsafe.Pointer(ctx)), StatusOK
}

// DigestFree mirrors EVP_MD_CTX_free.
func DigestFree(h Handle) {
	C.EVP_MD_CTX_free(mdctx(h))
	untrack()
}

// DigestOneShot mirrors EVP_Digest.
func DigestOneShot(id DigestID, data, out []byte) Status {
	size := DigestSize(id)
	if size == 0 {
		return Pack(LibDigest, EVPInvalidDigestType)
	}
	if len(out) < size {
		return Pack(LibDigest, EVPBufferTooSmall)
	}
	p, n := cbuf(data)
	po, _ := cbuf(out)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_digest(C.int(id), p, n, po)))
}

func hmacctx(h Handle) *C.HMAC_CTX { return (*C.HMAC_CTX)(unsafe.Pointer(uintptr(h))) }

// HMACNew mirrors HMAC_CTX_new + HMAC_Init_ex.
func HMACNew(id DigestID, key []byte) (Handle, Status) {
	if DigestSize(id) == 0 || id >= DigestSHA3_256 {
		return 0, Pack(LibHMAC, EVPInvalidDigestType)
	}
	var errc C.uint32_t
	p, n := cbuf(key)
	ctx := C.awslc_go_hmac_new(C.int(id), p, n, &errc)
	if ctx == nil {
		return 0, Status(errc)
	}
	return track(unsafe.Pointer(ctx)), StatusOK
}

// HMACUpdate mirrors HMAC_Update.
func HMACUpdate(h Handle, data []byte) Status {
	p, n := cbuf(data)
	return Status(C.awslc_go_hmac_update(hmacctx(h), p, n))
}

// HMACFinal mirrors HMAC_Final. out must hold the digest size.
func HMACFinal(h Handle, out []byte) Status {
	if len(out) < int(C.HMAC_size(hmacctx(h))) {
		return Pack(LibHMAC, EVPBufferTooSmall)
	}
	p, _ := cbuf(out)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_hmac_final(hmacctx(h), p)))
}

// HMACCopy mirrors HMAC_CTX_copy_ex into a fresh context.
func HMACCopy(h Handle) (Handle, Status) {
	var errc C.uint32_t
	ctx := C.awslc_go_hmac_copy(hmacctx(h), &errc)
	if ctx == nil {
		return 0, Status(errc)
	}
	return track(unsafe.Pointer(ctx)), StatusOK
}

// HMACFree mirrors HMAC_CTX_free.
func HMACFree(h Handle) {
	C.HMAC_CTX_free(hmacctx(h))
	untrack()
}
