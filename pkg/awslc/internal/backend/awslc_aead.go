//go:build cgo && awslc

package backend

/*
#include "awslc_shim.h"
*/
import "C"

import "unsafe"

func aeadctx(h Handle) *C.EVP_AEAD_CTX { return (*C.EVP_AEAD_CTX)(unsafe.Pointer(uintptr(h))) }

// AEADNew mirrors EVP_AEAD_CTX_new.
func AEADNew(id AEADID, key []byte, tagLen int) (Handle, Status) {
	if AEADKeyLen(id) == 0 {
		return 0, Pack(LibCipher, CipherUnsupportedKeySize)
	}
	var errc C.uint32_t
	p, n := cbuf(key)
	ctx := C.awslc_go_aead_new(C.int(id), p, n, C.size_t(tagLen), &errc)
	if ctx == nil {
		return 0, Status(errc)
	}
	return track(unsafe.Pointer(ctx)), StatusOK
}

// AEADSeal mirrors EVP_AEAD_CTX_seal. out may alias in exactly.
func AEADSeal(h Handle, out, nonce, in, ad []byte) (int, Status) {
	var written C.size_t
	po, on := cbuf(out)
	pn, nn := cbuf(nonce)
	pi, il := cbuf(in)
	pa, an := cbuf(ad)
	before := indicatorBefore()
	st := indicated(before, Status(C.awslc_go_aead_seal(aeadctx(h), po, &written, on, pn, nn, pi, il, pa, an)))
	if !st.OK() {
		return 0, st
	}
	return int(written), StatusOK
}

// AEADOpen mirrors EVP_AEAD_CTX_open. On failure out holds no plaintext.
func AEADOpen(h Handle, out, nonce, in, ad []byte) (int, Status) {
	var written C.size_t
	po, on := cbuf(out)
	pn, nn := cbuf(nonce)
	pi, il := cbuf(in)
	pa, an := cbuf(ad)
	before := indicatorBefore()
	st := indicated(before, Status(C.awslc_go_aead_open(aeadctx(h), po, &written, on, pn, nn, pi, il, pa, an)))
	if !st.OK() {
		return 0, st
	}
	return int(written), StatusOK
}

// AEADFree mirrors EVP_AEAD_CTX_free.
func AEADFree(h Handle) {
	C.EVP_AEAD_CTX_free(aeadctx(h))
	untrack()
}

// AESEncryptBlock mirrors AES_set_encrypt_key followed by AES_encrypt,
// encrypting block in place.
func AESEncryptBlock(key []byte, block *[16]byte) Status {
	pk, kn := cbuf(key)
	return Status(C.awslc_go_aes_encrypt_block(pk, kn, (*C.uint8_t)(unsafe.Pointer(&block[0]))))
}
