//go:build !(cgo && awslc)

package backend

import (
	"crypto/aes"
	"crypto/cipher"

	"golang.org/x/crypto/chacha20poly1305"
)

type aeadCtx struct {
	id AEADID
	a  cipher.AEAD
}

func (c *aeadCtx) free() { c.a = nil }

// AEADNew mirrors EVP_AEAD_CTX_new. tagLen must be AEADMaxOverhead(id).
func AEADNew(id AEADID, key []byte, tagLen int) (Handle, Status) {
	want := AEADKeyLen(id)
	if want == 0 {
		return 0, Pack(LibCipher, CipherUnsupportedKeySize)
	}
	if len(key) != want {
		return 0, Pack(LibCipher, CipherBadKeyLength)
	}
	if tagLen != AEADMaxOverhead(id) {
		return 0, Pack(LibCipher, CipherUnsupportedTagSize)
	}
	var (
		a   cipher.AEAD
		err error
	)
	switch id {
	case AEADChaCha20Poly1305:
		a, err = chacha20poly1305.New(key)
	default:
		var block cipher.Block
		block, err = aes.NewCipher(key)
		if err == nil {
			a, err = cipher.NewGCM(block)
		}
	}
	if err != nil {
		return 0, Pack(LibCipher, CipherBadKeyLength)
	}
	return put(&aeadCtx{id: id, a: a}), StatusOK
}

func aeadApproved(id AEADID) bool { return id != AEADChaCha20Poly1305 }

// AEADSeal mirrors EVP_AEAD_CTX_seal. out may alias in exactly. It returns
// the number of bytes written.
func AEADSeal(h Handle, out, nonce, in, ad []byte) (int, Status) {
	c, st := lookup[*aeadCtx](h)
	if !st.OK() {
		return 0, st
	}
	if len(nonce) != c.a.NonceSize() {
		return 0, Pack(LibCipher, CipherInvalidNonceSize)
	}
	n := len(in) + c.a.Overhead()
	if len(out) < n {
		return 0, Pack(LibCipher, CipherBufferTooSmall)
	}
	c.a.Seal(out[:0], nonce, in, ad)
	indicate(aeadApproved(c.id))
	return n, StatusOK
}

// AEADOpen mirrors EVP_AEAD_CTX_open. On failure out holds no plaintext.
func AEADOpen(h Handle, out, nonce, in, ad []byte) (int, Status) {
	c, st := lookup[*aeadCtx](h)
	if !st.OK() {
		return 0, st
	}
	if len(nonce) != c.a.NonceSize() {
		return 0, Pack(LibCipher, CipherInvalidNonceSize)
	}
	if len(in) < c.a.Overhead() {
		return 0, Pack(LibCipher, CipherBadDecrypt)
	}
	n := len(in) - c.a.Overhead()
	if len(out) < n {
		return 0, Pack(LibCipher, CipherBufferTooSmall)
	}
	if _, err := c.a.Open(out[:0], nonce, in, ad); err != nil {
		clear(out[:n])
		return 0, Pack(LibCipher, CipherBadDecrypt)
	}
	indicate(aeadApproved(c.id))
	return n, StatusOK
}

// AEADFree mirrors EVP_AEAD_CTX_free.
func AEADFree(h Handle) { del(h) }

// AESEncryptBlock mirrors AES_set_encrypt_key followed by AES_encrypt,
// encrypting block in place.
func AESEncryptBlock(key []byte, block *[16]byte) Status {
	c, err := aes.NewCipher(key)
	if err != nil {
		return Pack(LibCipher, CipherBadKeyLength)
	}
	c.Encrypt(block[:], block[:])
	return StatusOK
}
