//go:build !(cgo && awslc)

package backend

import "hash"

// hmacCtx is RFC 2104 HMAC kept as two hash states so it can be copied
// mid-stream the way HMAC_CTX_copy_ex does.
type hmacCtx struct {
	id    DigestID
	inner hash.Hash
	opad  *secret
}

func (c *hmacCtx) free() {
	if c.inner != nil {
		c.inner.Reset()
		c.inner = nil
	}
	if c.opad != nil {
		c.opad.destroy()
		c.opad = nil
	}
}

func hmacApproved(id DigestID) bool {
	return digestApproved(id)
}

// HMACNew mirrors HMAC_CTX_new + HMAC_Init_ex.
func HMACNew(id DigestID, key []byte) (Handle, Status) {
	f := hashFunc(id)
	if f == nil || id >= DigestSHA3_256 {
		return 0, Pack(LibHMAC, EVPInvalidDigestType)
	}
	block := DigestBlockSize(id)
	k := make([]byte, block)
	if len(key) > block {
		kh := f()
		kh.Write(key)
		copy(k, kh.Sum(nil))
	} else {
		copy(k, key)
	}
	ipad := make([]byte, block)
	opad := make([]byte, block)
	for i := range k {
		ipad[i] = k[i] ^ 0x36
		opad[i] = k[i] ^ 0x5c
	}
	Cleanse(k)
	inner := f()
	inner.Write(ipad)
	Cleanse(ipad)
	return put(&hmacCtx{id: id, inner: inner, opad: newSecret(opad)}), StatusOK
}

// HMACUpdate mirrors HMAC_Update.
func HMACUpdate(h Handle, data []byte) Status {
	c, st := lookup[*hmacCtx](h)
	if !st.OK() {
		return st
	}
	c.inner.Write(data)
	return StatusOK
}

// HMACFinal mirrors HMAC_Final. out must hold DigestSize bytes.
func HMACFinal(h Handle, out []byte) Status {
	c, st := lookup[*hmacCtx](h)
	if !st.OK() {
		return st
	}
	if len(out) < DigestSize(c.id) {
		return Pack(LibHMAC, EVPBufferTooSmall)
	}
	outer := hashFunc(c.id)()
	outer.Write(c.opad.bytes())
	outer.Write(c.inner.Sum(nil))
	copy(out, outer.Sum(nil))
	indicate(hmacApproved(c.id))
	return StatusOK
}

// HMACCopy mirrors HMAC_CTX_copy_ex into a fresh context.
func HMACCopy(h Handle) (Handle, Status) {
	c, st := lookup[*hmacCtx](h)
	if !st.OK() {
		return 0, st
	}
	inner, ok := cloneHash(c.id, c.inner)
	if !ok {
		return 0, Pack(LibHMAC, ReasonInternalError)
	}
	return put(&hmacCtx{id: c.id, inner: inner, opad: copySecret(c.opad.bytes())}), StatusOK
}

// HMACFree mirrors HMAC_CTX_free.
func HMACFree(h Handle) { del(h) }
