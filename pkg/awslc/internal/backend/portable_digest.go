//go:build !(cgo && awslc)

package backend

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha3"
	"crypto/sha512"
	"encoding"
	"hash"
)

func hashFunc(id DigestID) func() hash.Hash {
	switch id {
	case DigestSHA1:
		return sha1.New
	case DigestSHA224:
		return sha256.New224
	case DigestSHA256:
		return sha256.New
	case DigestSHA384:
		return sha512.New384
	case DigestSHA512:
		return sha512.New
	case DigestSHA512_256:
		return sha512.New512_256
	case DigestSHA3_256:
		return func() hash.Hash { return sha3.New256() }
	case DigestSHA3_384:
		return func() hash.Hash { return sha3.New384() }
	case DigestSHA3_512:
		return func() hash.Hash { return sha3.New512() }
	default:
		return nil
	}
}

// digestApproved reports whether id is in the approved set for the service
// indicator. SHA-3 is not.
func digestApproved(id DigestID) bool {
	switch id {
	case DigestSHA1, DigestSHA224, DigestSHA256, DigestSHA384, DigestSHA512, DigestSHA512_256:
		return true
	default:
		return false
	}
}

func cloneHash(id DigestID, h hash.Hash) (hash.Hash, bool) {
	m, ok := h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, false
	}
	state, err := m.MarshalBinary()
	if err != nil {
		return nil, false
	}
	c := hashFunc(id)()
	u, ok := c.(encoding.BinaryUnmarshaler)
	if !ok || u.UnmarshalBinary(state) != nil {
		return nil, false
	}
	clear(state)
	return c, true
}

type digestCtx struct {
	id DigestID
	h  hash.Hash
}

func (d *digestCtx) free() {
	if d.h != nil {
		d.h.Reset()
		d.h = nil
	}
}

// DigestNew mirrors EVP_MD_CTX_new + EVP_DigestInit_ex.
func DigestNew(id DigestID) (Handle, Status) {
	f := hashFunc(id)
	if f == nil {
		return 0, Pack(LibDigest, EVPInvalidDigestType)
	}
	return put(&digestCtx{id: id, h: f()}), StatusOK
}

// DigestUpdate mirrors EVP_DigestUpdate.
func DigestUpdate(h Handle, data []byte) Status {
	d, st := lookup[*digestCtx](h)
	if !st.OK() {
		return st
	}
	d.h.Write(data)
	return StatusOK
}

// DigestFinal mirrors EVP_DigestFinal_ex. out must hold DigestSize bytes.
// The context must not be updated afterwards.
func DigestFinal(h Handle, out []byte) Status {
	d, st := lookup[*digestCtx](h)
	if !st.OK() {
		return st
	}
	if len(out) < DigestSize(d.id) {
		return Pack(LibDigest, EVPBufferTooSmall)
	}
	copy(out, d.h.Sum(nil))
	indicate(digestApproved(d.id))
	return StatusOK
}

// DigestCopy mirrors EVP_MD_CTX_copy_ex into a fresh context.
func DigestCopy(h Handle) (Handle, Status) {
	d, st := lookup[*digestCtx](h)
	if !st.OK() {
		return 0, st
	}
	c, ok := cloneHash(d.id, d.h)
	if !ok {
		return 0, Pack(LibDigest, ReasonInternalError)
	}
	return put(&digestCtx{id: d.id, h: c}), StatusOK
}

// DigestFree mirrors EVP_MD_CTX_free.
func DigestFree(h Handle) { del(h) }

// DigestOneShot mirrors EVP_Digest.
func DigestOneShot(id DigestID, data, out []byte) Status {
	f := hashFunc(id)
	if f == nil {
		return Pack(LibDigest, EVPInvalidDigestType)
	}
	if len(out) < DigestSize(id) {
		return Pack(LibDigest, EVPBufferTooSmall)
	}
	h := f()
	h.Write(data)
	copy(out, h.Sum(nil))
	indicate(digestApproved(id))
	return StatusOK
}
