//go:build !(cgo && awslc)

package backend

import (
	"crypto/hmac"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"
)

func kdfDigest(id DigestID) Status {
	switch id {
	case DigestSHA1, DigestSHA224, DigestSHA256, DigestSHA384, DigestSHA512, DigestSHA512_256:
		return StatusOK
	default:
		return Pack(LibHKDF, EVPInvalidDigestType)
	}
}

// HKDF mirrors HKDF(): extract then expand into out.
func HKDF(id DigestID, out, secret, salt, info []byte) Status {
	if st := kdfDigest(id); !st.OK() {
		return st
	}
	if len(out) > 255*DigestSize(id) {
		return Pack(LibHKDF, HKDFOutputTooLarge)
	}
	if _, err := io.ReadFull(hkdf.New(hashFunc(id), secret, salt, info), out); err != nil {
		return Pack(LibHKDF, ReasonInternalError)
	}
	indicate(true)
	return StatusOK
}

// HKDFExtract mirrors HKDF_extract.
func HKDFExtract(id DigestID, secret, salt []byte) ([]byte, Status) {
	if st := kdfDigest(id); !st.OK() {
		return nil, st
	}
	prk := hkdf.Extract(hashFunc(id), secret, salt)
	indicate(true)
	return prk, StatusOK
}

// HKDFExpand mirrors HKDF_expand.
func HKDFExpand(id DigestID, out, prk, info []byte) Status {
	if st := kdfDigest(id); !st.OK() {
		return st
	}
	if len(out) > 255*DigestSize(id) {
		return Pack(LibHKDF, HKDFOutputTooLarge)
	}
	if _, err := io.ReadFull(hkdf.Expand(hashFunc(id), prk, info), out); err != nil {
		return Pack(LibHKDF, ReasonInternalError)
	}
	indicate(true)
	return StatusOK
}

// KBKDFCtrHMAC mirrors KBKDF_ctr_hmac: SP 800-108 counter mode with a
// 32-bit big-endian counter prefixed to info. It is not part of the fips
// build.
func KBKDFCtrHMAC(id DigestID, out, secret, info []byte) Status {
	if fipsBuild {
		return Pack(LibEVP, EVPOperationNotSupported)
	}
	switch id {
	case DigestSHA224, DigestSHA256, DigestSHA384, DigestSHA512:
	default:
		return Pack(LibHMAC, EVPInvalidDigestType)
	}
	size := DigestSize(id)
	if len(out) == 0 || uint64(len(out)) > uint64(size)*0xffffffff {
		return Pack(LibEVP, EVPInvalidBufferSize)
	}
	mac := hmac.New(hashFunc(id), secret)
	var ctr [4]byte
	var block []byte
	for i, done := uint32(1), 0; done < len(out); i++ {
		binary.BigEndian.PutUint32(ctr[:], i)
		mac.Reset()
		mac.Write(ctr[:])
		mac.Write(info)
		block = mac.Sum(block[:0])
		done += copy(out[done:], block)
	}
	Cleanse(block)
	indicate(false)
	return StatusOK
}
