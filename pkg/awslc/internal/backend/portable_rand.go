//go:build !(cgo && awslc)

package backend

import (
	"crypto/aes"
	"crypto/rand"
)

// RandBytes fills out from the engine RNG.
func RandBytes(out []byte) Status {
	if _, err := rand.Read(out); err != nil {
		return Pack(LibRAND, ReasonInternalError)
	}
	indicate(true)
	return StatusOK
}

// ctrDRBG is SP 800-90A CTR_DRBG with AES-256 and no derivation function,
// matching the engine's CTR_DRBG_STATE.
type ctrDRBG struct {
	key     [32]byte
	v       [16]byte
	counter uint64
}

const drbgReseedInterval = 1 << 48

func (d *ctrDRBG) free() {
	clear(d.key[:])
	clear(d.v[:])
}

func (d *ctrDRBG) incV() {
	for i := len(d.v) - 1; i >= 0; i-- {
		d.v[i]++
		if d.v[i] != 0 {
			return
		}
	}
}

func (d *ctrDRBG) update(provided *[DRBGEntropyLen]byte) {
	block, err := aes.NewCipher(d.key[:])
	if err != nil {
		panic("backend: aes-256 key schedule failed")
	}
	var temp [DRBGEntropyLen]byte
	for off := 0; off < len(temp); off += aes.BlockSize {
		d.incV()
		block.Encrypt(temp[off:off+aes.BlockSize], d.v[:])
	}
	if provided != nil {
		for i := range temp {
			temp[i] ^= provided[i]
		}
	}
	copy(d.key[:], temp[:32])
	copy(d.v[:], temp[32:])
	clear(temp[:])
}

func padSeed(entropy, extra []byte) *[DRBGEntropyLen]byte {
	var seed [DRBGEntropyLen]byte
	copy(seed[:], entropy)
	for i, b := range extra {
		seed[i] ^= b
	}
	return &seed
}

// DRBGNew mirrors CTR_DRBG_new. entropy must be DRBGEntropyLen bytes and
// personalization at most that long.
func DRBGNew(entropy, personalization []byte) (Handle, Status) {
	if len(entropy) != DRBGEntropyLen || len(personalization) > DRBGEntropyLen {
		return 0, Pack(LibRAND, ReasonInternalError)
	}
	d := &ctrDRBG{}
	seed := padSeed(entropy, personalization)
	d.update(seed)
	clear(seed[:])
	d.counter = 1
	indicate(true)
	return put(d), StatusOK
}

// DRBGReseed mirrors CTR_DRBG_reseed.
func DRBGReseed(h Handle, entropy, additional []byte) Status {
	d, st := lookup[*ctrDRBG](h)
	if !st.OK() {
		return st
	}
	if len(entropy) != DRBGEntropyLen || len(additional) > DRBGEntropyLen {
		return Pack(LibRAND, ReasonInternalError)
	}
	seed := padSeed(entropy, additional)
	d.update(seed)
	clear(seed[:])
	d.counter = 1
	indicate(true)
	return StatusOK
}

// DRBGGenerate mirrors CTR_DRBG_generate. At most DRBGMaxGenerateLen bytes
// per call.
func DRBGGenerate(h Handle, out, additional []byte) Status {
	d, st := lookup[*ctrDRBG](h)
	if !st.OK() {
		return st
	}
	if len(out) > DRBGMaxGenerateLen || len(additional) > DRBGEntropyLen {
		return Pack(LibRAND, ReasonInternalError)
	}
	if d.counter > drbgReseedInterval {
		return Pack(LibRAND, ReasonInternalError)
	}
	var add *[DRBGEntropyLen]byte
	if len(additional) > 0 {
		add = padSeed(nil, additional)
		d.update(add)
	}
	block, err := aes.NewCipher(d.key[:])
	if err != nil {
		return Pack(LibCipher, CipherBadKeyLength)
	}
	var tmp [aes.BlockSize]byte
	for off := 0; off < len(out); off += aes.BlockSize {
		d.incV()
		block.Encrypt(tmp[:], d.v[:])
		copy(out[off:], tmp[:])
	}
	clear(tmp[:])
	d.update(add)
	d.counter++
	indicate(true)
	return StatusOK
}

// DRBGFree mirrors CTR_DRBG_free.
func DRBGFree(h Handle) { del(h) }
