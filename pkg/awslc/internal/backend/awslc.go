//go:build cgo && awslc

package backend

/*
#cgo CFLAGS: -I${SRCDIR}/../../../../build/aws-lc/include -Wno-deprecated-declarations
#cgo LDFLAGS: -L${SRCDIR}/../../../../build/aws-lc/lib -L${SRCDIR}/../../../../build/aws-lc/lib64 -lcrypto -lpthread
#include "awslc_shim.h"
*/
import "C"

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// The shadow must match the engine's CRYPTO_MUTEX exactly.
var (
	_ [cryptoMutexSize - unsafe.Sizeof(C.CRYPTO_MUTEX{})]struct{}
	_ [unsafe.Sizeof(C.CRYPTO_MUTEX{}) - cryptoMutexSize]struct{}
)

var (
	live      atomic.Int64
	initCount atomic.Int32
	zeroByte  [1]byte
)

func track(p unsafe.Pointer) Handle {
	live.Add(1)
	return Handle(uintptr(p))
}

func untrack() { live.Add(-1) }

// LiveHandles reports how many engine allocations made through this package
// are outstanding.
func LiveHandles() int { return int(live.Load()) }

// cbuf returns a non-nil pointer for b, so empty inputs never pass NULL.
func cbuf(b []byte) (*C.uint8_t, C.size_t) {
	if len(b) == 0 {
		return (*C.uint8_t)(unsafe.Pointer(&zeroByte[0])), 0
	}
	return (*C.uint8_t)(unsafe.Pointer(&b[0])), C.size_t(len(b))
}

// takeBytes copies engine-allocated memory into Go, then cleanses and frees
// it. The engine pointer must not be used afterwards.
func takeBytes(p *C.uint8_t, n C.size_t) []byte {
	if p == nil {
		return nil
	}
	out := C.GoBytes(unsafe.Pointer(p), C.int(n))
	C.OPENSSL_cleanse(unsafe.Pointer(p), n)
	C.OPENSSL_free(unsafe.Pointer(p))
	return out
}

// LibraryInit mirrors CRYPTO_library_init.
func LibraryInit() Status {
	initCount.Add(1)
	C.CRYPTO_library_init()
	if fipsBuild && C.FIPS_mode() != 1 {
		return Pack(LibCrypto, ReasonInternalError)
	}
	return StatusOK
}

// InitCount reports how many times LibraryInit ran in this process.
func InitCount() int { return int(initCount.Load()) }

// Version identifies the engine.
func Version() string { return C.GoString(C.OpenSSL_version(C.OPENSSL_VERSION)) }

// FIPSMode mirrors FIPS_mode.
func FIPSMode() bool { return C.FIPS_mode() == 1 }

// indicatorBefore mirrors FIPS_service_indicator_before_call. The engine's
// counter is thread-local; callers pin the OS thread across a check.
func indicatorBefore() C.uint64_t { return C.FIPS_service_indicator_before_call() }

// indicated records whether the service that produced st moved the engine's
// counter past before. Outside fips builds the engine approves nothing.
func indicated(before C.uint64_t, st Status) Status {
	if st.OK() {
		indicate(fipsBuild && C.FIPS_service_indicator_after_call() != before)
	}
	return st
}

// SetLockedSecrets is a no-op: the engine owns key memory.
func SetLockedSecrets(bool) {}

// MemCmp mirrors CRYPTO_memcmp. Lengths must match.
func MemCmp(a, b []byte) int {
	if len(a) != len(b) {
		return 1
	}
	pa, n := cbuf(a)
	pb, _ := cbuf(b)
	return int(C.CRYPTO_memcmp(unsafe.Pointer(pa), unsafe.Pointer(pb), n))
}

// Cleanse mirrors OPENSSL_cleanse.
func Cleanse(b []byte) {
	if len(b) == 0 {
		return
	}
	C.OPENSSL_cleanse(unsafe.Pointer(&b[0]), C.size_t(len(b)))
	runtime.KeepAlive(b)
}

func cmutex(m *CryptoMutex) *C.CRYPTO_MUTEX { return (*C.CRYPTO_MUTEX)(unsafe.Pointer(m)) }

func MutexInit(m *CryptoMutex)        { C.CRYPTO_MUTEX_init(cmutex(m)) }
func MutexLockRead(m *CryptoMutex)    { C.CRYPTO_MUTEX_lock_read(cmutex(m)) }
func MutexUnlockRead(m *CryptoMutex)  { C.CRYPTO_MUTEX_unlock_read(cmutex(m)) }
func MutexLockWrite(m *CryptoMutex)   { C.CRYPTO_MUTEX_lock_write(cmutex(m)) }
func MutexUnlockWrite(m *CryptoMutex) { C.CRYPTO_MUTEX_unlock_write(cmutex(m)) }
func MutexCleanup(m *CryptoMutex)     { C.CRYPTO_MUTEX_cleanup(cmutex(m)) }

// RandBytes mirrors RAND_bytes.
func RandBytes(out []byte) Status {
	p, n := cbuf(out)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_rand(p, n)))
}

// DRBGNew mirrors CTR_DRBG_new.
func DRBGNew(entropy, personalization []byte) (Handle, Status) {
	if len(entropy) != DRBGEntropyLen || len(personalization) > DRBGEntropyLen {
		return 0, Pack(LibRAND, ReasonInternalError)
	}
	var errc C.uint32_t
	pe, _ := cbuf(entropy)
	pp, pn := cbuf(personalization)
	before := indicatorBefore()
	d := C.awslc_go_drbg_new(pe, pp, pn, &errc)
	if d == nil {
		return 0, Status(errc)
	}
	return track(unsafe.Pointer(d)), indicated(before, StatusOK)
}

func drbg(h Handle) *C.CTR_DRBG_STATE { return (*C.CTR_DRBG_STATE)(unsafe.Pointer(uintptr(h))) }

// DRBGReseed mirrors CTR_DRBG_reseed.
func DRBGReseed(h Handle, entropy, additional []byte) Status {
	if len(entropy) != DRBGEntropyLen || len(additional) > DRBGEntropyLen {
		return Pack(LibRAND, ReasonInternalError)
	}
	pe, _ := cbuf(entropy)
	pa, an := cbuf(additional)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_drbg_reseed(drbg(h), pe, pa, an)))
}

// DRBGGenerate mirrors CTR_DRBG_generate.
func DRBGGenerate(h Handle, out, additional []byte) Status {
	if len(out) > DRBGMaxGenerateLen || len(additional) > DRBGEntropyLen {
		return Pack(LibRAND, ReasonInternalError)
	}
	po, on := cbuf(out)
	pa, an := cbuf(additional)
	before := indicatorBefore()
	return indicated(before, Status(C.awslc_go_drbg_generate(drbg(h), po, on, pa, an)))
}

// DRBGFree mirrors CTR_DRBG_free.
func DRBGFree(h Handle) {
	C.CTR_DRBG_free(drbg(h))
	untrack()
}
