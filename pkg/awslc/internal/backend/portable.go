//go:build !(cgo && awslc)

package backend

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/awnumar/memguard"
)

// object is anything the portable engine hands out behind a Handle.
type object interface {
	free()
}

var (
	mu   sync.Mutex
	next Handle = 1
	reg         = map[Handle]object{}
)

func put(o object) Handle {
	mu.Lock()
	h := next
	next++
	reg[h] = o
	mu.Unlock()
	return h
}

func lookup[T object](h Handle) (T, Status) {
	mu.Lock()
	o, ok := reg[h]
	mu.Unlock()
	t, isT := o.(T)
	if !ok || !isT {
		var zero T
		return zero, Pack(LibCrypto, ReasonPassedNullParameter)
	}
	return t, StatusOK
}

// del frees the object behind h. Freeing a handle twice is a programming
// error in the layer above and panics, as a double free would corrupt a
// native heap.
func del(h Handle) {
	mu.Lock()
	o, ok := reg[h]
	delete(reg, h)
	mu.Unlock()
	if !ok {
		panic("backend: free of unknown or already freed handle")
	}
	o.free()
}

// LiveHandles reports how many engine allocations are outstanding.
func LiveHandles() int {
	mu.Lock()
	defer mu.Unlock()
	return len(reg)
}

var initCount atomic.Int32

// LibraryInit performs one-time engine setup. In fips builds it runs a
// known-answer self test first.
func LibraryInit() Status {
	initCount.Add(1)
	if fipsBuild && !selfTest() {
		return Pack(LibCrypto, ReasonInternalError)
	}
	return StatusOK
}

// InitCount reports how many times LibraryInit ran in this process.
func InitCount() int { return int(initCount.Load()) }

var kat = []byte("abc")

const katSHA256 = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func selfTest() bool {
	want, _ := hex.DecodeString(katSHA256)
	got := sha256.Sum256(kat)
	return bytes.Equal(got[:], want)
}

// Version identifies the engine.
func Version() string { return "portable (" + runtime.Version() + ")" }

// FIPSMode reports whether the engine runs in FIPS mode.
func FIPSMode() bool { return fipsBuild }

// MemCmp mirrors CRYPTO_memcmp: zero iff a and b are equal. Lengths must
// match.
func MemCmp(a, b []byte) int {
	if len(a) != len(b) {
		return 1
	}
	return 1 - subtle.ConstantTimeCompare(a, b)
}

// Cleanse mirrors OPENSSL_cleanse.
func Cleanse(b []byte) {
	memguard.WipeBytes(b)
	runtime.KeepAlive(b)
}

var mutexes sync.Map

func rwmutex(m *CryptoMutex) *sync.RWMutex {
	v, _ := mutexes.LoadOrStore(m, new(sync.RWMutex))
	return v.(*sync.RWMutex)
}

// MutexInit (re)initializes m to the unlocked state.
func MutexInit(m *CryptoMutex) {
	*m = CryptoMutex{}
	mutexes.Store(m, new(sync.RWMutex))
}

func MutexLockRead(m *CryptoMutex)    { rwmutex(m).RLock() }
func MutexUnlockRead(m *CryptoMutex)  { rwmutex(m).RUnlock() }
func MutexLockWrite(m *CryptoMutex)   { rwmutex(m).Lock() }
func MutexUnlockWrite(m *CryptoMutex) { rwmutex(m).Unlock() }

// MutexCleanup releases engine resources held by m.
func MutexCleanup(m *CryptoMutex) { mutexes.Delete(m) }
