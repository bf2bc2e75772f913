package backend

import (
	"testing"
	"unsafe"
)

func TestCryptoMutexLayout(t *testing.T) {
	var m CryptoMutex
	if got := unsafe.Sizeof(m); got != uintptr(cryptoMutexSize) {
		t.Fatalf("sizeof(CryptoMutex) = %d, want %d", got, cryptoMutexSize)
	}
	if got := unsafe.Alignof(m); got < 8 && unsafe.Sizeof(uintptr(0)) == 8 {
		t.Fatalf("alignof(CryptoMutex) = %d, want >= 8", got)
	}

	type embedded struct {
		flag bool
		mu   CryptoMutex
	}
	var e embedded
	if off := unsafe.Offsetof(e.mu); off%unsafe.Alignof(m) != 0 {
		t.Fatalf("embedded CryptoMutex misaligned at offset %d", off)
	}
}
