package backend

import "unsafe"

// SRWLOCK: union { void *handle; }.
const cryptoMutexSize = unsafe.Sizeof(uintptr(0))
