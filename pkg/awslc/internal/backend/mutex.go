package backend

// CryptoMutex shadows the engine's CRYPTO_MUTEX so it can be embedded by
// value in Go structs. Its size and alignment match the platform's native
// layout. The zero value is a valid unlocked mutex; MutexInit is only
// needed to reinitialize one. A CryptoMutex must not be copied after first
// use.
type CryptoMutex struct {
	_      [0]uint64
	opaque [cryptoMutexSize]byte
}
