//go:build !linux && !darwin && !windows

package backend

// BSD pthread_rwlock_t is a pointer; 56 bytes covers it and the glibc
// layout used on the remaining Unix ports.
const cryptoMutexSize = 56
