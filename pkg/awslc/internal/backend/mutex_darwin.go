package backend

// pthread_rwlock_t: long __sig + char __opaque[192].
const cryptoMutexSize = 8 + 192
