package backend

// glibc: union { double alignment; uint8_t padding[3*sizeof(int) +
// 5*sizeof(unsigned) + 16 + 8]; }. 64-bit musl's pthread_rwlock_t is also
// 56 bytes.
const cryptoMutexSize = 3*4 + 5*4 + 16 + 8
