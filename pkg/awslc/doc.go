// Package awslc is a memory-safe bridge over a native, FIPS-oriented
// cryptography engine. Algorithms live in subpackages:
//
//	digest     SHA-1 (legacy), SHA-2 and SHA-3 digests
//	hmac       HMAC signing and constant-time verification
//	aead       AES-GCM and ChaCha20-Poly1305 with nonce sequences
//	agreement  X25519 and NIST-curve ECDH
//	ed25519    Ed25519 key pairs
//	ecdsa      ECDSA over P-256, P-384, P-521 and secp256k1
//	rsa        RSA PKCS#1 v1.5 and PSS
//	signature  algorithm-dispatched public key verification
//	pkcs8      PKCS#8 document inspection
//	kdf        HKDF and SP 800-108 counter-mode KBKDF
//	rand       engine randomness and CTR-DRBG
//
// Building with -tags awslc (cgo enabled) links AWS-LC's libcrypto; every
// other build uses a portable engine on Go's crypto packages. Adding the
// fips tag selects the engine's FIPS mode.
//
// The engine is initialized lazily on the first operation. Init may be
// called up front to surface initialization errors early.
//
// Errors are closed kinds usable with errors.Is: ErrInvalidInput,
// ErrVerificationFailed, ErrKeyRejected (see KeyRejected for the reason),
// ErrUnsupported, ErrLibraryInit and ErrUnspecified. Engine diagnostics
// never appear in error text.
//
// Some operations take a caller-supplied randomness source and ignore it,
// drawing from the engine instead. IgnoresCallerRandomness lists them.
package awslc
