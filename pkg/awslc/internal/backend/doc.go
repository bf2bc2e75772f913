// Package backend is the typed mirror of the native crypto engine's C ABI.
//
// Two builds satisfy the same exported surface:
//
//   - cgo && awslc: thin cgo shims over libcrypto (AWS-LC). Opaque engine
//     pointers (EVP_MD_CTX, HMAC_CTX, EVP_AEAD_CTX, EVP_PKEY, CTR_DRBG_STATE)
//     travel to Go as Handle values and never leave this package tree.
//   - everything else: a portable engine with the same handle, status and
//     ownership semantics, implemented on Go's crypto packages.
//
// Nothing here validates caller input beyond what the engine itself checks.
// Safety (length checks, single ownership, error remapping) is added by the
// packages above this one.
package backend
