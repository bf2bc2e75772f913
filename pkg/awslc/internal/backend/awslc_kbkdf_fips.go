//go:build cgo && awslc && fips

package backend

// KBKDFCtrHMAC is not part of the engine's FIPS module.
func KBKDFCtrHMAC(DigestID, []byte, []byte, []byte) Status {
	return Pack(LibEVP, EVPOperationNotSupported)
}
