package backend

// Handle identifies a native allocation (key, digest context, AEAD context,
// DRBG). The zero Handle is never issued.
type Handle uintptr

// Status is the engine's packed error code: library in the top byte, reason
// in the low 12 bits. The zero Status means success.
type Status uint32

// StatusOK is returned by every successful call.
const StatusOK Status = 0

// Pack mirrors ERR_PACK.
func Pack(lib, reason int) Status {
	return Status(uint32(lib&0xff)<<24 | uint32(reason&0xfff))
}

// OK reports whether the call succeeded.
func (s Status) OK() bool { return s == StatusOK }

// Lib mirrors ERR_GET_LIB.
func (s Status) Lib() int { return int(uint32(s) >> 24 & 0xff) }

// Reason mirrors ERR_GET_REASON.
func (s Status) Reason() int { return int(uint32(s) & 0xfff) }

// Library codes (ERR_LIB_*).
const (
	LibNone   = 1
	LibSys    = 2
	LibBN     = 3
	LibRSA    = 4
	LibEVP    = 6
	LibASN1   = 12
	LibCrypto = 14
	LibEC     = 15
	LibPKCS8  = 19
	LibRAND   = 21
	LibECDSA  = 26
	LibHMAC   = 28
	LibDigest = 29
	LibCipher = 30
	LibHKDF   = 31
)

// Common reasons (ERR_R_*).
const (
	ReasonFatal                   = 64
	ReasonMallocFailure           = 1 | ReasonFatal
	ReasonShouldNotHaveBeenCalled = 2 | ReasonFatal
	ReasonPassedNullParameter     = 3 | ReasonFatal
	ReasonInternalError           = 4 | ReasonFatal
	ReasonOverflow                = 5 | ReasonFatal
)

// CIPHER_R_*.
const (
	CipherBadDecrypt           = 101
	CipherBadKeyLength         = 102
	CipherBufferTooSmall       = 103
	CipherInvalidADSize        = 110
	CipherInvalidKeyLength     = 111
	CipherInvalidNonceSize     = 112
	CipherTooLarge             = 118
	CipherUnsupportedKeySize   = 121
	CipherUnsupportedNonceSize = 122
	CipherUnsupportedTagSize   = 123
)

// EVP_R_*.
const (
	EVPBufferTooSmall        = 100
	EVPDecodeError           = 102
	EVPDifferentKeyTypes     = 103
	EVPEncodeError           = 105
	EVPExpectingAnECKey      = 106
	EVPExpectingAnRSAKey     = 107
	EVPInvalidDigestType     = 111
	EVPInvalidKeybits        = 112
	EVPInvalidOperation      = 114
	EVPInvalidPaddingMode    = 115
	EVPOperationNotSupported = 125
	EVPUnknownPublicKeyType  = 127
	EVPUnsupportedAlgorithm  = 128
	EVPNotAPrivateKey        = 130
	EVPInvalidSignature      = 131
	EVPInvalidBufferSize     = 132
	EVPInvalidPeerKey        = 133
)

// EC_R_*.
const (
	ECInvalidEncoding           = 109
	ECInvalidPrivateKey         = 113
	ECPointIsNotOnCurve         = 120
	ECUnknownGroup              = 123
	ECDecodeError               = 128
	ECGroupMismatch             = 130
	ECPublicKeyValidationFailed = 132
)

// ECDSA_R_* and RSA_R_*.
const (
	ECDSABadSignature = 100
	ECDSAEncodeError  = 105

	RSABadEncoding      = 100
	RSABadEValue        = 101
	RSABadRSAParameters = 104
	RSABadSignature     = 105
	RSABadVersion       = 106
	RSAKeySizeTooSmall  = 117
)

// PKCS8_R_*, HKDF_R_* and RAND reasons used by the engines.
const (
	PKCS8DecodeError        = 102
	PKCS8UnknownAlgorithm   = 125
	PKCS8UnsupportedVersion = 130

	HKDFOutputTooLarge = 100

	RANDEntropyFailure = 100
)

// DigestID selects an EVP_MD.
type DigestID int

const (
	DigestUnknown DigestID = iota
	DigestSHA1
	DigestSHA224
	DigestSHA256
	DigestSHA384
	DigestSHA512
	DigestSHA512_256
	DigestSHA3_256
	DigestSHA3_384
	DigestSHA3_512
)

// DigestSize mirrors EVP_MD_size.
func DigestSize(id DigestID) int {
	switch id {
	case DigestSHA1:
		return 20
	case DigestSHA224:
		return 28
	case DigestSHA256, DigestSHA512_256, DigestSHA3_256:
		return 32
	case DigestSHA384, DigestSHA3_384:
		return 48
	case DigestSHA512, DigestSHA3_512:
		return 64
	default:
		return 0
	}
}

// DigestBlockSize mirrors EVP_MD_block_size.
func DigestBlockSize(id DigestID) int {
	switch id {
	case DigestSHA1, DigestSHA224, DigestSHA256:
		return 64
	case DigestSHA384, DigestSHA512, DigestSHA512_256:
		return 128
	case DigestSHA3_256:
		return 136
	case DigestSHA3_384:
		return 104
	case DigestSHA3_512:
		return 72
	default:
		return 0
	}
}

// AEADID selects an EVP_AEAD.
type AEADID int

const (
	AEADUnknown AEADID = iota
	AEADAES128GCM
	AEADAES192GCM
	AEADAES256GCM
	AEADChaCha20Poly1305
)

// AEADKeyLen mirrors EVP_AEAD_key_length.
func AEADKeyLen(id AEADID) int {
	switch id {
	case AEADAES128GCM:
		return 16
	case AEADAES192GCM:
		return 24
	case AEADAES256GCM, AEADChaCha20Poly1305:
		return 32
	default:
		return 0
	}
}

// AEADNonceLen mirrors EVP_AEAD_nonce_length.
func AEADNonceLen(id AEADID) int {
	if AEADKeyLen(id) == 0 {
		return 0
	}
	return 12
}

// AEADMaxOverhead mirrors EVP_AEAD_max_overhead.
func AEADMaxOverhead(id AEADID) int {
	if AEADKeyLen(id) == 0 {
		return 0
	}
	return 16
}

// KeyType mirrors the EVP_PKEY_* identifiers.
type KeyType int

const (
	KeyTypeNone    KeyType = 0
	KeyTypeRSA     KeyType = 6
	KeyTypeEC      KeyType = 408
	KeyTypeX25519  KeyType = 948
	KeyTypeEd25519 KeyType = 949
)

// Padding mirrors RSA_*_PADDING. PaddingNone is used for non-RSA keys.
type Padding int

const (
	PaddingNone  Padding = 0
	PaddingPKCS1 Padding = 1
	PaddingPSS   Padding = 6
)

// Fixed engine sizes.
const (
	Ed25519SeedLen      = 32
	Ed25519PublicKeyLen = 32
	Ed25519SignatureLen = 64
	X25519KeyLen        = 32

	DRBGEntropyLen     = 48
	DRBGMaxGenerateLen = 65536
)

// KBKDFAvailable reports whether KBKDFCtrHMAC is compiled in. The fips
// build leaves it out.
const KBKDFAvailable = !fipsBuild
