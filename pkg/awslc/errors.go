package awslc

import (
	"context"
	"errors"
	"fmt"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

var (
	// ErrUnspecified reports an engine failure of unknown cause.
	ErrUnspecified = errors.New("awslc: unspecified error")

	// ErrInvalidInput reports a malformed or mis-sized argument.
	ErrInvalidInput = errors.New("awslc: invalid input")

	// ErrVerificationFailed reports a signature or tag that did not check.
	ErrVerificationFailed = errors.New("awslc: verification failed")

	// ErrKeyRejected reports key material that was not accepted. The
	// concrete error is a *KeyRejected carrying the reason.
	ErrKeyRejected = errors.New("awslc: key rejected")

	// ErrUnsupported reports an algorithm or operation this build lacks.
	ErrUnsupported = errors.New("awslc: unsupported")

	// ErrLibraryInit reports that the engine failed to initialize. It is
	// permanent for the process.
	ErrLibraryInit = errors.New("awslc: library initialization failed")
)

// Key rejection reasons.
const (
	ReasonInvalidEncoding        = "InvalidEncoding"
	ReasonUnsupportedVersion     = "UnsupportedVersion"
	ReasonWrongAlgorithm         = "WrongAlgorithm"
	ReasonInconsistentComponents = "InconsistentComponents"
	ReasonInvalidComponent       = "InvalidComponent"
	ReasonTooSmall               = "TooSmall"
	ReasonTooLarge               = "TooLarge"
	ReasonUnexpectedError        = "UnexpectedError"
)

// KeyRejected is returned when key material is refused.
type KeyRejected struct {
	Reason string
}

func (e *KeyRejected) Error() string { return "awslc: key rejected: " + e.Reason }

// Is makes errors.Is(err, ErrKeyRejected) hold for every reason.
func (e *KeyRejected) Is(target error) bool { return target == ErrKeyRejected }

// Error wraps an error kind with the API operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("awslc: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fail wraps kind as the failure of op and counts it.
func Fail(op string, kind error) error {
	settings().metrics.IncError(kindName(kind))
	return &Error{Op: op, Err: kind}
}

// Reject is Fail with a *KeyRejected of the given reason.
func Reject(op, reason string) error {
	return Fail(op, &KeyRejected{Reason: reason})
}

func kindName(err error) string {
	var kr *KeyRejected
	switch {
	case errors.As(err, &kr):
		return "key_rejected"
	case errors.Is(err, ErrVerificationFailed):
		return "verification_failed"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnsupported):
		return "unsupported"
	case errors.Is(err, ErrLibraryInit):
		return "library_init"
	default:
		return "unspecified"
	}
}

// RemapStatus converts an engine status into an error kind. It returns nil
// for success. Unclassified statuses become ErrUnspecified and are logged
// at debug level with their numeric codes only.
//
// This is exported for use by the algorithm subpackages.
func RemapStatus(op string, st backend.Status) error {
	if st.OK() {
		return nil
	}
	kind := classify(st)
	if kind == ErrUnspecified {
		settings().logger.Debug(context.Background(), "unclassified engine status",
			"op", op, "lib", st.Lib(), "reason", st.Reason())
	}
	return Fail(op, kind)
}

func classify(st backend.Status) error {
	lib, reason := st.Lib(), st.Reason()
	switch lib {
	case backend.LibCipher:
		switch reason {
		case backend.CipherBadDecrypt:
			return ErrVerificationFailed
		case backend.CipherBadKeyLength, backend.CipherInvalidKeyLength,
			backend.CipherInvalidNonceSize, backend.CipherUnsupportedNonceSize,
			backend.CipherUnsupportedKeySize, backend.CipherUnsupportedTagSize,
			backend.CipherBufferTooSmall, backend.CipherTooLarge, backend.CipherInvalidADSize:
			return ErrInvalidInput
		}
	case backend.LibEVP:
		switch reason {
		case backend.EVPInvalidSignature:
			return ErrVerificationFailed
		case backend.EVPDecodeError:
			return &KeyRejected{Reason: ReasonInvalidEncoding}
		case backend.EVPDifferentKeyTypes, backend.EVPExpectingAnECKey, backend.EVPExpectingAnRSAKey:
			return &KeyRejected{Reason: ReasonWrongAlgorithm}
		case backend.EVPUnsupportedAlgorithm, backend.EVPOperationNotSupported,
			backend.EVPUnknownPublicKeyType, backend.EVPInvalidDigestType,
			backend.EVPInvalidPaddingMode:
			return ErrUnsupported
		case backend.EVPBufferTooSmall, backend.EVPInvalidBufferSize,
			backend.EVPInvalidPeerKey, backend.EVPNotAPrivateKey, backend.EVPInvalidKeybits:
			return ErrInvalidInput
		}
	case backend.LibEC:
		switch reason {
		case backend.ECUnknownGroup:
			return ErrUnsupported
		case backend.ECGroupMismatch:
			return &KeyRejected{Reason: ReasonWrongAlgorithm}
		case backend.ECInvalidPrivateKey:
			return &KeyRejected{Reason: ReasonInvalidComponent}
		case backend.ECPublicKeyValidationFailed:
			return &KeyRejected{Reason: ReasonInconsistentComponents}
		case backend.ECDecodeError, backend.ECInvalidEncoding, backend.ECPointIsNotOnCurve:
			return &KeyRejected{Reason: ReasonInvalidEncoding}
		}
	case backend.LibECDSA:
		if reason == backend.ECDSABadSignature {
			return ErrVerificationFailed
		}
	case backend.LibRSA:
		switch reason {
		case backend.RSABadSignature:
			return ErrVerificationFailed
		case backend.RSAKeySizeTooSmall:
			return &KeyRejected{Reason: ReasonTooSmall}
		case backend.RSABadEValue, backend.RSABadRSAParameters:
			return &KeyRejected{Reason: ReasonInvalidComponent}
		case backend.RSABadEncoding, backend.RSABadVersion:
			return &KeyRejected{Reason: ReasonInvalidEncoding}
		}
	case backend.LibPKCS8:
		switch reason {
		case backend.PKCS8UnsupportedVersion:
			return &KeyRejected{Reason: ReasonUnsupportedVersion}
		case backend.PKCS8UnknownAlgorithm:
			return ErrUnsupported
		case backend.PKCS8DecodeError:
			return &KeyRejected{Reason: ReasonInvalidEncoding}
		}
	case backend.LibASN1:
		return &KeyRejected{Reason: ReasonInvalidEncoding}
	case backend.LibHKDF:
		switch reason {
		case backend.HKDFOutputTooLarge:
			return ErrInvalidInput
		case backend.EVPInvalidDigestType:
			return ErrUnsupported
		}
	case backend.LibHMAC, backend.LibDigest:
		switch reason {
		case backend.EVPInvalidDigestType:
			return ErrUnsupported
		case backend.EVPBufferTooSmall:
			return ErrInvalidInput
		}
	}
	return ErrUnspecified
}
