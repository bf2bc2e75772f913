package backend

import "errors"

// Curve identifies a named EC group.
type Curve int

const (
	CurveUnknown Curve = iota
	CurveP256
	CurveP384
	CurveP521
	CurveSecp256k1
)

func (c Curve) String() string {
	switch c {
	case CurveP256:
		return "P-256"
	case CurveP384:
		return "P-384"
	case CurveP521:
		return "P-521"
	case CurveSecp256k1:
		return "secp256k1"
	default:
		return "Unknown"
	}
}

// ScalarLen is the big-endian length of a private scalar or field element.
func (c Curve) ScalarLen() int {
	switch c {
	case CurveP256, CurveSecp256k1:
		return 32
	case CurveP384:
		return 48
	case CurveP521:
		return 66
	default:
		return 0
	}
}

// UncompressedPointLen is the length of 0x04 || X || Y.
func (c Curve) UncompressedPointLen() int {
	if n := c.ScalarLen(); n > 0 {
		return 1 + 2*n
	}
	return 0
}

// CurveToNID converts a Curve to the engine's NID.
// This is the only place where the mapping between Go enums and NIDs exists.
func CurveToNID(c Curve) (int, error) {
	switch c {
	case CurveP256:
		return 415, nil // NID_X9_62_prime256v1
	case CurveP384:
		return 715, nil // NID_secp384r1
	case CurveP521:
		return 716, nil // NID_secp521r1
	case CurveSecp256k1:
		return 714, nil // NID_secp256k1
	default:
		return 0, errors.New("unsupported curve")
	}
}

// NIDToCurve converts the engine's NID to a Curve.
func NIDToCurve(nid int) (Curve, error) {
	switch nid {
	case 415: // NID_X9_62_prime256v1
		return CurveP256, nil
	case 715: // NID_secp384r1
		return CurveP384, nil
	case 716: // NID_secp521r1
		return CurveP521, nil
	case 714: // NID_secp256k1
		return CurveSecp256k1, nil
	default:
		return CurveUnknown, errors.New("unsupported NID")
	}
}
