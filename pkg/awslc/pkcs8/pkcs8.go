// Package pkcs8 holds PKCS#8 private key documents and the version policy
// every FromPKCS8 constructor applies: version 1 (PrivateKeyInfo) only.
package pkcs8

import (
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
)

// Version is the PKCS#8 structure version.
type Version int

const (
	// V1 is PrivateKeyInfo (RFC 5208).
	V1 Version = 1
	// V2 is OneAsymmetricKey with an embedded public key (RFC 5958).
	V2 Version = 2
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return "unknown"
	}
}

var tagPublicKey = asn1.Tag(1).ContextSpecific()

// PeekVersion reads the version of a PKCS#8 document without touching the
// key. Anything that is not a well-formed PrivateKeyInfo or
// OneAsymmetricKey is rejected with ReasonInvalidEncoding.
func PeekVersion(der []byte) (Version, error) {
	input := cryptobyte.String(der)
	var (
		seq, algID, key, pub cryptobyte.String
		version              int64
		hasPublic            bool
	)
	if !input.ReadASN1(&seq, asn1.SEQUENCE) || !input.Empty() ||
		!seq.ReadASN1Integer(&version) ||
		!seq.ReadASN1(&algID, asn1.SEQUENCE) ||
		!seq.ReadASN1(&key, asn1.OCTET_STRING) ||
		!seq.SkipOptionalASN1(asn1.Tag(0).Constructed().ContextSpecific()) ||
		!seq.ReadOptionalASN1(&pub, &hasPublic, tagPublicKey) ||
		!seq.Empty() {
		return 0, &awslc.KeyRejected{Reason: awslc.ReasonInvalidEncoding}
	}
	switch {
	case version == 0 && !hasPublic:
		return V1, nil
	case version == 1:
		return V2, nil
	default:
		return 0, &awslc.KeyRejected{Reason: awslc.ReasonInvalidEncoding}
	}
}

// RequireV1 accepts only version 1 documents. Version 2 is rejected with
// ReasonUnsupportedVersion rather than read as version 1. The returned
// error is a bare *awslc.KeyRejected for the caller to wrap.
func RequireV1(der []byte) error {
	v, err := PeekVersion(der)
	if err != nil {
		return err
	}
	if v != V1 {
		return &awslc.KeyRejected{Reason: awslc.ReasonUnsupportedVersion}
	}
	return nil
}

// Document is a serialized private key. Close wipes it.
type Document struct {
	der []byte
}

// NewDocument takes ownership of der.
func NewDocument(der []byte) *Document { return &Document{der: der} }

// Bytes returns the DER encoding. The slice is owned by the document.
func (d *Document) Bytes() []byte { return d.der }

// Close zeroes the encoding.
func (d *Document) Close() {
	awslc.ZeroizeBytes(d.der)
	d.der = nil
}
