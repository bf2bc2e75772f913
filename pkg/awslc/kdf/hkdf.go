// Package kdf derives keys with HKDF (RFC 5869) and the SP 800-108
// counter-mode KDF over HMAC.
package kdf

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

// Algorithm is an HKDF instance.
type Algorithm struct {
	id   backend.DigestID
	name string
}

var (
	HKDF_SHA1_FOR_LEGACY_USE_ONLY = &Algorithm{backend.DigestSHA1, "HKDF-SHA1"}
	HKDF_SHA256                   = &Algorithm{backend.DigestSHA256, "HKDF-SHA256"}
	HKDF_SHA384                   = &Algorithm{backend.DigestSHA384, "HKDF-SHA384"}
	HKDF_SHA512                   = &Algorithm{backend.DigestSHA512, "HKDF-SHA512"}
)

func (a *Algorithm) String() string { return a.name }

// Len is the PRK length and the expansion block size.
func (a *Algorithm) Len() int { return backend.DigestSize(a.id) }

// MaxOutputLen is the longest expansion HKDF allows.
func (a *Algorithm) MaxOutputLen() int { return 255 * a.Len() }

// HKDF extracts from secret and salt and expands into out in one call.
func HKDF(alg *Algorithm, out, secret, salt, info []byte) error {
	const op = "kdf.HKDF"
	if err := awslc.Begin(op); err != nil {
		return err
	}
	if alg == nil || len(out) == 0 || len(out) > alg.MaxOutputLen() {
		return awslc.Fail(op, awslc.ErrInvalidInput)
	}
	return awslc.RemapStatus(op, backend.HKDF(alg.id, out, secret, salt, info))
}

// Salt is an HKDF salt bound to an algorithm.
type Salt struct {
	alg   *Algorithm
	value []byte
}

// NewSalt copies value.
func NewSalt(alg *Algorithm, value []byte) *Salt {
	return &Salt{alg: alg, value: append([]byte(nil), value...)}
}

// Extract derives a pseudorandom key from secret.
func (s *Salt) Extract(secret []byte) (*Prk, error) {
	const op = "kdf.Salt.Extract"
	if err := awslc.Begin(op); err != nil {
		return nil, err
	}
	if s == nil || s.alg == nil {
		return nil, awslc.Fail(op, awslc.ErrInvalidInput)
	}
	prk, st := backend.HKDFExtract(s.alg.id, secret, s.value)
	if err := awslc.RemapStatus(op, st); err != nil {
		return nil, err
	}
	return &Prk{alg: s.alg, key: prk}, nil
}

// Prk is an HKDF pseudorandom key. Close wipes it.
type Prk struct {
	alg *Algorithm
	key []byte
}

// NewPrkLessSafe wraps an existing PRK, skipping extraction. value should
// be the output of a previous extract.
func NewPrkLessSafe(alg *Algorithm, value []byte) *Prk {
	return &Prk{alg: alg, key: append([]byte(nil), value...)}
}

// Algorithm reports the PRK's algorithm.
func (p *Prk) Algorithm() *Algorithm { return p.alg }

// Expand fills out from the PRK and the concatenation of info.
func (p *Prk) Expand(out []byte, info ...[]byte) error {
	const op = "kdf.Prk.Expand"
	if err := awslc.Begin(op); err != nil {
		return err
	}
	if p.key == nil || p.alg == nil || len(out) == 0 || len(out) > p.alg.MaxOutputLen() {
		return awslc.Fail(op, awslc.ErrInvalidInput)
	}
	var joined []byte
	for _, part := range info {
		joined = append(joined, part...)
	}
	return awslc.RemapStatus(op, backend.HKDFExpand(p.alg.id, out, p.key, joined))
}

// Close wipes the key.
func (p *Prk) Close() {
	awslc.ZeroizeBytes(p.key)
	p.key = nil
}
