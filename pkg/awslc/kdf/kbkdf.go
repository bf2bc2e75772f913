package kdf

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
)

// KBKDFCtrHMACAlgorithmID names an SP 800-108 counter-mode HMAC KDF.
type KBKDFCtrHMACAlgorithmID int

const (
	KBKDFCtrHMACSHA224 KBKDFCtrHMACAlgorithmID = iota + 1
	KBKDFCtrHMACSHA256
	KBKDFCtrHMACSHA384
	KBKDFCtrHMACSHA512
)

// KBKDFCtrHMACAlgorithm is an available counter-mode HMAC KDF.
type KBKDFCtrHMACAlgorithm struct {
	id backend.DigestID
}

var kbkdfAlgorithms = map[KBKDFCtrHMACAlgorithmID]*KBKDFCtrHMACAlgorithm{
	KBKDFCtrHMACSHA224: {backend.DigestSHA224},
	KBKDFCtrHMACSHA256: {backend.DigestSHA256},
	KBKDFCtrHMACSHA384: {backend.DigestSHA384},
	KBKDFCtrHMACSHA512: {backend.DigestSHA512},
}

// LookupKBKDFCtrHMAC returns the algorithm for id. It reports false in
// fips builds, which do not include this KDF.
func LookupKBKDFCtrHMAC(id KBKDFCtrHMACAlgorithmID) (*KBKDFCtrHMACAlgorithm, bool) {
	if !backend.KBKDFAvailable {
		return nil, false
	}
	alg, ok := kbkdfAlgorithms[id]
	return alg, ok
}

// KBKDFCtrHMAC fills out from secret and info. The counter is a 32-bit
// big-endian prefix starting at 1.
func KBKDFCtrHMAC(alg *KBKDFCtrHMACAlgorithm, out, secret, info []byte) error {
	const op = "kdf.KBKDFCtrHMAC"
	if err := awslc.Begin(op); err != nil {
		return err
	}
	if alg == nil || len(out) == 0 || len(secret) == 0 {
		return awslc.Fail(op, awslc.ErrInvalidInput)
	}
	return awslc.RemapStatus(op, backend.KBKDFCtrHMAC(alg.id, out, secret, info))
}
