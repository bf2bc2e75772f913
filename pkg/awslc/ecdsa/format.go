package ecdsa

import (
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// derToFixed converts Ecdsa-Sig-Value to r||s, each n bytes.
func derToFixed(der []byte, n int) ([]byte, bool) {
	var (
		inner cryptobyte.String
		r, s  = new(big.Int), new(big.Int)
	)
	input := cryptobyte.String(der)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) || !input.Empty() ||
		!inner.ReadASN1Integer(r) || !inner.ReadASN1Integer(s) || !inner.Empty() {
		return nil, false
	}
	if r.Sign() <= 0 || s.Sign() <= 0 || (r.BitLen()+7)/8 > n || (s.BitLen()+7)/8 > n {
		return nil, false
	}
	out := make([]byte, 2*n)
	r.FillBytes(out[:n])
	s.FillBytes(out[n:])
	return out, true
}

// fixedToDER converts r||s back to Ecdsa-Sig-Value.
func fixedToDER(sig []byte, n int) ([]byte, bool) {
	if len(sig) != 2*n {
		return nil, false
	}
	r := new(big.Int).SetBytes(sig[:n])
	s := new(big.Int).SetBytes(sig[n:])
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(r)
		b.AddASN1BigInt(s)
	})
	out, err := b.Bytes()
	return out, err == nil
}
