package rsa

import (
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
)

// PublicKeyComponents is a public key given as big-endian modulus and
// exponent.
type PublicKeyComponents struct {
	N []byte
	E []byte
}

// pkcs1 encodes the components as RSAPublicKey.
func (c PublicKeyComponents) pkcs1() ([]byte, bool) {
	n := new(big.Int).SetBytes(c.N)
	e := new(big.Int).SetBytes(c.E)
	if n.Sign() == 0 || e.Sign() == 0 {
		return nil, false
	}
	b := cryptobyte.NewBuilder(nil)
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1BigInt(n)
		b.AddASN1BigInt(e)
	})
	der, err := b.Bytes()
	return der, err == nil
}

// Verify checks sig over msg under the components.
func (c PublicKeyComponents) Verify(params *Parameters, msg, sig []byte) error {
	der, ok := c.pkcs1()
	if !ok {
		return awslc.Fail("rsa.PublicKeyComponents.Verify", awslc.ErrVerificationFailed)
	}
	return Verify(params, der, msg, sig)
}
