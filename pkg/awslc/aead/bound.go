package aead

import "github.com/hsiuhsiu/awslc-go/pkg/awslc"

// NonceSequence yields the nonce for each operation of a bound key. An
// error ends the key's usefulness; it must not repeat a nonce.
type NonceSequence interface {
	Advance() (Nonce, error)
}

// SealingKey encrypts with nonces from a NonceSequence. It is not safe for
// concurrent use.
type SealingKey struct {
	key   *UnboundKey
	nonce NonceSequence
}

// NewSealingKey takes ownership of key.
func NewSealingKey(key *UnboundKey, nonces NonceSequence) *SealingKey {
	return &SealingKey{key: key, nonce: nonces}
}

// Algorithm reports the key's algorithm.
func (k *SealingKey) Algorithm() *Algorithm { return k.key.alg }

// SealInPlaceAppendTag encrypts inOut under the next nonce and returns it
// extended by the tag.
func (k *SealingKey) SealInPlaceAppendTag(aad, inOut []byte) ([]byte, error) {
	const op = "aead.SealingKey.SealInPlaceAppendTag"
	n, err := k.nonce.Advance()
	if err != nil {
		return inOut, awslc.Fail(op, awslc.ErrUnspecified)
	}
	return k.key.sealInPlace(op, n, aad, inOut)
}

// SealInPlaceSeparateTag encrypts inOut in place under the next nonce and
// returns the tag.
func (k *SealingKey) SealInPlaceSeparateTag(aad, inOut []byte) (Tag, error) {
	const op = "aead.SealingKey.SealInPlaceSeparateTag"
	n, err := k.nonce.Advance()
	if err != nil {
		return Tag{}, awslc.Fail(op, awslc.ErrUnspecified)
	}
	return k.key.sealSeparate(op, n, aad, inOut)
}

// Close releases the key.
func (k *SealingKey) Close() { k.key.Close() }

// OpeningKey decrypts with nonces from a NonceSequence that must track the
// sealer's. It is not safe for concurrent use.
type OpeningKey struct {
	key   *UnboundKey
	nonce NonceSequence
}

// NewOpeningKey takes ownership of key.
func NewOpeningKey(key *UnboundKey, nonces NonceSequence) *OpeningKey {
	return &OpeningKey{key: key, nonce: nonces}
}

// Algorithm reports the key's algorithm.
func (k *OpeningKey) Algorithm() *Algorithm { return k.key.alg }

// OpenInPlace authenticates and decrypts ciphertext||tag in inOut under the
// next nonce and returns the plaintext prefix.
func (k *OpeningKey) OpenInPlace(aad, inOut []byte) ([]byte, error) {
	const op = "aead.OpeningKey.OpenInPlace"
	n, err := k.nonce.Advance()
	if err != nil {
		awslc.ZeroizeBytes(inOut)
		return nil, awslc.Fail(op, awslc.ErrUnspecified)
	}
	return k.key.openInPlace(op, n, aad, inOut)
}

// Close releases the key.
func (k *OpeningKey) Close() { k.key.Close() }
