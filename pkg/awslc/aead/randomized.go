package aead

import (
	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// RandomizedNonceKey picks a fresh nonce from the engine RNG for every
// seal and returns it to the caller, who must transmit it. With 96-bit
// nonces, keep the number of seals per key well below 2^32.
//
// Seal and Open may be called concurrently on one key.
type RandomizedNonceKey struct {
	key *UnboundKey
}

// NewRandomizedNonceKey loads key for alg.
func NewRandomizedNonceKey(alg *Algorithm, key []byte) (*RandomizedNonceKey, error) {
	k, err := NewUnboundKey(alg, key)
	if err != nil {
		return nil, err
	}
	return &RandomizedNonceKey{key: k}, nil
}

// Algorithm reports the key's algorithm.
func (k *RandomizedNonceKey) Algorithm() *Algorithm { return k.key.alg }

// SealInPlaceAppendTag encrypts inOut under a random nonce and returns the
// nonce with inOut extended by the tag.
func (k *RandomizedNonceKey) SealInPlaceAppendTag(aad, inOut []byte) (Nonce, []byte, error) {
	const op = "aead.RandomizedNonceKey.SealInPlaceAppendTag"
	var n Nonce
	if err := rand.Fill(n[:]); err != nil {
		return Nonce{}, inOut, awslc.Fail(op, awslc.ErrUnspecified)
	}
	out, err := k.key.sealInPlace(op, n, aad, inOut)
	if err != nil {
		return Nonce{}, inOut, err
	}
	return n, out, nil
}

// SealInPlaceSeparateTag encrypts inOut in place under a random nonce and
// returns the nonce and tag.
func (k *RandomizedNonceKey) SealInPlaceSeparateTag(aad, inOut []byte) (Nonce, Tag, error) {
	const op = "aead.RandomizedNonceKey.SealInPlaceSeparateTag"
	var n Nonce
	if err := rand.Fill(n[:]); err != nil {
		return Nonce{}, Tag{}, awslc.Fail(op, awslc.ErrUnspecified)
	}
	t, err := k.key.sealSeparate(op, n, aad, inOut)
	if err != nil {
		return Nonce{}, Tag{}, err
	}
	return n, t, nil
}

// OpenInPlace authenticates and decrypts ciphertext||tag in inOut under
// nonce and returns the plaintext prefix.
func (k *RandomizedNonceKey) OpenInPlace(nonce Nonce, aad, inOut []byte) ([]byte, error) {
	return k.key.openInPlace("aead.RandomizedNonceKey.OpenInPlace", nonce, aad, inOut)
}

// Close releases the key.
func (k *RandomizedNonceKey) Close() { k.key.Close() }
