package aead

// LessSafeKey seals and opens with caller-chosen nonces. Prefer SealingKey
// unless the protocol fixes the nonce.
//
// Seal and Open may be called concurrently on one key.
type LessSafeKey struct {
	key *UnboundKey
}

// NewLessSafeKey takes ownership of key.
func NewLessSafeKey(key *UnboundKey) *LessSafeKey { return &LessSafeKey{key: key} }

// Algorithm reports the key's algorithm.
func (k *LessSafeKey) Algorithm() *Algorithm { return k.key.alg }

// SealInPlaceAppendTag encrypts inOut and returns it extended by the tag.
// The returned slice reuses inOut's array when capacity allows.
func (k *LessSafeKey) SealInPlaceAppendTag(nonce Nonce, aad, inOut []byte) ([]byte, error) {
	return k.key.sealInPlace("aead.LessSafeKey.SealInPlaceAppendTag", nonce, aad, inOut)
}

// SealInPlaceSeparateTag encrypts inOut in place and returns the tag.
func (k *LessSafeKey) SealInPlaceSeparateTag(nonce Nonce, aad, inOut []byte) (Tag, error) {
	return k.key.sealSeparate("aead.LessSafeKey.SealInPlaceSeparateTag", nonce, aad, inOut)
}

// Seal returns ciphertext||tag for plaintext in a new slice.
func (k *LessSafeKey) Seal(nonce Nonce, aad, plaintext []byte) ([]byte, error) {
	buf := make([]byte, len(plaintext), len(plaintext)+k.key.alg.TagLen())
	copy(buf, plaintext)
	return k.key.sealInPlace("aead.LessSafeKey.Seal", nonce, aad, buf)
}

// OpenInPlace authenticates and decrypts ciphertext||tag held in inOut and
// returns the plaintext, a prefix of inOut.
func (k *LessSafeKey) OpenInPlace(nonce Nonce, aad, inOut []byte) ([]byte, error) {
	return k.key.openInPlace("aead.LessSafeKey.OpenInPlace", nonce, aad, inOut)
}

// Open returns the plaintext of ciphertextAndTag in a new slice.
func (k *LessSafeKey) Open(nonce Nonce, aad, ciphertextAndTag []byte) ([]byte, error) {
	buf := append([]byte(nil), ciphertextAndTag...)
	return k.key.openInPlace("aead.LessSafeKey.Open", nonce, aad, buf)
}

// Close releases the key.
func (k *LessSafeKey) Close() { k.key.Close() }
