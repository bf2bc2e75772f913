package aead

import (
	"encoding/binary"

	"github.com/hsiuhsiu/awslc-go/pkg/awslc"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/internal/backend"
	"github.com/hsiuhsiu/awslc-go/pkg/awslc/rand"
)

// PredictableNonceSequence counts: each nonce is four zero bytes followed by
// the incremented 64-bit big-endian position.
type PredictableNonceSequence struct {
	position uint64
}

// NewPredictableNonceSequence starts at position 0; the first nonce is 1.
func NewPredictableNonceSequence() *PredictableNonceSequence {
	return PredictableNonceSequenceStartingFrom(0)
}

// PredictableNonceSequenceStartingFrom starts at position.
func PredictableNonceSequenceStartingFrom(position uint64) *PredictableNonceSequence {
	return &PredictableNonceSequence{position: position}
}

// Advance implements NonceSequence. The position wraps at 2^64.
func (s *PredictableNonceSequence) Advance() (Nonce, error) {
	s.position++
	var n Nonce
	binary.BigEndian.PutUint64(n[4:], s.position)
	return n, nil
}

// NonceSequenceKey is the AES-128 key of an UnpredictableNonceSequence.
type NonceSequenceKey [16]byte

// Zeroize wipes the key.
func (k *NonceSequenceKey) Zeroize() { awslc.ZeroizeBytes(k[:]) }

// UnpredictableNonceSequence encrypts a counter under AES-128: each nonce
// is the first 12 bytes of AES(key, 0^4 || position || 0^4) for the
// incremented 64-bit position. Nonces look random to anyone without the
// key. It is not safe for concurrent use.
type UnpredictableNonceSequence struct {
	key      NonceSequenceKey
	position uint64
}

// NewUnpredictableNonceSequence draws a fresh key from the engine RNG and
// returns it alongside a sequence at position 0, so an opener can mirror
// the sequence.
func NewUnpredictableNonceSequence() (NonceSequenceKey, *UnpredictableNonceSequence, error) {
	return UnpredictableNonceSequenceStartingFrom(0)
}

// UnpredictableNonceSequenceStartingFrom is NewUnpredictableNonceSequence
// at position.
func UnpredictableNonceSequenceStartingFrom(position uint64) (NonceSequenceKey, *UnpredictableNonceSequence, error) {
	var key NonceSequenceKey
	if err := rand.Fill(key[:]); err != nil {
		return NonceSequenceKey{}, nil, err
	}
	return key, UnpredictableNonceSequenceUsingKeyAndPosition(key, position), nil
}

// UnpredictableNonceSequenceUsingKey rebuilds a sequence at position 0.
func UnpredictableNonceSequenceUsingKey(key NonceSequenceKey) *UnpredictableNonceSequence {
	return UnpredictableNonceSequenceUsingKeyAndPosition(key, 0)
}

// UnpredictableNonceSequenceUsingKeyAndPosition rebuilds a sequence.
func UnpredictableNonceSequenceUsingKeyAndPosition(key NonceSequenceKey, position uint64) *UnpredictableNonceSequence {
	return &UnpredictableNonceSequence{key: key, position: position}
}

// Advance implements NonceSequence.
func (s *UnpredictableNonceSequence) Advance() (Nonce, error) {
	const op = "aead.UnpredictableNonceSequence.Advance"
	if err := awslc.Begin(op); err != nil {
		return Nonce{}, err
	}
	s.position++
	var block [16]byte
	binary.BigEndian.PutUint64(block[4:12], s.position)
	if err := awslc.RemapStatus(op, backend.AESEncryptBlock(s.key[:], &block)); err != nil {
		return Nonce{}, err
	}
	var n Nonce
	copy(n[:], block[:NonceLen])
	awslc.ZeroizeBytes(block[:])
	return n, nil
}

// Close zeroes the sequence key.
func (s *UnpredictableNonceSequence) Close() { s.key.Zeroize() }
