//go:build !(cgo && awslc)

package backend

import (
	"sync/atomic"

	"github.com/awnumar/memguard"
)

var lockSecrets atomic.Bool

// SetLockedSecrets makes keys created afterwards keep their private
// material in mlock'ed, guard-paged memory. It needs RLIMIT_MEMLOCK headroom
// of one page per live key. The cgo engine ignores it.
func SetLockedSecrets(on bool) { lockSecrets.Store(on) }

// secret holds private key bytes owned by the engine.
type secret struct {
	locked *memguard.LockedBuffer
	plain  []byte
}

// newSecret takes ownership of b. The caller must not use b afterwards.
func newSecret(b []byte) *secret {
	if lockSecrets.Load() && len(b) > 0 {
		return &secret{locked: memguard.NewBufferFromBytes(b)}
	}
	return &secret{plain: b}
}

// copySecret stores a copy of b, leaving b untouched.
func copySecret(b []byte) *secret {
	return newSecret(append([]byte(nil), b...))
}

func (s *secret) bytes() []byte {
	if s.locked != nil {
		return s.locked.Bytes()
	}
	return s.plain
}

func (s *secret) destroy() {
	if s.locked != nil {
		s.locked.Destroy()
		s.locked = nil
	}
	memguard.WipeBytes(s.plain)
	s.plain = nil
}
