// Package padding supplies the random letters written into grid cells that do
// not carry message characters.
//
// Every draw is uniform over 'A'..'Z'. The default source reads crypto/rand;
// a Keystream source is seeded and reproducible, which allows fixed test
// vectors for an otherwise non-deterministic cipher.
package padding

import (
	"crypto/rand"
	"io"
	"sync"
)

// Alphabet is the set padding letters are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// rejectAbove is the largest multiple of 26 that fits in a byte; bytes at or
// above it are discarded so that b%26 stays uniform.
const rejectAbove = 256 - 256%len(Alphabet)

// Source produces padding letters.
type Source interface {
	Letter() byte
}

// Func adapts a plain function to Source.
type Func func() byte

// Letter calls f.
func (f Func) Letter() byte { return f() }

// letterFrom maps a random byte to a letter, reporting false when the byte
// must be rejected.
func letterFrom(b byte) (byte, bool) {
	if int(b) >= rejectAbove {
		return 0, false
	}
	return Alphabet[int(b)%len(Alphabet)], true
}

// cryptoSource buffers crypto/rand output; safe for concurrent use.
type cryptoSource struct {
	mu  sync.Mutex
	buf [64]byte
	pos int
}

var defaultSource = &cryptoSource{pos: 64}

// Crypto returns the process-wide crypto/rand backed source.
func Crypto() Source { return defaultSource }

func (s *cryptoSource) Letter() byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.pos == len(s.buf) {
			if _, err := io.ReadFull(rand.Reader, s.buf[:]); err != nil {
				panic("padding: crypto/rand failed: " + err.Error())
			}
			s.pos = 0
		}
		b := s.buf[s.pos]
		s.pos++
		if ch, ok := letterFrom(b); ok {
			return ch
		}
	}
}
