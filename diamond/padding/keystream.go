package padding

import (
	"crypto/sha256"
	"errors"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

var ErrEmptySeed = errors.New("padding: empty seed")

const keystreamSalt = "diamond-padding-keystream"

// Keystream draws letters from a ChaCha20 keystream keyed by a seed.
// The same seed and info always produce the same letter sequence.
type Keystream struct {
	mu     sync.Mutex
	stream *chacha20.Cipher
	buf    [64]byte
	pos    int
}

// NewKeystream creates a deterministic source from seed.
// info separates independent streams derived from the same seed.
func NewKeystream(seed, info []byte) (*Keystream, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}
	// Key and nonce come from one HKDF-SHA256 expansion.
	kdf := hkdf.New(sha256.New, seed, []byte(keystreamSalt), info)
	var material [chacha20.KeySize + chacha20.NonceSize]byte
	if _, err := io.ReadFull(kdf, material[:]); err != nil {
		return nil, err
	}
	stream, err := chacha20.NewUnauthenticatedCipher(material[:chacha20.KeySize], material[chacha20.KeySize:])
	if err != nil {
		return nil, err
	}
	k := &Keystream{stream: stream}
	k.pos = len(k.buf)
	return k, nil
}

// Letter returns the next letter of the stream.
func (k *Keystream) Letter() byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	for {
		if k.pos == len(k.buf) {
			k.buf = [64]byte{}
			k.stream.XORKeyStream(k.buf[:], k.buf[:])
			k.pos = 0
		}
		b := k.buf[k.pos]
		k.pos++
		if ch, ok := letterFrom(b); ok {
			return ch
		}
	}
}
