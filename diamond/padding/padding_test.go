package padding

import (
	"bytes"
	"sync"
	"testing"
)

func draw(s Source, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = s.Letter()
	}
	return out
}

func TestCryptoLettersInAlphabet(t *testing.T) {
	for _, ch := range draw(Crypto(), 5000) {
		if ch < 'A' || ch > 'Z' {
			t.Fatalf("unexpected letter %q", ch)
		}
	}
}

func TestCryptoCoversAlphabet(t *testing.T) {
	seen := make(map[byte]bool)
	for _, ch := range draw(Crypto(), 10000) {
		seen[ch] = true
	}
	if len(seen) != len(Alphabet) {
		t.Fatalf("saw %d distinct letters, want %d", len(seen), len(Alphabet))
	}
}

func TestCryptoConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = draw(Crypto(), 1000)
		}()
	}
	wg.Wait()
}

func TestKeystreamDeterministic(t *testing.T) {
	a, err := NewKeystream([]byte("seed"), nil)
	if err != nil {
		t.Fatalf("NewKeystream: %v", err)
	}
	b, err := NewKeystream([]byte("seed"), nil)
	if err != nil {
		t.Fatalf("NewKeystream: %v", err)
	}
	if !bytes.Equal(draw(a, 500), draw(b, 500)) {
		t.Fatalf("same seed produced different letters")
	}
}

func TestKeystreamSeparation(t *testing.T) {
	a, _ := NewKeystream([]byte("seed"), nil)
	b, _ := NewKeystream([]byte("other"), nil)
	c, _ := NewKeystream([]byte("seed"), []byte("round-2"))

	sa := draw(a, 64)
	if bytes.Equal(sa, draw(b, 64)) {
		t.Fatalf("different seeds produced identical letters")
	}
	if bytes.Equal(sa, draw(c, 64)) {
		t.Fatalf("different info produced identical letters")
	}
}

func TestKeystreamLettersInAlphabet(t *testing.T) {
	k, _ := NewKeystream([]byte{1, 2, 3}, nil)
	seen := make(map[byte]bool)
	for _, ch := range draw(k, 10000) {
		if ch < 'A' || ch > 'Z' {
			t.Fatalf("unexpected letter %q", ch)
		}
		seen[ch] = true
	}
	if len(seen) != len(Alphabet) {
		t.Fatalf("saw %d distinct letters, want %d", len(seen), len(Alphabet))
	}
}

func TestKeystreamEmptySeed(t *testing.T) {
	if _, err := NewKeystream(nil, nil); err != ErrEmptySeed {
		t.Fatalf("expected ErrEmptySeed, got %v", err)
	}
}

func TestLetterFromRejects(t *testing.T) {
	if _, ok := letterFrom(byte(rejectAbove)); ok {
		t.Fatalf("byte %d should be rejected", rejectAbove)
	}
	if ch, ok := letterFrom(27); !ok || ch != 'B' {
		t.Fatalf("letterFrom(27) = %q, %v", ch, ok)
	}
}

func TestFuncAdapter(t *testing.T) {
	var s Source = Func(func() byte { return 'Q' })
	if s.Letter() != 'Q' {
		t.Fatalf("Func adapter did not call through")
	}
}

func BenchmarkKeystreamLetter(b *testing.B) {
	k, _ := NewKeystream([]byte("bench"), nil)
	for i := 0; i < b.N; i++ {
		_ = k.Letter()
	}
}
