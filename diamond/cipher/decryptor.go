package cipher

import (
	"strings"

	"github.com/TheusHen/diamond/diamond/grid"
	"github.com/TheusHen/diamond/diamond/ring"
)

// DecryptorConfig configures a Decryptor.
type DecryptorConfig struct {
	Rounds int
}

// Decryptor reverses Encryptor for a fixed number of rounds.
type Decryptor struct {
	config DecryptorConfig
}

// NewDecryptor creates a Decryptor.
func NewDecryptor(config DecryptorConfig) *Decryptor {
	return &Decryptor{config: config}
}

// Rounds returns the configured round count.
func (d *Decryptor) Rounds() int { return d.config.Rounds }

// Decrypt runs the configured number of rounds; see DecryptMultiRound.
func (d *Decryptor) Decrypt(ciphertext string) string {
	return DecryptMultiRound(ciphertext, d.config.Rounds)
}

// isqrt returns ⌊√n⌋ for n ≥ 0.
func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// DecryptRound rebuilds the grid from ciphertext and returns every non-blank
// cell along the rings, outermost ring first.
//
// The grid size is ⌊√len(ciphertext)⌋; characters beyond size² are ignored.
// The result still carries padding; only the final round is cut at the
// terminator.
func DecryptRound(ciphertext string) string {
	size := isqrt(len(ciphertext))
	g := grid.New(size)
	g.Load(ciphertext)

	var b strings.Builder
	b.Grow(ring.Capacity(size / 2))
	ring.Walk(size, func(_ int, c ring.Coord) {
		if ch := g.Get(c.Row, c.Col); ch != grid.Blank {
			b.WriteByte(ch)
		}
	})
	return b.String()
}

// TrimForNextRound keeps the first r² characters of text, where r is the
// largest odd integer with r² ≤ len(text) (at least 1). This recovers the
// previous round's ciphertext from the padded ring output.
func TrimForNextRound(text string) string {
	r := isqrt(len(text))
	if r%2 == 0 {
		r--
	}
	if r < 1 {
		r = 1
	}
	n := r * r
	if n > len(text) {
		n = len(text)
	}
	return text[:n]
}

// DecryptMultiRound applies rounds decryption rounds, trimming between them,
// and cuts the result after its first terminator if it has one.
func DecryptMultiRound(ciphertext string, rounds int) string {
	current := ciphertext
	for round := 0; round < rounds; round++ {
		current = DecryptRound(current)
		if round < rounds-1 {
			current = TrimForNextRound(current)
		}
	}
	return cutAtTerminator(current)
}
