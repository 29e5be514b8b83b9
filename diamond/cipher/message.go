package cipher

import (
	"strings"

	"github.com/TheusHen/diamond/diamond/ring"
)

// Terminator marks the end of a prepared message.
const Terminator = '.'

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// PrepareMessage keeps only ASCII letters and the terminator, uppercases the
// letters and appends the terminator if the result does not already end in one.
func PrepareMessage(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + 1)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(c - 'a' + 'A')
		case c >= 'A' && c <= 'Z', c == Terminator:
			b.WriteByte(c)
		}
	}
	out := b.String()
	if out == "" || out[len(out)-1] != Terminator {
		out += string(Terminator)
	}
	return out
}

// MinimalGridSize returns the smallest odd size 2C+1 whose rings can hold
// every character of text.
func MinimalGridSize(text string) int {
	return minimalSize(len(text))
}

func minimalSize(n int) int {
	c := 0
	for ring.Capacity(c) < n {
		c++
	}
	return 2*c + 1
}

// Terminated reports whether a decrypted message ends in the terminator.
// A false result means the message was probably cut short or decrypted with
// the wrong round count.
func Terminated(plain string) bool {
	return plain != "" && plain[len(plain)-1] == Terminator
}

// cutAtTerminator keeps text up to and including its first terminator.
func cutAtTerminator(text string) string {
	if i := strings.IndexByte(text, Terminator); i >= 0 {
		return text[:i+1]
	}
	return text
}
