package cipher

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyMessage      = errors.New("cipher: empty message")
	ErrInvalidCharacter  = errors.New("cipher: message may only contain letters, spaces and periods")
	ErrEmptyCiphertext   = errors.New("cipher: empty ciphertext")
	ErrGridSizeEven      = errors.New("cipher: grid size must be odd")
	ErrGridSizeTooSmall  = errors.New("cipher: grid size too small for message")
	ErrRoundsNotPositive = errors.New("cipher: rounds must be positive")
	ErrResultTooLarge    = errors.New("cipher: result too large")
)

// ValidateMessage checks raw user input before it is prepared.
func ValidateMessage(raw string) error {
	if raw == "" {
		return ErrEmptyMessage
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if !isLetter(c) && c != ' ' && c != Terminator {
			return fmt.Errorf("%w: %q at offset %d", ErrInvalidCharacter, c, i)
		}
	}
	return nil
}

// ValidateGridSize checks a requested grid size against a prepared message.
// Zero means automatic sizing and is always accepted.
func ValidateGridSize(prepared string, size int) error {
	if size == 0 {
		return nil
	}
	if size < 0 || size%2 == 0 {
		return fmt.Errorf("%w: %d", ErrGridSizeEven, size)
	}
	if minSize := MinimalGridSize(prepared); size < minSize {
		return fmt.Errorf("%w: %d < %d", ErrGridSizeTooSmall, size, minSize)
	}
	return nil
}

// ValidateRounds checks a requested round count.
func ValidateRounds(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrRoundsNotPositive, n)
	}
	return nil
}

// ValidateCiphertext rejects input the decryptor cannot do anything useful with.
func ValidateCiphertext(ciphertext string) error {
	if ciphertext == "" {
		return ErrEmptyCiphertext
	}
	return nil
}
