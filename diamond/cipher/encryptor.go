package cipher

import (
	"fmt"

	"github.com/TheusHen/diamond/diamond/grid"
	"github.com/TheusHen/diamond/diamond/padding"
	"github.com/TheusHen/diamond/diamond/ring"
)

// EncryptorConfig configures an Encryptor.
type EncryptorConfig struct {
	GridSize int            // odd grid size for round 1; 0 picks the minimal size per round
	Rounds   int            // number of rounds applied by Encrypt
	Padding  padding.Source // nil uses padding.Crypto()
}

// DefaultEncryptorConfig returns an automatic-size, single-round config.
func DefaultEncryptorConfig() EncryptorConfig {
	return EncryptorConfig{
		GridSize: 0,
		Rounds:   1,
		Padding:  padding.Crypto(),
	}
}

// Encryptor writes messages into diamond grids.
// An Encryptor is not safe for concurrent use; the engine functions it calls are.
type Encryptor struct {
	config    EncryptorConfig
	gridSizes []int
}

// NewEncryptor creates an Encryptor.
func NewEncryptor(config EncryptorConfig) *Encryptor {
	if config.Padding == nil {
		config.Padding = padding.Crypto()
	}
	if config.GridSize < 0 {
		config.GridSize = 0
	}
	return &Encryptor{config: config}
}

// GridSizes returns the grid size used by each round of the last Encrypt call.
func (e *Encryptor) GridSizes() []int {
	return append([]int(nil), e.gridSizes...)
}

// EncryptRound runs a single round over text without preparing it.
// The configured grid size is used as is, even when it is too small.
func (e *Encryptor) EncryptRound(text string) string {
	size := e.config.GridSize
	if size == 0 {
		size = MinimalGridSize(text)
	}
	return encryptRound(text, size, e.config.Padding)
}

// Encrypt prepares raw once and applies the configured number of rounds,
// feeding each round's ciphertext verbatim into the next.
//
// A configured grid size is used for the first round and for any later round
// whose input still fits its rings; otherwise that round uses the minimal
// size, so the output stays decryptable.
func (e *Encryptor) Encrypt(raw string) string {
	text := PrepareMessage(raw)
	e.gridSizes = e.gridSizes[:0]
	for round := 0; round < e.config.Rounds; round++ {
		size := e.roundSize(round, text)
		e.gridSizes = append(e.gridSizes, size)
		text = encryptRound(text, size, e.config.Padding)
	}
	return text
}

func (e *Encryptor) roundSize(round int, text string) int {
	return roundGridSize(e.config.GridSize, round, len(text))
}

// roundGridSize picks the grid for a round whose input is n characters long.
func roundGridSize(configured, round, n int) int {
	if configured == 0 {
		return minimalSize(n)
	}
	if round > 0 && ring.Capacity(configured/2) < n {
		return minimalSize(n)
	}
	return configured
}

// PlanGridSizes returns the grid size each round of Encrypt would use for a
// prepared message of textLen characters, without encrypting anything.
// Every round outputs size² characters; if any round would exceed limit the
// plan stops there and ErrResultTooLarge is returned.
func PlanGridSizes(textLen, gridSize, rounds, limit int) ([]int, error) {
	if gridSize < 0 {
		gridSize = 0
	}
	var sizes []int
	n := textLen
	for round := 0; round < rounds; round++ {
		size := roundGridSize(gridSize, round, n)
		if size > limit/size {
			return sizes, fmt.Errorf("%w: round %d needs a %d×%d grid", ErrResultTooLarge, round+1, size, size)
		}
		n = size * size
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// encryptRound fills the rings of a size×size grid with text, then padding,
// pads the corners and serializes column by column.
func encryptRound(text string, size int, pad padding.Source) string {
	g := grid.New(size)
	next := 0
	ring.Walk(size, func(_ int, c ring.Coord) {
		if next < len(text) {
			g.Set(c.Row, c.Col, text[next])
			next++
			return
		}
		g.Set(c.Row, c.Col, pad.Letter())
	})
	g.Fill(pad.Letter)
	return g.Serialize()
}

// EncryptRound runs one round over message with crypto padding.
// gridSize 0 selects MinimalGridSize(message).
func EncryptRound(message string, gridSize int) string {
	return NewEncryptor(EncryptorConfig{GridSize: gridSize}).EncryptRound(message)
}

// EncryptMultiRound prepares message and applies rounds rounds with crypto
// padding. A non-zero gridSize applies to round 1; later rounds keep it only
// while their input still fits its rings and otherwise use the minimal size.
// gridSize 0 selects the minimal size for every round.
func EncryptMultiRound(message string, gridSize, rounds int) string {
	return NewEncryptor(EncryptorConfig{GridSize: gridSize, Rounds: rounds}).Encrypt(message)
}
