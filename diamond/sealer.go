package diamond

import (
	"errors"
	"fmt"

	"github.com/TheusHen/diamond/diamond/cipher"
	"github.com/TheusHen/diamond/diamond/envelope"
	"github.com/TheusHen/diamond/diamond/padding"
)

var ErrNoRounds = errors.New("diamond: envelope records zero rounds")

// SealerConfig configures a Sealer.
type SealerConfig struct {
	GridSize    int // 0 = automatic
	Rounds      int
	Compression envelope.Compression
	Padding     padding.Source // nil uses padding.Crypto()
}

// DefaultSealerConfig returns automatic sizing, one round and fast compression.
func DefaultSealerConfig() SealerConfig {
	return SealerConfig{
		Rounds:      1,
		Compression: envelope.CompressionFast,
	}
}

// Sealer is a high-level helper that encrypts messages into envelopes and
// opens them again. It validates its inputs the way an interactive caller
// would before handing them to the engine.
type Sealer struct {
	config SealerConfig
}

// NewSealer creates a Sealer.
func NewSealer(config SealerConfig) *Sealer {
	return &Sealer{config: config}
}

// Seal encrypts raw and wraps the ciphertext in an encoded envelope.
func (s *Sealer) Seal(raw string) ([]byte, error) {
	env, err := s.Encrypt(raw)
	if err != nil {
		return nil, err
	}
	return envelope.Encode(env, s.config.Compression)
}

// Encrypt validates raw and the configured parameters and returns the envelope
// without encoding it.
func (s *Sealer) Encrypt(raw string) (envelope.Envelope, error) {
	if err := cipher.ValidateMessage(raw); err != nil {
		return envelope.Envelope{}, err
	}
	if err := cipher.ValidateRounds(s.config.Rounds); err != nil {
		return envelope.Envelope{}, err
	}
	if s.config.Rounds > envelope.MaxGridSizes {
		return envelope.Envelope{}, fmt.Errorf("%w: %d rounds", envelope.ErrInvalid, s.config.Rounds)
	}
	prepared := cipher.PrepareMessage(raw)
	if err := cipher.ValidateGridSize(prepared, s.config.GridSize); err != nil {
		return envelope.Envelope{}, err
	}
	if _, err := cipher.PlanGridSizes(len(prepared), s.config.GridSize, s.config.Rounds, envelope.MaxCiphertext); err != nil {
		return envelope.Envelope{}, err
	}

	enc := cipher.NewEncryptor(cipher.EncryptorConfig{
		GridSize: s.config.GridSize,
		Rounds:   s.config.Rounds,
		Padding:  s.config.Padding,
	})
	ct := enc.Encrypt(raw)
	return envelope.Envelope{
		Rounds:     s.config.Rounds,
		GridSizes:  enc.GridSizes(),
		Ciphertext: ct,
	}, nil
}

// Open decodes an envelope and decrypts it with the recorded round count.
func (s *Sealer) Open(data []byte) (string, error) {
	env, err := envelope.Decode(data)
	if err != nil {
		return "", err
	}
	return Decrypt(env)
}

// Decrypt decrypts an already decoded envelope. Recorded grid sizes must
// match the round count and the ciphertext length.
func Decrypt(env envelope.Envelope) (string, error) {
	if env.Rounds == 0 {
		return "", ErrNoRounds
	}
	if err := env.Check(); err != nil {
		return "", err
	}
	if err := cipher.ValidateCiphertext(env.Ciphertext); err != nil {
		return "", err
	}
	return cipher.DecryptMultiRound(env.Ciphertext, env.Rounds), nil
}
