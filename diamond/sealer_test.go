package diamond

import (
	"errors"
	"testing"
	"time"

	"github.com/TheusHen/diamond/diamond/cipher"
	"github.com/TheusHen/diamond/diamond/envelope"
	"github.com/TheusHen/diamond/diamond/padding"
)

func TestSealOpen(t *testing.T) {
	for rounds := 1; rounds <= 3; rounds++ {
		s := NewSealer(SealerConfig{Rounds: rounds, Compression: envelope.CompressionFast})
		sealed, err := s.Seal("Meet at noon.")
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		plain, err := s.Open(sealed)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if plain != "MEETATNOON." {
			t.Fatalf("rounds=%d: got %q", rounds, plain)
		}
	}
}

func TestSealRecordsGridSizes(t *testing.T) {
	s := NewSealer(SealerConfig{GridSize: 7, Rounds: 2})
	env, err := s.Encrypt("Hello World")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(env.GridSizes) != 2 || env.GridSizes[0] != 7 {
		t.Fatalf("GridSizes = %v", env.GridSizes)
	}
	if len(env.Ciphertext) != env.GridSizes[1]*env.GridSizes[1] {
		t.Fatalf("ciphertext length %d does not match last grid %d", len(env.Ciphertext), env.GridSizes[1])
	}
}

func TestSealDeterministicWithKeystream(t *testing.T) {
	seal := func() []byte {
		ks, err := padding.NewKeystream([]byte("fixed"), nil)
		if err != nil {
			t.Fatalf("NewKeystream: %v", err)
		}
		out, err := NewSealer(SealerConfig{Rounds: 2, Padding: ks}).Seal("same every time")
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		return out
	}
	if string(seal()) != string(seal()) {
		t.Fatalf("seeded seals differ")
	}
}

func TestSealValidation(t *testing.T) {
	cases := []struct {
		name   string
		config SealerConfig
		msg    string
		want   error
	}{
		{"empty", SealerConfig{Rounds: 1}, "", cipher.ErrEmptyMessage},
		{"bad char", SealerConfig{Rounds: 1}, "hi!", cipher.ErrInvalidCharacter},
		{"zero rounds", SealerConfig{Rounds: 0}, "hi", cipher.ErrRoundsNotPositive},
		{"even size", SealerConfig{Rounds: 1, GridSize: 4}, "hi", cipher.ErrGridSizeEven},
		{"small size", SealerConfig{Rounds: 1, GridSize: 3}, "hello world", cipher.ErrGridSizeTooSmall},
	}
	for _, tc := range cases {
		if _, err := NewSealer(tc.config).Seal(tc.msg); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestDecryptRejectsEmpty(t *testing.T) {
	if _, err := Decrypt(envelope.Envelope{Rounds: 0, Ciphertext: "ABC"}); err != ErrNoRounds {
		t.Fatalf("expected ErrNoRounds, got %v", err)
	}
	if _, err := Decrypt(envelope.Envelope{Rounds: 1}); err != cipher.ErrEmptyCiphertext {
		t.Fatalf("expected ErrEmptyCiphertext, got %v", err)
	}
}

func TestOpenCorrupt(t *testing.T) {
	if _, err := NewSealer(DefaultSealerConfig()).Open([]byte("nope")); err != envelope.ErrBadMagic {
		t.Fatalf("expected ErrBadMagic, got %v", err)
	}
}

func TestSealRejectsOversizedResult(t *testing.T) {
	start := time.Now()
	_, err := NewSealer(SealerConfig{Rounds: 40}).Seal("grows every round")
	if !errors.Is(err, cipher.ErrResultTooLarge) {
		t.Fatalf("expected ErrResultTooLarge, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatalf("rejection took %v, expected no encryption work", time.Since(start))
	}
	if _, err := NewSealer(SealerConfig{Rounds: envelope.MaxGridSizes + 1}).Seal("."); !errors.Is(err, envelope.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for too many rounds, got %v", err)
	}
}

func TestOpenRejectsInconsistentEnvelope(t *testing.T) {
	s := NewSealer(SealerConfig{Rounds: 2})
	env, err := s.Encrypt("Hello World")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	cut := env
	cut.Ciphertext = env.Ciphertext[:len(env.Ciphertext)-3]
	data, err := envelope.Encode(cut, envelope.CompressionNone)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := s.Open(data); !errors.Is(err, envelope.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for truncated ciphertext, got %v", err)
	}

	extra := env
	extra.Rounds = 3
	if _, err := Decrypt(extra); !errors.Is(err, envelope.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for round mismatch, got %v", err)
	}
}
