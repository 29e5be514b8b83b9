package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/TheusHen/diamond/diamond/cipher"
	"github.com/TheusHen/diamond/diamond/envelope"
	"github.com/TheusHen/diamond/diamond/envelope/erasure"
	"github.com/TheusHen/diamond/diamond/padding"
)

// Validate checks that every section can be turned into runtime settings.
func Validate(cfg FileConfig) error {
	if cfg.Version != 0 && cfg.Version != 1 {
		return fmt.Errorf("unsupported version %d", cfg.Version)
	}
	if cfg.Cipher.GridSize < 0 || (cfg.Cipher.GridSize != 0 && cfg.Cipher.GridSize%2 == 0) {
		return fmt.Errorf("cipher.grid_size: %w: %d", cipher.ErrGridSizeEven, cfg.Cipher.GridSize)
	}
	if err := cipher.ValidateRounds(cfg.Cipher.Rounds); err != nil {
		return fmt.Errorf("cipher.rounds: %w", err)
	}
	if _, err := cfg.Cipher.Seed(); err != nil {
		return err
	}
	if cfg.Server.MaxRounds <= 0 {
		return errors.New("server.max_rounds must be positive")
	}
	if _, err := cfg.Server.Timeout(); err != nil {
		return err
	}
	if _, err := cfg.Server.Level(); err != nil {
		return err
	}
	if _, err := envelope.ParseCompression(cfg.Envelope.Compression); err != nil {
		return fmt.Errorf("envelope.compression: %w", err)
	}
	e := cfg.Envelope.Erasure
	if _, err := erasure.NewCodec(e.DataShards, e.ParityShards); err != nil {
		return fmt.Errorf("envelope.erasure: %w", err)
	}
	return nil
}

// Seed decodes PaddingSeed. It returns nil when no seed is set.
func (c CipherSection) Seed() ([]byte, error) {
	if c.PaddingSeed == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(c.PaddingSeed)
	if err != nil {
		return nil, fmt.Errorf("cipher.padding_seed must be hex: %w", err)
	}
	return seed, nil
}

// Padding returns the configured padding source.
func (c CipherSection) Padding() (padding.Source, error) {
	seed, err := c.Seed()
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return padding.Crypto(), nil
	}
	return padding.NewKeystream(seed, nil)
}

// Timeout parses IdleTimeout. Empty means zero.
func (s ServerSection) Timeout() (time.Duration, error) {
	if s.IdleTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("server.idle_timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("server.idle_timeout must not be negative: %s", s.IdleTimeout)
	}
	return d, nil
}

// Level maps LogLevel to a slog level. Empty means info.
func (s ServerSection) Level() (slog.Level, error) {
	var lvl slog.Level
	if s.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("server.log_level: %w", err)
	}
	return lvl, nil
}
