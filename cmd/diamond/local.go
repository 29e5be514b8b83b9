package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/TheusHen/diamond/diamond"
	"github.com/TheusHen/diamond/diamond/cipher"
	"github.com/TheusHen/diamond/diamond/envelope"
	"github.com/TheusHen/diamond/diamond/envelope/erasure"
	"github.com/TheusHen/diamond/internal/config"
)

const shardExt = ".ds"

func runEncrypt(args []string, stdout io.Writer) error {
	cf := newCommandFlags("encrypt")
	msg := cf.String("m", "", "message (letters, spaces and periods)")
	size := cf.Int("size", 0, "odd grid size for the first round (0 = minimal)")
	rounds := cf.Int("rounds", 1, "number of rounds")
	seed := cf.String("seed", "", "hex seed for reproducible padding")
	out := cf.String("out", "", "write a sealed envelope to FILE instead of printing")
	compress := cf.String("compress", "fast", "envelope compression: none, fast, default, best")
	cfg, err := cf.parse(args)
	if err != nil {
		return err
	}

	cipherCfg := config.CipherSection{
		GridSize:    cf.intOr("size", size, cfg.Cipher.GridSize),
		Rounds:      cf.intOr("rounds", rounds, cfg.Cipher.Rounds),
		PaddingSeed: cf.stringOr("seed", seed, cfg.Cipher.PaddingSeed),
	}
	pad, err := cipherCfg.Padding()
	if err != nil {
		return err
	}
	level, err := envelope.ParseCompression(cf.stringOr("compress", compress, cfg.Envelope.Compression))
	if err != nil {
		return err
	}

	s := diamond.NewSealer(diamond.SealerConfig{
		GridSize:    cipherCfg.GridSize,
		Rounds:      cipherCfg.Rounds,
		Compression: level,
		Padding:     pad,
	})
	if *out == "" {
		env, err := s.Encrypt(*msg)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "grid sizes: %v\n", env.GridSizes)
		fmt.Fprintln(stdout, env.Ciphertext)
		return nil
	}

	sealed, err := s.Seal(*msg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, sealed, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %d bytes to %s\n", len(sealed), *out)
	return nil
}

func runDecrypt(args []string, stdout io.Writer) error {
	cf := newCommandFlags("decrypt")
	ct := cf.String("c", "", "ciphertext")
	rounds := cf.Int("rounds", 1, "number of rounds used to encrypt")
	in := cf.String("in", "", "sealed envelope file")
	cfg, err := cf.parse(args)
	if err != nil {
		return err
	}

	var plain string
	switch {
	case *in != "":
		data, err := os.ReadFile(*in)
		if err != nil {
			return err
		}
		env, err := envelope.Decode(data)
		if err != nil {
			return err
		}
		if plain, err = diamond.Decrypt(env); err != nil {
			return err
		}
	case *ct != "":
		n := cf.intOr("rounds", rounds, cfg.Cipher.Rounds)
		if err := cipher.ValidateRounds(n); err != nil {
			return err
		}
		plain = cipher.DecryptMultiRound(*ct, n)
	default:
		return fmt.Errorf("%w: decrypt needs -c or -in", errUsage)
	}

	fmt.Fprintln(stdout, plain)
	if !cipher.Terminated(plain) {
		fmt.Fprintln(stdout, "warning: no terminator found; the round count may be wrong")
	}
	return nil
}

func runShard(args []string, stdout io.Writer) error {
	cf := newCommandFlags("shard")
	in := cf.String("in", "", "sealed envelope file")
	dir := cf.String("dir", "", "output directory for shards")
	data := cf.Int("data", 4, "data shards")
	parity := cf.Int("parity", 2, "parity shards")
	cfg, err := cf.parse(args)
	if err != nil {
		return err
	}
	if *in == "" || *dir == "" {
		return fmt.Errorf("%w: shard needs -in and -dir", errUsage)
	}

	codec, err := erasure.NewCodec(
		cf.intOr("data", data, cfg.Envelope.Erasure.DataShards),
		cf.intOr("parity", parity, cfg.Envelope.Erasure.ParityShards),
	)
	if err != nil {
		return err
	}
	payload, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	if _, err := envelope.Decode(payload); err != nil {
		return fmt.Errorf("%s is not a sealed envelope: %w", *in, err)
	}
	shards, err := codec.Split(payload)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*dir, 0o700); err != nil {
		return err
	}
	for _, s := range shards {
		name := filepath.Join(*dir, fmt.Sprintf("shard-%03d%s", s.Index, shardExt))
		if err := os.WriteFile(name, s.Encode(), 0o600); err != nil {
			return err
		}
	}
	fmt.Fprintf(stdout, "wrote %d+%d shards to %s (any %d rebuild the file)\n",
		codec.DataShards(), codec.ParityShards(), *dir, codec.DataShards())
	return nil
}

func runJoin(args []string, stdout io.Writer) error {
	cf := newCommandFlags("join")
	dir := cf.String("dir", "", "directory holding shards")
	out := cf.String("out", "", "output file for the sealed envelope")
	if _, err := cf.parse(args); err != nil {
		return err
	}
	if *dir == "" || *out == "" {
		return fmt.Errorf("%w: join needs -dir and -out", errUsage)
	}

	names, err := filepath.Glob(filepath.Join(*dir, "*"+shardExt))
	if err != nil {
		return err
	}
	sort.Strings(names)
	var shards []erasure.Shard
	for _, name := range names {
		raw, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		s, err := erasure.DecodeShard(raw)
		if err != nil {
			fmt.Fprintf(stdout, "skipping %s: %v\n", name, err)
			continue
		}
		shards = append(shards, s)
	}
	if len(shards) == 0 {
		return errors.New("no shards found")
	}

	codec, err := erasure.CodecFor(shards[0])
	if err != nil {
		return err
	}
	payload, err := codec.Join(shards)
	if err != nil {
		return err
	}
	if _, err := envelope.Decode(payload); err != nil {
		return fmt.Errorf("rebuilt payload is not a sealed envelope: %w", err)
	}
	if err := os.WriteFile(*out, payload, 0o600); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "rebuilt %s from %d shards\n", *out, len(shards))
	return nil
}
