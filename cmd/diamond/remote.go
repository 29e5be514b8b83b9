package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheusHen/diamond/diamond/protocol"
	"github.com/TheusHen/diamond/diamond/service"
	"github.com/TheusHen/diamond/diamond/transport/quic"
	"github.com/TheusHen/diamond/internal/config"
)

func transportConfig(cfg config.FileConfig) (quic.Config, error) {
	tc := quic.DefaultConfig()
	idle, err := cfg.Server.Timeout()
	if err != nil {
		return tc, err
	}
	if idle > 0 {
		tc.IdleTimeout = idle
	}
	return tc, nil
}

func runServe(args []string) error {
	cf := newCommandFlags("serve")
	listen := cf.String("listen", "", "listen address")
	cfg, err := cf.parse(args)
	if err != nil {
		return err
	}

	lvl, err := cfg.Server.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	pad, err := cfg.Cipher.Padding()
	if err != nil {
		return err
	}
	tc, err := transportConfig(cfg)
	if err != nil {
		return err
	}

	ln, err := quic.Listen(cf.stringOr("listen", listen, cfg.Server.ListenAddr), tc)
	if err != nil {
		return err
	}
	defer ln.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := service.NewServer(
		service.WithLogger(logger),
		service.WithPadding(pad),
		service.WithMaxRounds(cfg.Server.MaxRounds),
	)
	return srv.Serve(ctx, ln)
}

func runRemote(args []string, stdout io.Writer) error {
	if len(args) == 0 || (args[0] != "encrypt" && args[0] != "decrypt") {
		return fmt.Errorf("%w: remote needs encrypt or decrypt", errUsage)
	}
	op := args[0]

	cf := newCommandFlags("remote " + op)
	addr := cf.String("addr", "", "server address")
	text := cf.String("m", "", "message or ciphertext")
	size := cf.Int("size", 0, "odd grid size for the first round (encrypt only)")
	rounds := cf.Int("rounds", 1, "number of rounds")
	timeout := cf.Duration("timeout", 10*time.Second, "request timeout")
	cfg, err := cf.parse(args[1:])
	if err != nil {
		return err
	}

	tc, err := transportConfig(cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client, err := service.Dial(ctx, cf.stringOr("addr", addr, cfg.Server.ListenAddr), tc)
	if err != nil {
		return err
	}
	defer client.Close()

	req := protocol.Request{
		Text:   *text,
		Rounds: cf.intOr("rounds", rounds, cfg.Cipher.Rounds),
	}
	var resp protocol.Response
	if op == "encrypt" {
		req.GridSize = cf.intOr("size", size, cfg.Cipher.GridSize)
		resp, err = client.Encrypt(ctx, req)
	} else {
		resp, err = client.Decrypt(ctx, req)
	}
	if err != nil {
		return err
	}

	if len(resp.GridSizes) > 0 {
		fmt.Fprintf(stdout, "grid sizes: %v\n", resp.GridSizes)
	}
	fmt.Fprintln(stdout, resp.Text)
	if op == "decrypt" && !resp.Terminated {
		fmt.Fprintln(stdout, "warning: no terminator found; the round count may be wrong")
	}
	return nil
}
