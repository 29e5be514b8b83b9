package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/TheusHen/diamond/diamond/cipher"
	"github.com/TheusHen/diamond/diamond/padding"
	"github.com/TheusHen/diamond/diamond/protocol"
	"github.com/TheusHen/diamond/diamond/transport/quic"
	q "github.com/quic-go/quic-go"
)

const (
	// DefaultMaxRounds bounds the rounds a single request may ask for.
	DefaultMaxRounds = 16
	// DefaultReadTimeout bounds how long a stream may take to deliver its request.
	DefaultReadTimeout = 10 * time.Second

	// maxResultText leaves room for the JSON around the ciphertext in a result frame.
	maxResultText = protocol.MaxFramePayload - 4096
)

var ErrTooManyRounds = errors.New("service: too many rounds")

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a structured logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = discardLogger()
		}
		s.logger = logger
	}
}

// WithPadding sets the padding source used for encryption requests.
func WithPadding(src padding.Source) Option {
	return func(s *Server) {
		if src != nil {
			s.padding = src
		}
	}
}

// WithMaxRounds caps the round count of incoming requests.
func WithMaxRounds(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxRounds = n
		}
	}
}

// WithReadTimeout sets how long a stream may take to deliver its request.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.readTimeout = d
		}
	}
}

// Server answers encrypt and decrypt requests over QUIC streams.
type Server struct {
	logger      *slog.Logger
	padding     padding.Source
	maxRounds   int
	readTimeout time.Duration
	wg          sync.WaitGroup
}

// NewServer creates a Server. The default logger discards output.
func NewServer(opts ...Option) *Server {
	s := &Server{
		logger:      discardLogger(),
		padding:     padding.Crypto(),
		maxRounds:   DefaultMaxRounds,
		readTimeout: DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Serve accepts connections from ln until ctx is done or the listener fails.
// Cancelling ctx closes every open connection; Serve returns once their
// streams have finished.
func (s *Server) Serve(ctx context.Context, ln *quic.Listener) error {
	s.logger.Info("serving", "addr", ln.AddrString())
	defer s.wg.Wait()
	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("service: accept: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn q.Connection) {
	remote := conn.RemoteAddr().String()
	s.logger.Debug("connection accepted", "remote", remote)
	stop := context.AfterFunc(ctx, func() {
		_ = conn.CloseWithError(0, "server shutting down")
	})
	defer stop()
	for {
		st, err := conn.AcceptStream(ctx)
		if err != nil {
			s.logger.Debug("connection closed", "remote", remote, "error", err)
			return
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveStream(st, remote)
		}()
	}
}

func (s *Server) serveStream(st q.Stream, remote string) {
	defer st.Close()

	_ = st.SetReadDeadline(time.Now().Add(s.readTimeout))
	mt, req, err := protocol.ReadRequest(st)
	if err != nil {
		s.logger.Warn("bad request", "remote", remote, "error", err)
		s.fail(st, protocol.CodeInvalidRequest, err)
		return
	}

	var resp protocol.Response
	switch mt {
	case protocol.MessageTypeEncrypt:
		resp, err = s.encrypt(req)
	case protocol.MessageTypeDecrypt:
		resp, err = s.decrypt(req)
	}
	if err != nil {
		s.logger.Info("request rejected", "remote", remote, "type", mt.String(), "error", err)
		s.fail(st, protocol.CodeInvalidRequest, err)
		return
	}

	if err := protocol.WriteMessage(st, protocol.MessageTypeResult, resp); err != nil {
		s.logger.Error("write response", "remote", remote, "error", err)
		if errors.Is(err, protocol.ErrFrameTooLarge) {
			s.fail(st, protocol.CodeInternal, err)
		}
		return
	}
	s.logger.Debug("request served", "remote", remote, "type", mt.String(), "rounds", req.Rounds)
}

func (s *Server) fail(w io.Writer, code string, cause error) {
	f := protocol.Failure{Code: code, Message: cause.Error()}
	if err := protocol.WriteMessage(w, protocol.MessageTypeError, f); err != nil {
		s.logger.Error("write failure", "code", code, "error", err)
	}
}

func (s *Server) checkRounds(n int) error {
	if err := cipher.ValidateRounds(n); err != nil {
		return err
	}
	if n > s.maxRounds {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRounds, n, s.maxRounds)
	}
	return nil
}

func (s *Server) encrypt(req protocol.Request) (protocol.Response, error) {
	if err := cipher.ValidateMessage(req.Text); err != nil {
		return protocol.Response{}, err
	}
	if err := s.checkRounds(req.Rounds); err != nil {
		return protocol.Response{}, err
	}
	prepared := cipher.PrepareMessage(req.Text)
	if err := cipher.ValidateGridSize(prepared, req.GridSize); err != nil {
		return protocol.Response{}, err
	}
	if _, err := cipher.PlanGridSizes(len(prepared), req.GridSize, req.Rounds, maxResultText); err != nil {
		return protocol.Response{}, err
	}

	enc := cipher.NewEncryptor(cipher.EncryptorConfig{
		GridSize: req.GridSize,
		Rounds:   req.Rounds,
		Padding:  s.padding,
	})
	ct := enc.Encrypt(req.Text)
	return protocol.Response{Text: ct, GridSizes: enc.GridSizes()}, nil
}

func (s *Server) decrypt(req protocol.Request) (protocol.Response, error) {
	if err := cipher.ValidateCiphertext(req.Text); err != nil {
		return protocol.Response{}, err
	}
	if err := s.checkRounds(req.Rounds); err != nil {
		return protocol.Response{}, err
	}
	plain := cipher.NewDecryptor(cipher.DecryptorConfig{Rounds: req.Rounds}).Decrypt(req.Text)
	return protocol.Response{Text: plain, Terminated: cipher.Terminated(plain)}, nil
}
