package quic

import (
	"context"
	"net"
	"time"

	q "github.com/quic-go/quic-go"
)

// Config tunes the QUIC transport.
type Config struct {
	// IdleTimeout closes connections with no activity.
	IdleTimeout time.Duration
	// KeepAlive sends pings on idle client connections. Zero disables them.
	KeepAlive time.Duration
	// CertLifetime is the validity of the server's self-signed certificate.
	CertLifetime time.Duration
}

// DefaultConfig returns the transport defaults.
func DefaultConfig() Config {
	return Config{
		IdleTimeout:  30 * time.Second,
		KeepAlive:    10 * time.Second,
		CertLifetime: 24 * time.Hour,
	}
}

func (c Config) quicConfig() *q.Config {
	return &q.Config{
		MaxIdleTimeout:  c.IdleTimeout,
		KeepAlivePeriod: c.KeepAlive,
	}
}

// Listener accepts QUIC connections.
type Listener struct {
	inner *q.Listener
}

// Listen starts a QUIC listener on addr.
func Listen(addr string, config Config) (*Listener, error) {
	if config.CertLifetime <= 0 {
		config.CertLifetime = DefaultConfig().CertLifetime
	}
	tlsConf, err := NewServerTLSConfig(config.CertLifetime)
	if err != nil {
		return nil, err
	}
	ln, err := q.ListenAddr(addr, tlsConf, config.quicConfig())
	if err != nil {
		return nil, err
	}
	return &Listener{inner: ln}, nil
}

// Accept blocks until a connection arrives or ctx is done.
func (l *Listener) Accept(ctx context.Context) (q.Connection, error) {
	return l.inner.Accept(ctx)
}

func (l *Listener) Addr() net.Addr { return l.inner.Addr() }

func (l *Listener) AddrString() string {
	if l == nil || l.inner == nil {
		return ""
	}
	return l.inner.Addr().String()
}

func (l *Listener) Close() error { return l.inner.Close() }

// Dial opens a QUIC connection to addr.
func Dial(ctx context.Context, addr string, config Config) (q.Connection, error) {
	return q.DialAddr(ctx, addr, NewClientTLSConfig(), config.quicConfig())
}
