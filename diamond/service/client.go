package service

import (
	"context"

	"github.com/TheusHen/diamond/diamond/protocol"
	"github.com/TheusHen/diamond/diamond/transport/quic"
	q "github.com/quic-go/quic-go"
)

// Client sends requests to a Server. Each request uses its own stream,
// so a Client may be shared by goroutines.
type Client struct {
	conn q.Connection
}

// Dial connects to a Server at addr.
func Dial(ctx context.Context, addr string, config quic.Config) (*Client, error) {
	conn, err := quic.Dial(ctx, addr, config)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Encrypt asks the server to encrypt req.Text.
func (c *Client) Encrypt(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	return c.do(ctx, protocol.MessageTypeEncrypt, req)
}

// Decrypt asks the server to decrypt req.Text.
func (c *Client) Decrypt(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	return c.do(ctx, protocol.MessageTypeDecrypt, req)
}

func (c *Client) do(ctx context.Context, mt protocol.MessageType, req protocol.Request) (protocol.Response, error) {
	st, err := c.conn.OpenStreamSync(ctx)
	if err != nil {
		return protocol.Response{}, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = st.SetDeadline(deadline)
	}
	if err := protocol.WriteMessage(st, mt, req); err != nil {
		st.CancelRead(0)
		_ = st.Close()
		return protocol.Response{}, err
	}
	// Half-close: the server sees the end of the request.
	_ = st.Close()
	return protocol.ReadResponse(st)
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.conn.CloseWithError(0, "client closed")
}
