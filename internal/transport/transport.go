// Package transport performs one-shot request/response exchanges against a
// game server endpoint. Each send dials a fresh TCP connection, writes the
// whole framed request, reads one response, and closes. No retries, no
// pooling, no pipelining.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/danmuck/castctl/internal/protocol"
)

// ResponseMode selects how much of the server response one send captures.
type ResponseMode string

const (
	// ResponseFullFrame reads exactly one complete command frame and
	// returns its wire form, so a Reader decodes it from offset zero.
	ResponseFullFrame ResponseMode = "full-frame"

	// ResponseSingleRead performs a single bounded read and returns
	// whatever that read delivered. This matches the legacy client; the
	// result may be a partial frame or span into a second one.
	ResponseSingleRead ResponseMode = "single-read"
)

var (
	ErrConnect            = errors.New("transport: connect failed")
	ErrSend               = errors.New("transport: send failed")
	ErrIncompleteResponse = errors.New("transport: incomplete response")
	ErrResponseTooLarge   = errors.New("transport: response too large")
)

// Config bounds one exchange. MaxResponseBytes caps the single-read buffer
// in single-read mode and the declared body length in full-frame mode.
type Config struct {
	ConnectTimeout   time.Duration
	WriteTimeout     time.Duration
	ReadTimeout      time.Duration
	MaxResponseBytes uint32
	ResponseMode     ResponseMode
}

func DefaultConfig() Config {
	return Config{
		ConnectTimeout:   5 * time.Second,
		WriteTimeout:     5 * time.Second,
		ReadTimeout:      10 * time.Second,
		MaxResponseBytes: 128 * 1024,
		ResponseMode:     ResponseFullFrame,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.MaxResponseBytes == 0 {
		c.MaxResponseBytes = def.MaxResponseBytes
	}
	if c.ResponseMode == "" {
		c.ResponseMode = def.ResponseMode
	}
	return c
}

// Client is a synchronous one-shot sender. It is stateless between sends;
// a zero-cost value per call site is fine.
type Client struct {
	cfg Config
}

func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg.WithDefaults()}
}

// Send dials addr, writes request in full, reads one response per the
// configured mode, and closes the connection.
func (c *Client) Send(ctx context.Context, addr string, request []byte) ([]byte, error) {
	dialer := net.Dialer{Timeout: c.cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	if _, err := conn.Write(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSend, err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	if c.cfg.ResponseMode == ResponseSingleRead {
		return c.readOnce(conn)
	}
	return c.readFrame(conn)
}

// readOnce captures a single read. A clean close before any byte arrives is
// an empty response, not an error; the legacy server sometimes answers a
// broadcast with nothing.
func (c *Client) readOnce(conn net.Conn) ([]byte, error) {
	buf := make([]byte, c.cfg.MaxResponseBytes)
	n, err := conn.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrIncompleteResponse, err)
}

// readFrame reads one whole command frame. A clean close before the first
// header byte is an empty response, same as readOnce; a close inside the
// frame is an incomplete response.
func (c *Client) readFrame(conn net.Conn) ([]byte, error) {
	f, err := protocol.ReadFrame(conn, protocol.Limits{MaxBodyBytes: c.cfg.MaxResponseBytes})
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if errors.Is(err, protocol.ErrBodyTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrResponseTooLarge, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrIncompleteResponse, err)
	}
	return protocol.AppendFrame(nil, f), nil
}
