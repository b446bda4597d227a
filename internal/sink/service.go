package sink

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/panjf2000/ants"
	"github.com/rs/zerolog"

	"github.com/danmuck/castctl/internal/logging"
	"github.com/danmuck/castctl/internal/observability"
	"github.com/danmuck/castctl/internal/protocol"
	"github.com/danmuck/castctl/internal/protocol/chat"
)

// Sink listener configuration.
type ServiceConfig struct {
	ListenAddr      string
	AdminAddr       string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxBodyBytes    uint32
	HandlerPoolSize int
}

// Sink defaults: protocol port open, admin endpoint off.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		ListenAddr:      ":29000",
		AdminAddr:       "",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    5 * time.Second,
		MaxBodyBytes:    128 * 1024,
		HandlerPoolSize: 128,
	}
}

// WithDefaults fills zero fields from DefaultServiceConfig.
func (c ServiceConfig) WithDefaults() ServiceConfig {
	def := DefaultServiceConfig()
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = def.ListenAddr
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = def.MaxBodyBytes
	}
	if c.HandlerPoolSize <= 0 {
		c.HandlerPoolSize = def.HandlerPoolSize
	}
	return c
}

// Status is the admin-facing service snapshot.
type Status struct {
	ListenAddr  string `json:"listen_addr"`
	Uptime      string `json:"uptime"`
	OpenConns   int64  `json:"open_connections"`
	FramesSeen  uint64 `json:"frames_seen"`
	AcksSent    uint64 `json:"acks_sent"`
	DecodeFails uint64 `json:"decode_failures"`
}

// Sink runtime service owning the accept loop and connection registry.
type Service struct {
	cfg ServiceConfig
	log zerolog.Logger

	connsMu sync.Mutex
	conns   map[net.Conn]struct{}

	clientCount atomic.Int64
	framesSeen  atomic.Uint64
	acksSent    atomic.Uint64
	decodeFails atomic.Uint64
	startedAt   time.Time
}

// Sink service constructor using explicit configuration.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		cfg:       cfg.WithDefaults(),
		log:       logging.Component("sink"),
		conns:     make(map[net.Conn]struct{}),
		startedAt: time.Now(),
	}
}

func (s *Service) Status() Status {
	return Status{
		ListenAddr:  s.cfg.ListenAddr,
		Uptime:      time.Since(s.startedAt).Round(time.Second).String(),
		OpenConns:   s.clientCount.Load(),
		FramesSeen:  s.framesSeen.Load(),
		AcksSent:    s.acksSent.Load(),
		DecodeFails: s.decodeFails.Load(),
	}
}

// Sink runtime entrypoint that blocks until signal shutdown.
func (s *Service) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return err
	}
	s.log.Info().Str("addr", ln.Addr().String()).Msg("listening")

	adminErr := make(chan error, 1)
	if addr := strings.TrimSpace(s.cfg.AdminAddr); addr != "" {
		go func() {
			adminErr <- s.serveAdmin(ctx, addr)
		}()
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.Serve(ctx, ln)
	}()
	select {
	case err := <-serveErr:
		return err
	case err := <-adminErr:
		if err != nil {
			return err
		}
		return <-serveErr
	}
}

// Sink accept loop over an existing listener. Connection handlers run on a
// bounded worker pool; Serve blocks when the pool is saturated, which is
// the intended backpressure.
func (s *Service) Serve(ctx context.Context, ln net.Listener) error {
	pool, err := ants.NewPoolWithFunc(s.cfg.HandlerPoolSize, func(arg interface{}) {
		conn, ok := arg.(net.Conn)
		if !ok {
			return
		}
		s.handleConn(conn)
	})
	if err != nil {
		return err
	}
	defer pool.Release()

	defer ln.Close()
	go func() {
		<-ctx.Done()
		s.closeAllConns()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}
		s.trackConn(conn)
		if err := pool.Invoke(conn); err != nil {
			s.log.Warn().Err(err).Msg("handler pool rejected connection")
			s.untrackConn(conn)
			_ = conn.Close()
		}
	}
}

// Sink connection handler: read frame, record, log, ack, repeat. A body
// that fails to decode closes the connection without an ack.
func (s *Service) handleConn(conn net.Conn) {
	defer conn.Close()
	defer s.untrackConn(conn)
	observability.ConnOpened()
	defer observability.ConnClosed()

	remote := conn.RemoteAddr().String()
	active := s.clientCount.Add(1)
	s.log.Info().Str("remote", remote).Int64("active_clients", active).Msg("client connected")
	defer func() {
		remaining := s.clientCount.Add(-1)
		s.log.Info().Str("remote", remote).Int64("active_clients", remaining).Msg("client disconnected")
	}()

	limits := protocol.Limits{MaxBodyBytes: s.cfg.MaxBodyBytes}
	for {
		_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		f, err := protocol.ReadFrame(conn, limits)
		if err != nil {
			switch {
			case errors.Is(err, io.EOF), errors.Is(err, net.ErrClosed):
				// Client hung up, or shutdown closed the connection.
			case errors.Is(err, os.ErrDeadlineExceeded):
				s.log.Info().Str("remote", remote).Msg("idle timeout")
			default:
				s.decodeFails.Add(1)
				observability.RecordDecodeError("frame")
				s.log.Warn().Err(err).Str("remote", remote).Msg("read frame")
			}
			return
		}
		s.framesSeen.Add(1)
		observability.RecordFrame(f.Opcode, len(f.Body))

		if !s.logFrame(remote, f) {
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		if err := protocol.WriteFrame(conn, protocol.Frame{Opcode: f.Opcode}); err != nil {
			s.log.Warn().Err(err).Str("remote", remote).Msg("write ack")
			return
		}
		s.acksSent.Add(1)
		observability.RecordAck()
	}
}

// logFrame reports whether the frame was sound enough to ack.
func (s *Service) logFrame(remote string, f protocol.Frame) bool {
	if f.Opcode != chat.OpBroadcast {
		preview := f.Body
		if len(preview) > 32 {
			preview = preview[:32]
		}
		s.log.Info().
			Str("remote", remote).
			Uint32("opcode", f.Opcode).
			Int("body_len", len(f.Body)).
			Hex("body_preview", preview).
			Msg("frame")
		return true
	}

	b, err := chat.DecodeBroadcast(f)
	if err != nil {
		s.decodeFails.Add(1)
		observability.RecordDecodeError("broadcast")
		s.log.Warn().Err(err).Str("remote", remote).Msg("decode broadcast")
		return false
	}
	s.log.Info().
		Str("remote", remote).
		Uint8("channel", b.Channel).
		Uint8("emotion", b.Emotion).
		Uint32("role_id", b.RoleID).
		Str("text", b.Text).
		Hex("extra", b.Extra).
		Msg("broadcast")
	return true
}

// Sink connection-tracking add operation for coordinated shutdown.
func (s *Service) trackConn(conn net.Conn) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	s.conns[conn] = struct{}{}
}

// Sink connection-tracking remove operation after connection teardown.
func (s *Service) untrackConn(conn net.Conn) {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	delete(s.conns, conn)
}

// Sink shutdown helper that closes and drains tracked active connections.
func (s *Service) closeAllConns() {
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, conn)
	}
}
