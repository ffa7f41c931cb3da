// Package server exposes hand scoring over websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/handrank/ranktable"
)

// Server answers scoring requests on /ws and liveness checks on /health.
type Server struct {
	addr         string
	scorer       ranktable.Scorer
	clock        quartz.Clock
	readTimeout  time.Duration
	writeTimeout time.Duration
	upgrader     websocket.Upgrader
	logger       *log.Logger
	httpServer   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock websocket deadlines are computed from.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithTimeouts sets the per-message read and write deadlines.
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger.WithPrefix("server")
	}
}

// NewServer creates a server scoring hands with scorer.
func NewServer(addr string, scorer ranktable.Scorer, opts ...Option) *Server {
	s := &Server{
		addr:         addr,
		scorer:       scorer,
		clock:        quartz.NewReal(),
		readTimeout:  30 * time.Second,
		writeTimeout: 10 * time.Second,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readTimeout,
	}
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("Starting scoring server", "addr", s.addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Stopping scoring server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) deadline(d time.Duration) time.Time {
	return s.clock.Now().Add(d)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	s.logger.Debug("Client connected", "remote", r.RemoteAddr)
	newConnection(conn, s).serve()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
