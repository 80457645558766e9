package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"

	"tripmock/internal/config"
	"tripmock/internal/logging"
)

var (
	// ErrServerStarted is returned by Start when the server is already listening.
	ErrServerStarted = errors.New("server already started")

	// ErrServerNotStarted is returned by Stop when the server is not listening.
	ErrServerNotStarted = errors.New("server not started")

	// ErrServerStopping is returned by Stop when another Stop is in progress.
	ErrServerStopping = errors.New("server already stopping")
)

// Server owns the HTTP listener. It moves between not listening and
// listening; Start and Stop return once the transition is complete.
type Server struct {
	cfg     config.ServerConfig
	handler http.Handler
	logger  *slog.Logger

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
	done     chan struct{}
	stopping bool
}

// NewServer creates a Server that will serve handler on cfg.Port.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
	}
}

// Start binds the listener and serves in the background. It returns once
// the port is bound, or with the bind error.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return ErrServerStarted
	}

	addr := net.JoinHostPort("", strconv.Itoa(s.cfg.Port))
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.LogError(s.logger, "server error", err, slog.String("addr", ln.Addr().String()))
		}
	}()

	s.srv = srv
	s.listener = ln
	s.done = done

	logging.LogOperation(s.logger, "server listening", slog.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully. When it returns the listener is
// closed and the port can be bound again. Addr stays available while the
// shutdown is in progress.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.srv == nil {
		s.mu.Unlock()
		return ErrServerNotStarted
	}
	if s.stopping {
		s.mu.Unlock()
		return ErrServerStopping
	}
	s.stopping = true
	srv, ln, done := s.srv, s.listener, s.done
	s.mu.Unlock()

	err := srv.Shutdown(ctx)
	if err != nil {
		// Deadline hit with requests still in flight.
		err = errors.Join(err, srv.Close())
	}
	<-done

	s.mu.Lock()
	s.srv = nil
	s.listener = nil
	s.done = nil
	s.stopping = false
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	logging.LogOperation(s.logger, "server stopped", slog.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or "" when the server is not listening.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
