// Package server owns HTTP server initialization and lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
)

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
	// ReadHeaderTimeout bounds header parsing only. No write timeout is
	// set: an invocation blocks for as long as the model takes.
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
}

// DefaultConfig returns default HTTP server configuration.
func DefaultConfig() Config {
	return Config{
		Host:              "0.0.0.0",
		Port:              8080,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Server wraps the HTTP server.
type Server struct {
	config Config
	logger *logging.Logger
	http   *http.Server
}

// NewServer creates a new HTTP server with the given handler and configuration.
func NewServer(handler http.Handler, logger *logging.Logger, config Config) *Server {
	if logger == nil {
		logger = logging.New(nil)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:           handler,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		IdleTimeout:       config.IdleTimeout,
	}

	return &Server{
		config: config,
		logger: logger,
		http:   httpServer,
	}
}

// Start starts the HTTP server and blocks until it stops. A bind failure is
// returned immediately; the caller treats it as fatal.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	s.logger.Info("shutdown complete")
	return nil
}
