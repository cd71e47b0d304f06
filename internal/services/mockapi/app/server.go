// Package server hosts the mock fraud-operations HTTP/WebSocket surface.
//
// The process serves the dashboard REST endpoints and the real-time alert
// feed from a single in-memory service, so the whole API runs without any
// external dependency.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fraudx/fraudx/internal/fraud/service"
	"github.com/fraudx/fraudx/internal/platform/timeouts"
)

// Config defines the inputs for the mock API transport boundary.
type Config struct {
	HTTPAddr          string
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the mock API HTTP/WebSocket process.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	svc             *service.Service
}

// NewServer builds a configured mock API server around an existing service.
func NewServer(svc *service.Service, config Config) (*Server, error) {
	if svc == nil {
		return nil, errors.New("service is required")
	}
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           withRequestLog(withTracing(NewHandler(svc))),
		ReadHeaderTimeout: config.ReadHeaderTimeout,
	}

	return &Server{
		httpAddr:        httpAddr,
		shutdownTimeout: config.ShutdownTimeout,
		httpServer:      httpServer,
		svc:             svc,
	}, nil
}

// Run creates and serves a mock API server until the context ends.
func Run(ctx context.Context, svc *service.Service, config Config) error {
	server, err := NewServer(svc, config)
	if err != nil {
		return fmt.Errorf("init mockapi server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve mockapi: %w", err)
	}
	return nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("mockapi server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("mockapi server listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the alert feed subscriptions owned by the service.
func (s *Server) Close() {
	if s == nil {
		return
	}
	s.svc.Close()
}
