package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"
)

const (
	readHeaderTimeout = 15 * time.Second
	drainTimeout      = 30 * time.Second
)

// ListenAndServeWithShutdown serves until Shutdown is called or the process
// receives SIGINT or SIGTERM. On a signal, in-flight requests get
// drainTimeout to finish.
func (s *Server) ListenAndServeWithShutdown() error {
	addr := net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	hs := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: readHeaderTimeout}
	s.mu.Lock()
	s.httpServer, s.listener = hs, ln
	s.mu.Unlock()

	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() { served <- hs.Serve(ln) }()

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("server started")
	close(s.ready)

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-sigCtx.Done():
		s.logger.Info().Msg("signal received, draining connections")
	}

	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	if err := hs.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("shutdown error")
		return err
	}
	<-served

	s.logger.Info().Msg("server shutdown complete")
	return nil
}

// Shutdown stops a running server, waiting for active requests until ctx
// expires. It is a no-op before the server has started.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	hs := s.httpServer
	s.mu.Unlock()

	if hs == nil {
		return nil
	}
	return hs.Shutdown(ctx)
}

// Addr returns the listening address, or "" before the server has started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
