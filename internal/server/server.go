// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/handler"
	"github.com/MKhiriev/imperial-command/internal/logger"
)

// ShutdownTimeout bounds the wait for in-flight requests on shutdown.
const ShutdownTimeout = 10 * time.Second

type server struct {
	httpServer *httpServer
	listener   net.Listener
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

// newServerOnListener serves on l instead of binding cfg.HTTPAddress.
func newServerOnListener(handlers *handler.Handlers, l net.Listener, logger *logger.Logger) (*server, error) {
	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}
	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), config.Server{HTTPAddress: l.Addr().String()}, logger),
		listener:   l,
		logger:     logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
		if s.listener != nil {
			errCh <- s.httpServer.runOn(s.listener)
			return
		}
		errCh <- s.httpServer.RunServer()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%w: %w", errRunningHTTPServer, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}

	<-errCh
	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("%w: %w", errShuttingDownServer, err)
	}
	return nil
}
