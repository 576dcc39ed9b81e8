// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/handler"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/workers"
)

const defaultShutdownTimeout = 10 * time.Second

type server struct {
	httpServer      *httpServer
	workers         *workers.Workers
	shutdownTimeout time.Duration

	// stop cancels the context of a running server.
	ctx  context.Context
	stop context.CancelFunc

	logger *logger.Logger
}

// NewServer builds the server for handlers. Background workers share the
// server's lifetime.
func NewServer(handlers *handler.Handlers, bg *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}
	if bg == nil {
		bg = workers.NewWorkers()
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	ctx, stop := context.WithCancel(context.Background())
	return &server{
		httpServer:      newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:         bg,
		shutdownTimeout: timeout,
		ctx:             ctx,
		stop:            stop,
		logger:          logger,
	}, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(s.ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if err := s.run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
		return err
	}
	return nil
}

func (s *server) Shutdown() {
	s.stop()
}

// run serves until ctx is done or the listener fails, then shuts the HTTP
// server down and waits for the workers to return.
func (s *server) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workersDone := make(chan struct{})
	go func() {
		defer close(workersDone)
		s.workers.Run(ctx)
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	var err error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop requested")
	case err = <-serveErr:
	}
	cancel()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancelShutdown()
	if shutdownErr := s.httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		err = errors.Join(err, shutdownErr)
	}

	<-workersDone
	if err == nil {
		s.logger.Info().Msg("server Shutdown gracefully")
	}
	return err
}
