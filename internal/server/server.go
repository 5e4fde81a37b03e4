// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/handler"
	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/workers"
)

type server struct {
	gateway *httpServer
	admin   *httpServer
	workers *workers.Workers

	// ready is closed once all listeners are bound.
	ready chan struct{}

	shutdownTimeout time.Duration
	logger          *logger.Logger
}

func NewServer(handlers *handler.Handlers, w *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{
		workers:         w,
		ready:           make(chan struct{}),
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}

	if handlers.Gateway != nil && cfg.HTTPAddress != "" {
		servers.gateway = newHTTPServer("gateway", handlers.Gateway.Init(), cfg.HTTPAddress, cfg, logger)
	}
	if handlers.Admin != nil && cfg.AdminAddress != "" {
		servers.admin = newHTTPServer("admin", handlers.Admin.Init(), cfg.AdminAddress, cfg, logger)
	}

	if servers.gateway == nil && servers.admin == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := s.Run(ctx); err != nil {
		s.logger.Err(err).Msg("error running server")
		return
	}
	s.logger.Info().Msg("server shutdown gracefully")
}

func (s *server) Run(ctx context.Context) error {
	listeners := s.listeners()
	for _, l := range listeners {
		if err := l.listen(); err != nil {
			s.closeListeners()
			return err
		}
	}

	close(s.ready)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	// a failing listener stops the whole process
	for _, l := range listeners {
		wg.Go(func() {
			if err := l.serve(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				cancel()
			}
		})
	}

	if s.workers != nil {
		wg.Go(func() {
			s.workers.Run(ctx)
		})
	}

	<-ctx.Done()
	s.logger.Info().Msg("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer shutdownCancel()
	for _, l := range listeners {
		l.shutdown(shutdownCtx)
	}

	wg.Wait()

	return errors.Join(errs...)
}

func (s *server) listeners() []*httpServer {
	var ls []*httpServer
	if s.gateway != nil {
		ls = append(ls, s.gateway)
	}
	if s.admin != nil {
		ls = append(ls, s.admin)
	}
	return ls
}

func (s *server) closeListeners() {
	for _, l := range s.listeners() {
		if l.listener != nil {
			_ = l.listener.Close()
		}
	}
}
