package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/logger"
)

type httpServer struct {
	name     string
	server   *http.Server
	listener net.Listener

	logger *logger.Logger
}

func newHTTPServer(name string, handler http.Handler, addr string, cfg config.Server, logger *logger.Logger) *httpServer {
	return &httpServer{
		name: name,
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.RequestTimeout,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// listen binds the address so that bind errors surface before serving starts.
func (h *httpServer) listen() error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("%s server listen on %s: %w", h.name, h.server.Addr, err)
	}
	h.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before listen.
func (h *httpServer) Addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}
	return h.server.Addr
}

func (h *httpServer) serve() error {
	h.logger.Info().Str("server", h.name).Str("address", h.Addr()).Msg("launching HTTP server")
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server serve: %w", h.name, err)
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) {
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Err(err).Str("server", h.name).Msg("HTTP server shutdown")
		_ = h.server.Close()
		return
	}
	h.logger.Info().Str("server", h.name).Msg("HTTP server stopped")
}
