// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/metrics"
	"github.com/MKhiriev/lms-gateway/internal/utils"
)

const readinessTimeout = time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AdminHandler serves the operational endpoints. It is mounted on its own
// listener and never goes through the gateway filters.
type AdminHandler struct {
	metrics *metrics.Metrics
	pinger  Pinger
	logger  *logger.Logger
}

func NewAdminHandler(m *metrics.Metrics, pinger Pinger, logger *logger.Logger) *AdminHandler {
	logger.Info().Msg("admin handler created")
	return &AdminHandler{
		metrics: m,
		pinger:  pinger,
		logger:  logger,
	}
}

func (a *AdminHandler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Handle("/metrics", a.metrics.Handler())
	router.Get("/healthz", a.healthz)
	router.Get("/readyz", a.readyz)

	return router
}

type statusResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (a *AdminHandler) healthz(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, statusResponse{Status: "ok"}, http.StatusOK); err != nil {
		a.logger.Err(err).Msg("error writing healthz response")
	}
}

func (a *AdminHandler) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp, status := statusResponse{Status: "ok"}, http.StatusOK
	if err := a.pinger.Ping(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("readiness check failed")
		resp, status = statusResponse{Status: "unavailable", Error: err.Error()}, http.StatusServiceUnavailable
	}

	if _, err := utils.WriteJSON(w, resp, status); err != nil {
		a.logger.Err(err).Msg("error writing readyz response")
	}
}
