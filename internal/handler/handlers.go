// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	nethttp "net/http"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/handler/http"
	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/metrics"
	"github.com/MKhiriev/lms-gateway/internal/service"
)

type Handlers struct {
	Gateway *http.Handler
	Admin   *http.AdminHandler
}

// NewHandlers creates the gateway handler when a gateway address is set and
// the admin handler when an admin address is set.
func NewHandlers(
	services *service.Services,
	upstream nethttp.Handler,
	m *metrics.Metrics,
	pinger http.Pinger,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		if upstream == nil {
			return nil, errNoUpstream
		}
		handlers.Gateway = http.NewHandler(services, upstream, m, cfg, logger)
	}
	if cfg.Server.AdminAddress != "" {
		handlers.Admin = http.NewAdminHandler(m, pinger, logger)
	}

	if handlers.Gateway == nil && handlers.Admin == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
