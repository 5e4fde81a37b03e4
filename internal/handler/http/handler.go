// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/metrics"
	"github.com/MKhiriev/lms-gateway/internal/service"
	"github.com/MKhiriev/lms-gateway/internal/utils"
)

// IDGenerator produces correlation ids.
type IDGenerator interface {
	Generate() string
}

type Handler struct {
	services *service.Services
	upstream http.Handler
	metrics  *metrics.Metrics
	ids      IDGenerator

	publicPaths      PublicPaths
	tiered           bool
	structuredErrors bool

	logger *logger.Logger
}

// NewHandler builds the gateway handler. upstream is the router that
// receives requests which passed every filter.
func NewHandler(services *service.Services, upstream http.Handler, m *metrics.Metrics, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:         services,
		upstream:         upstream,
		metrics:          m,
		ids:              utils.NewUUIDGenerator(),
		publicPaths:      NewPublicPaths(cfg.App.PublicPaths),
		tiered:           cfg.RateLimit.QuotaTable().Tiered(),
		structuredErrors: cfg.App.StructuredErrors,
		logger:           logger,
	}
}
