// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the gateway's Prometheus collectors.
//
// Collectors are registered on a private registry exposed by the admin
// server, never on the global default registry. All recording methods are
// safe to call on a nil *Metrics, which disables metrics in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/lms-gateway/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gateway"

// Rate-limit decision outcomes.
const (
	OutcomeAllowed          = "allowed"
	OutcomeRejected         = "rejected"
	OutcomeDegradedAllowed  = "degraded_allowed"
	OutcomeDegradedRejected = "degraded_rejected"
	OutcomeUnavailable      = "unavailable"
)

// Authentication outcomes.
const (
	AuthPublic        = "public"
	AuthAuthenticated = "authenticated"
	AuthMissing       = "missing"
	AuthInvalid       = "invalid"
	AuthExpired       = "expired"
)

type Metrics struct {
	registry *prometheus.Registry

	requests           *prometheus.CounterVec
	requestDuration    prometheus.Histogram
	rateLimitDecisions *prometheus.CounterVec
	authOutcomes       *prometheus.CounterVec
	storeUp            prometheus.Gauge
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "requests_total",
				Help:      "Requests that passed through the gateway pipeline, by response status.",
			},
			[]string{"status"},
		),
		requestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "request_duration_seconds",
				Help:      "End-to-end request duration including the upstream call.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
			},
		),
		rateLimitDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ratelimit_decisions_total",
				Help:      "Rate limiter decisions by tier and outcome.",
			},
			[]string{"tier", "outcome"},
		),
		authOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_outcomes_total",
				Help:      "Authenticator outcomes.",
			},
			[]string{"outcome"},
		),
		storeUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_up",
				Help:      "1 when the last probe of the counter store succeeded.",
			},
		),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	m.requestDuration.Observe(d.Seconds())
}

// RateLimitDecision records one limiter outcome for the given tier.
func (m *Metrics) RateLimitDecision(class models.IdentityClass, outcome string) {
	if m == nil {
		return
	}
	m.rateLimitDecisions.WithLabelValues(class.String(), outcome).Inc()
}

// AuthOutcome records one authenticator outcome.
func (m *Metrics) AuthOutcome(outcome string) {
	if m == nil {
		return
	}
	m.authOutcomes.WithLabelValues(outcome).Inc()
}

// SetStoreUp updates the store health gauge.
func (m *Metrics) SetStoreUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.storeUp.Set(1)
		return
	}
	m.storeUp.Set(0)
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
