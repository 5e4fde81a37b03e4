// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/metrics"
)

const defaultProbeTimeout = time.Second

// StoreProbe periodically pings the counter store, publishes the result as
// the gateway_store_up gauge and logs every up/down transition.
type StoreProbe struct {
	pinger   Pinger
	interval time.Duration
	timeout  time.Duration
	metrics  *metrics.Metrics

	// up is nil until the first probe.
	up *bool

	logger *logger.Logger
}

func NewStoreProbe(pinger Pinger, interval time.Duration, m *metrics.Metrics, logger *logger.Logger) *StoreProbe {
	return &StoreProbe{
		pinger:   pinger,
		interval: interval,
		timeout:  min(interval, defaultProbeTimeout),
		metrics:  m,
		logger:   logger,
	}
}

// Run probes once immediately and then every interval until ctx is done.
func (p *StoreProbe) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("store probe started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("store probe stopped")
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

func (p *StoreProbe) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.pinger.Ping(pingCtx)
	if ctx.Err() != nil {
		return
	}

	up := err == nil
	p.metrics.SetStoreUp(up)

	if p.up != nil && *p.up == up {
		return
	}
	p.up = &up

	if up {
		p.logger.Info().Msg("counter store is up")
		return
	}
	p.logger.Error().Err(err).Msg("counter store is down")
}
