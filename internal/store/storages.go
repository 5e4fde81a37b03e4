// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages aggregates the gateway's storage backends.
type Storages struct {
	Counter CounterStore
}

const defaultStartupPingTimeout = time.Second

// NewStorages connects to the redis counter store and pings it once, bounded
// by the dial timeout.
//
// When requireReachable is false an unreachable store is only logged: the
// rate limiter's failure mode decides how requests are treated while it is
// down, and the store probe worker reports when it comes back. When it is
// true the client is closed and the ping error is returned.
func NewStorages(ctx context.Context, cfg config.Redis, requireReachable bool, log *logger.Logger) (*Storages, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		MaxRetries:   -1, // single attempt per call

		ContextTimeoutEnabled: true,
	})
	counter := NewRedisCounterStore(client, log)

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = defaultStartupPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := counter.Ping(pingCtx); err != nil {
		if requireReachable {
			_ = counter.Close()
			return nil, fmt.Errorf("error connecting to counter store at %s: %w", cfg.Addr, err)
		}
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("counter store is not reachable at startup")
	} else {
		log.Info().Str("addr", cfg.Addr).Msg("connected to counter store successfully")
	}

	return &Storages{Counter: counter}, nil
}

// Close releases all storage connections.
func (s *Storages) Close() error {
	return s.Counter.Close()
}
