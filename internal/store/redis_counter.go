// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/models"
	"github.com/redis/go-redis/v9"
)

// incrementWindowScript increments KEYS[1] and sets its expiry to ARGV[1]
// milliseconds only when the key was just created. A key found without a TTL
// (left behind by a crash between INCR and PEXPIRE of an older deployment)
// gets the window applied again so it cannot block an identity forever.
//
// Returns {count, pttl}.
var incrementWindowScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

type redisCounterStore struct {
	client redis.UniversalClient
	logger *logger.Logger
}

// NewRedisCounterStore returns a [CounterStore] backed by client.
func NewRedisCounterStore(client redis.UniversalClient, log *logger.Logger) CounterStore {
	return &redisCounterStore{client: client, logger: log}
}

func (s *redisCounterStore) IncrementWindow(ctx context.Context, key string, window time.Duration) (models.WindowCount, error) {
	windowMs := window.Milliseconds()
	if windowMs < 1 {
		windowMs = 1
	}

	reply, err := incrementWindowScript.Run(ctx, s.client, []string{key}, windowMs).Int64Slice()
	if err != nil {
		s.logger.Err(err).Str("key", key).Msg("error incrementing rate limit window")
		return models.WindowCount{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if len(reply) != 2 {
		return models.WindowCount{}, fmt.Errorf("%w: got %d values", ErrUnexpectedReply, len(reply))
	}

	return models.WindowCount{
		Count: reply[0],
		TTL:   time.Duration(reply[1]) * time.Millisecond,
	}, nil
}

func (s *redisCounterStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisCounterStore) Close() error {
	return s.client.Close()
}
