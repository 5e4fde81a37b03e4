// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/store"
	"github.com/MKhiriev/lms-gateway/models"
	"golang.org/x/time/rate"
)

// maxLocalLimiters caps the number of per-identity token buckets kept for the
// degraded path. When reached, the whole set is dropped and rebuilt lazily.
const maxLocalLimiters = 10_000

// rateLimitService implements RateLimitService with a fixed-window counter
// in the shared store.
type rateLimitService struct {
	counter      store.CounterStore
	quotas       models.QuotaTable
	keyPrefix    string
	failureMode  config.FailureMode
	storeTimeout time.Duration

	// local token buckets guarding the fail-open path, keyed like the store counters
	localMu  sync.Mutex
	localLim map[string]*rate.Limiter
}

// NewRateLimitService constructs a RateLimitService from the RateLimit
// configuration group.
func NewRateLimitService(counter store.CounterStore, cfg config.RateLimit) RateLimitService {
	return &rateLimitService{
		counter:      counter,
		quotas:       cfg.QuotaTable(),
		keyPrefix:    cfg.KeyPrefix,
		failureMode:  cfg.FailureMode,
		storeTimeout: cfg.StoreTimeout,
		localLim:     make(map[string]*rate.Limiter),
	}
}

// Allow increments the identity's window counter and compares it to the
// tier limit.
//
// The store call is detached from the client's cancellation and bounded by
// the configured store timeout. A store failure is resolved by the failure
// mode: closed returns ErrUpstreamStoreUnavailable, open admits the request
// (through a local token bucket when the tier has a burst).
func (s *rateLimitService) Allow(ctx context.Context, identity string, class models.IdentityClass) (models.RateLimitDecision, error) {
	log := logger.FromContext(ctx)

	class, tier := s.quotas.Lookup(class)
	key := s.key(identity, class)

	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	wc, err := s.counter.IncrementWindow(storeCtx, key, tier.Window)
	if err != nil {
		log.Err(err).
			Str("key", key).
			Str("failure_mode", string(s.failureMode)).
			Msg("rate limit store call failed")
		return s.degraded(key, class, tier)
	}

	decision := models.RateLimitDecision{
		Allowed:   wc.Count <= tier.Limit,
		Class:     class,
		Limit:     tier.Limit,
		Remaining: max(tier.Limit-wc.Count, 0),
		Reset:     wc.TTL,
	}
	if !decision.Allowed {
		return decision, ErrQuotaExceeded
	}

	return decision, nil
}

// key builds the counter key. Anonymous counters keep the plain
// "<prefix>:<identity>" form; other tiers count separately.
func (s *rateLimitService) key(identity string, class models.IdentityClass) string {
	if class == models.ClassAnonymous {
		return s.keyPrefix + ":" + identity
	}
	return s.keyPrefix + ":" + class.String() + ":" + identity
}

// degraded applies the configured failure mode after a store failure.
func (s *rateLimitService) degraded(key string, class models.IdentityClass, tier models.Tier) (models.RateLimitDecision, error) {
	if s.failureMode != config.FailOpen {
		return models.RateLimitDecision{Class: class, Limit: tier.Limit}, ErrUpstreamStoreUnavailable
	}

	decision := models.RateLimitDecision{
		Allowed:   true,
		Class:     class,
		Limit:     tier.Limit,
		Remaining: tier.Limit,
		Reset:     tier.Window,
		Degraded:  true,
	}

	if tier.Burst <= 0 {
		return decision, nil
	}

	lim := s.localLimiter(key, tier)
	decision.Allowed = lim.Allow()
	decision.Remaining = max(int64(lim.Tokens()), 0)
	if !decision.Allowed {
		return decision, ErrQuotaExceeded
	}

	return decision, nil
}

func (s *rateLimitService) localLimiter(key string, tier models.Tier) *rate.Limiter {
	s.localMu.Lock()
	defer s.localMu.Unlock()

	if lim, ok := s.localLim[key]; ok {
		return lim
	}

	if len(s.localLim) >= maxLocalLimiters {
		s.localLim = make(map[string]*rate.Limiter)
	}

	lim := rate.NewLimiter(rate.Every(tier.Window/time.Duration(tier.Limit)), tier.Burst)
	s.localLim[key] = lim
	return lim
}
