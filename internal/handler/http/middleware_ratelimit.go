// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/metrics"
	"github.com/MKhiriev/lms-gateway/internal/service"
	"github.com/MKhiriev/lms-gateway/models"
)

const (
	rateLimitLimitHeader     = "X-RateLimit-Limit"
	rateLimitRemainingHeader = "X-RateLimit-Remaining"
	rateLimitResetHeader     = "X-RateLimit-Reset"
	retryAfterHeader         = "Retry-After"
)

// rateLimit counts the request against the caller's fixed window and stops
// the chain with 429 once the quota is used up, or with 503 when the counter
// store is down and the limiter fails closed.
func (h *Handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		identity := clientIdentity(r)
		class := models.ClassAnonymous
		if h.tiered {
			class = h.services.AuthService.Classify(ctx, r.Header.Get("Authorization"))
		}

		decision, err := h.services.RateLimitService.Allow(ctx, identity, class)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrQuotaExceeded):
				setRateLimitHeaders(w.Header(), decision)
				w.Header().Set(retryAfterHeader, strconv.FormatInt(retryAfterSeconds(decision.Reset), 10))

				outcome := metrics.OutcomeRejected
				if decision.Degraded {
					outcome = metrics.OutcomeDegradedRejected
				}
				h.metrics.RateLimitDecision(decision.Class, outcome)

				log.Warn().
					Str("identity", identity).
					Str("tier", decision.Class.String()).
					Int64("limit", decision.Limit).
					Bool("degraded", decision.Degraded).
					Msg("rate limit exceeded")
			case errors.Is(err, service.ErrUpstreamStoreUnavailable):
				h.metrics.RateLimitDecision(class, metrics.OutcomeUnavailable)
				log.Err(err).Str("identity", identity).Msg("rate limit store unavailable")
			default:
				log.Err(err).Str("identity", identity).Msg("error occurred during rate limit check")
			}
			h.writeError(w, r, err)
			return
		}

		outcome := metrics.OutcomeAllowed
		if decision.Degraded {
			outcome = metrics.OutcomeDegradedAllowed
			log.Debug().Str("identity", identity).Msg("rate limit decided without store")
		}
		h.metrics.RateLimitDecision(decision.Class, outcome)

		r = r.Clone(ctx)
		setRateLimitHeaders(w.Header(), decision)
		setRateLimitHeaders(r.Header, decision)

		next.ServeHTTP(w, r)
	})
}

func setRateLimitHeaders(header http.Header, d models.RateLimitDecision) {
	header.Set(rateLimitLimitHeader, strconv.FormatInt(d.Limit, 10))
	header.Set(rateLimitRemainingHeader, strconv.FormatInt(max(d.Remaining, 0), 10))
	header.Set(rateLimitResetHeader, strconv.FormatInt(ceilSeconds(d.Reset), 10))
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Seconds()))
}

func retryAfterSeconds(d time.Duration) int64 {
	return max(ceilSeconds(d), 1)
}
