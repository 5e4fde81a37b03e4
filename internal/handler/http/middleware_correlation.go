// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/lms-gateway/internal/utils"
)

const correlationIDHeader = "X-Correlation-ID"

// correlate is the first filter. It assigns a fresh correlation id, attaches
// a request-scoped logger to the context and writes one completion line once
// the rest of the chain has returned, whichever filter terminated it.
func (h *Handler) correlate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// client-supplied ids are never trusted
		correlationID := h.ids.Generate()

		log := h.logger.WithCorrelationID(correlationID)
		ctx := log.Attach(r.Context())
		ctx = context.WithValue(ctx, utils.CorrelationIDCtxKey, correlationID)

		r = r.Clone(ctx)
		r.Header.Set(correlationIDHeader, correlationID)
		w.Header().Set(correlationIDHeader, correlationID)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request started")

		rw := &responseWriter{ResponseWriter: w}
		completed := false

		defer func() {
			status := rw.Status()
			if !completed && !rw.wroteHeader {
				// panicking; the recoverer above answers 500
				status = http.StatusInternalServerError
			}

			duration := time.Since(start)
			h.metrics.ObserveRequest(status, duration)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote_addr", r.RemoteAddr).
				Int("status", status).
				Dur("duration", duration).
				Int("size", rw.size).
				Msg("request completed")
		}()

		next.ServeHTTP(rw, r)
		completed = true
	})
}
