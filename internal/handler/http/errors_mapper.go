// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/lms-gateway/internal/service"
	"github.com/MKhiriev/lms-gateway/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrQuotaExceeded:            http.StatusTooManyRequests,
	service.ErrUnauthenticated:          http.StatusUnauthorized,
	service.ErrInvalidToken:             http.StatusUnauthorized,
	service.ErrTokenIsExpired:           http.StatusUnauthorized,
	service.ErrUpstreamStoreUnavailable: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError writes the terminal response for err. The body is empty unless
// structured errors are enabled.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	correlationID, _ := utils.GetCorrelationIDFromContext(r.Context())
	if wErr := utils.WriteError(w, statusFromError(err), h.structuredErrors, correlationID); wErr != nil {
		h.logger.Err(wErr).Msg("error writing error response")
	}
}
