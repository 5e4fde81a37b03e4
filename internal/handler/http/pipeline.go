// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// Filter wraps the remainder of the chain. A filter either calls next or
// writes the terminal response itself.
type Filter func(next http.Handler) http.Handler

// Filters returns the gateway's filters in execution order. The order is
// the same for every request.
func (h *Handler) Filters() []Filter {
	return []Filter{
		h.correlate,
		h.rateLimit,
		h.authenticate,
	}
}

// Chain wraps final with filters so that filters[0] runs first.
func Chain(final http.Handler, filters ...Filter) http.Handler {
	for i := len(filters) - 1; i >= 0; i-- {
		final = filters[i](final)
	}
	return final
}
