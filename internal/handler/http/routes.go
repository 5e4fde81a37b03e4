// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init mounts the filter chain in front of the upstream router. Every method
// and path goes through the same chain. Panics below the correlator are
// answered with 500 by the recoverer after the correlator logged them.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Handle("/*", Chain(h.upstream, h.Filters()...))

	return router
}
