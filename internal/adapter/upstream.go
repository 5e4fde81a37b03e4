// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/logger"
)

// NewUpstreamRouter mounts one reverse proxy per route. A route with an empty
// prefix (or "/") becomes the catch-all; without one, unmatched paths get 404.
// The request path is forwarded unchanged.
func NewUpstreamRouter(routes []config.Route, log *logger.Logger) (http.Handler, error) {
	if len(routes) == 0 {
		return nil, ErrNoRoutes
	}

	router := chi.NewRouter()
	seen := make(map[string]struct{}, len(routes))

	for _, route := range routes {
		if route.Upstream == nil || route.Upstream.Host == "" {
			return nil, fmt.Errorf("%w: route %q", ErrInvalidUpstream, route.Prefix)
		}

		prefix := strings.TrimSuffix(route.Prefix, "/")
		if _, ok := seen[prefix]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePrefix, route.Prefix)
		}
		seen[prefix] = struct{}{}

		proxy := newReverseProxy(route.Upstream)
		if prefix == "" {
			router.Handle("/*", proxy)
		} else {
			router.Handle(prefix, proxy)
			router.Handle(prefix+"/*", proxy)
		}

		log.Info().
			Str("prefix", route.Prefix).
			Str("upstream", route.Upstream.String()).
			Msg("upstream route mounted")
	}

	return router, nil
}

func newReverseProxy(target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.FromRequest(r).Err(err).
				Str("upstream", target.Host).
				Str("path", r.URL.Path).
				Msg("proxy error")
			w.WriteHeader(http.StatusBadGateway)
		},
	}
}
