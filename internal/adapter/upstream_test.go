// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/logger"
)

// newBackend starts a backend that echoes its name, the received path and
// selected headers.
func newBackend(t *testing.T, name string) *url.URL {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Backend", name)
		w.Header().Set("X-Seen-Path", r.URL.Path)
		w.Header().Set("X-Seen-Query", r.URL.RawQuery)
		w.Header().Set("X-Seen-User-Id", r.Header.Get("X-User-Id"))
		w.Header().Set("X-Seen-Forwarded-For", r.Header.Get("X-Forwarded-For"))
		w.WriteHeader(http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return u
}

func newGateway(t *testing.T, routes []config.Route) (*resty.Client, string) {
	t.Helper()
	router, err := NewUpstreamRouter(routes, logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return resty.New().SetBaseURL(srv.URL), srv.URL
}

func TestUpstreamRouter_PrefixRouting(t *testing.T) {
	users := newBackend(t, "users")
	courses := newBackend(t, "courses")
	fallback := newBackend(t, "default")

	client, _ := newGateway(t, []config.Route{
		{Prefix: "/api/v1/users", Upstream: users},
		{Prefix: "/api/v1/courses/", Upstream: courses},
		{Prefix: "", Upstream: fallback},
	})

	tests := []struct {
		path        string
		wantBackend string
	}{
		{"/api/v1/users", "users"},
		{"/api/v1/users/42", "users"},
		{"/api/v1/courses/7/lessons", "courses"},
		{"/api/v1/courses", "courses"},
		{"/api/v1/auth/login", "default"},
		{"/", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := client.R().Get(tt.path)
			require.NoError(t, err)

			assert.Equal(t, http.StatusTeapot, resp.StatusCode())
			assert.Equal(t, tt.wantBackend, resp.Header().Get("X-Backend"))
			assert.Equal(t, tt.path, resp.Header().Get("X-Seen-Path"))
		})
	}
}

func TestUpstreamRouter_ForwardsHeadersAndQuery(t *testing.T) {
	backend := newBackend(t, "default")
	client, _ := newGateway(t, []config.Route{{Upstream: backend}})

	resp, err := client.R().
		SetHeader("X-User-Id", "42").
		SetQueryParam("page", "2").
		Get("/api/v1/users/42")
	require.NoError(t, err)

	assert.Equal(t, "42", resp.Header().Get("X-Seen-User-Id"))
	assert.Equal(t, "page=2", resp.Header().Get("X-Seen-Query"))
	assert.NotEmpty(t, resp.Header().Get("X-Seen-Forwarded-For"))
}

func TestUpstreamRouter_NoCatchAll(t *testing.T) {
	users := newBackend(t, "users")
	client, _ := newGateway(t, []config.Route{{Prefix: "/api/v1/users", Upstream: users}})

	resp, err := client.R().Get("/api/v1/courses")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}

func TestUpstreamRouter_BadGateway(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	target, err := url.Parse(down.URL)
	require.NoError(t, err)
	down.Close()

	client, _ := newGateway(t, []config.Route{{Upstream: target}})

	resp, err := client.R().Get("/api/v1/courses")
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode())
	assert.Empty(t, resp.Body())
}

func TestNewUpstreamRouter_Errors(t *testing.T) {
	u, _ := url.Parse("http://users:8080")

	tests := []struct {
		name    string
		routes  []config.Route
		wantErr error
	}{
		{"no routes", nil, ErrNoRoutes},
		{"nil upstream", []config.Route{{Prefix: "/a"}}, ErrInvalidUpstream},
		{"duplicate prefix", []config.Route{{Prefix: "/a", Upstream: u}, {Prefix: "/a/", Upstream: u}}, ErrDuplicatePrefix},
		{"duplicate catch-all", []config.Route{{Prefix: "", Upstream: u}, {Prefix: "/", Upstream: u}}, ErrDuplicatePrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, err := NewUpstreamRouter(tt.routes, logger.Nop())
			assert.Nil(t, router)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
