// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/service"
	"github.com/MKhiriev/lms-gateway/internal/utils"
	"github.com/MKhiriev/lms-gateway/models"
)

const testSignKey = "test-sign-key"

type staticIDs string

func (s staticIDs) Generate() string { return string(s) }

func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		services:    services,
		ids:         staticIDs("corr-1"),
		publicPaths: NewPublicPaths([]string{"/api/v1/auth/", "/api/v1/courses"}),
		logger:      logger.Nop(),
	}
}

// injectNopLogger puts a nop logger into the request context, as the
// correlator would.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Attach(r.Context()))
}

// capture records the last request that reached the end of the chain.
type capture struct {
	called bool
	req    *http.Request
}

func (c *capture) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.called = true
	c.req = r
	w.WriteHeader(http.StatusOK)
}

func signedToken(t *testing.T, sub, email, role string, ttl time.Duration) string {
	t.Helper()
	claims := models.Claims{Email: email, Role: role}
	claims.Subject = sub
	token, err := utils.GenerateJWTToken(claims, ttl, testSignKey)
	require.NoError(t, err)
	return token
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func contextWithCorrelationID(r *http.Request, id string) context.Context {
	return context.WithValue(r.Context(), utils.CorrelationIDCtxKey, id)
}
