// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/lms-gateway/internal/logger"
	"github.com/MKhiriev/lms-gateway/internal/metrics"
	"github.com/MKhiriev/lms-gateway/internal/service"
	"github.com/MKhiriev/lms-gateway/internal/utils"
)

const (
	userIDHeader    = "X-User-Id"
	userEmailHeader = "X-User-Email"
	userRoleHeader  = "X-User-Role"
)

// identityHeaders may only be set by the gateway.
var identityHeaders = []string{userIDHeader, userEmailHeader, userRoleHeader}

// authenticate lets public paths through untouched and requires a valid
// bearer token everywhere else. Verified claims are put into the context and
// announced to the upstream as identity headers.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		r = r.Clone(ctx)
		for _, name := range identityHeaders {
			r.Header.Del(name)
		}

		if h.publicPaths.Match(r.URL.Path) {
			h.metrics.AuthOutcome(metrics.AuthPublic)
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.metrics.AuthOutcome(metrics.AuthMissing)
			log.Warn().Err(ErrEmptyAuthorizationHeader).Str("path", r.URL.Path).Send()
			h.writeError(w, r, service.ErrUnauthenticated)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			h.metrics.AuthOutcome(metrics.AuthMissing)
			log.Warn().Err(err).Str("path", r.URL.Path).Send()
			h.writeError(w, r, service.ErrUnauthenticated)
			return
		}

		claims, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenIsExpired):
				h.metrics.AuthOutcome(metrics.AuthExpired)
				log.Err(err).Msg("token expired")
			default:
				h.metrics.AuthOutcome(metrics.AuthInvalid)
				log.Err(err).Msg("error occurred during parsing token")
			}
			h.writeError(w, r, err)
			return
		}

		setIdentityHeader(r.Header, userIDHeader, claims.UserID())
		setIdentityHeader(r.Header, userEmailHeader, claims.Email)
		setIdentityHeader(r.Header, userRoleHeader, claims.Role)

		h.metrics.AuthOutcome(metrics.AuthAuthenticated)
		log.Debug().Str("user_id", claims.UserID()).Str("user_role", claims.Role).Msg("request authenticated")

		r = r.WithContext(context.WithValue(ctx, utils.ClaimsCtxKey, claims))
		next.ServeHTTP(w, r)
	})
}

func getTokenFromAuthHeader(authHeader string) (string, error) {
	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", errors.Join(ErrInvalidAuthorizationHeader, err)
	}
	return tokenString, nil
}

func setIdentityHeader(header http.Header, name, value string) {
	if value != "" {
		header.Set(name, value)
	}
}
