// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/lms-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// RateLimitService decides whether one more request from an identity fits
// into the quota of its identity class.
type RateLimitService interface {
	// Allow counts the request and returns the decision. Over-quota requests
	// return the populated decision together with ErrQuotaExceeded. A store
	// failure under the closed failure mode returns ErrUpstreamStoreUnavailable.
	Allow(ctx context.Context, identity string, class models.IdentityClass) (models.RateLimitDecision, error)
}

// AuthService verifies access tokens issued by the LMS identity service.
type AuthService interface {
	// ParseToken verifies tokenString and returns its claims, or one of
	// ErrUnauthenticated, ErrInvalidToken and ErrTokenIsExpired.
	ParseToken(ctx context.Context, tokenString string) (models.Claims, error)

	// Classify maps an Authorization header value to an identity class.
	// Anything that does not verify is anonymous.
	Classify(ctx context.Context, authorizationHeader string) models.IdentityClass
}
