// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrQuotaExceeded is returned when the caller used up its tier's quota
	// for the current window.
	ErrQuotaExceeded = errors.New("rate limit quota exceeded")

	// ErrUpstreamStoreUnavailable is returned when the counter store failed
	// and the limiter is configured to fail closed.
	ErrUpstreamStoreUnavailable = errors.New("rate limit store unavailable")

	// ErrUnauthenticated is returned when a protected path was requested
	// without credentials.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidToken is returned for malformed tokens and bad signatures.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenIsExpired is returned for correctly signed tokens past their exp claim.
	ErrTokenIsExpired = errors.New("token is expired")
)
