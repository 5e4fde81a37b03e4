// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authenticator when parsing the "Authorization"
// HTTP header. Both are answered as [service.ErrUnauthenticated].
var (
	// ErrEmptyAuthorizationHeader is logged when a protected path is requested
	// without an "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is logged when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")
)
