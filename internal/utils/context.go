// Package utils provides general-purpose helper utilities
// used across different parts of the gateway.
// Includes tools for working with context, type-safe keys, HTTP response
// writing, correlation id generation, and JWT token issuance and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/lms-gateway/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// CorrelationIDCtxKey is the key under which the correlator stores the
	// request's correlation id.
	CorrelationIDCtxKey = contextKey("correlationID")

	// ClaimsCtxKey is the key under which the authenticator stores the
	// verified [models.Claims] of the request.
	ClaimsCtxKey = contextKey("claims")
)

// GetCorrelationIDFromContext retrieves the correlation id from the context.
//
// Returns the id and an ok flag that is false when the value is missing or
// has an unexpected type.
func GetCorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CorrelationIDCtxKey).(string)
	return id, ok
}

// GetClaimsFromContext retrieves the verified claims from the context.
//
// Example usage:
//
//	claims, ok := utils.GetClaimsFromContext(r.Context())
//	if !ok {
//	    // request was not authenticated (public path)
//	}
func GetClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(models.Claims)
	return claims, ok
}
