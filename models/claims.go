// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Role values carried in the "role" claim of LMS access tokens.
const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// Claims is the verified identity extracted from a signed access token.
//
// It embeds [jwt.RegisteredClaims] for the standard claim set (sub, exp, iat,
// iss) and adds the LMS-specific email and role claims. Claims are derived
// transiently for the duration of one request and are never persisted by the
// gateway.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the user's e-mail address ("email" claim).
	Email string `json:"email,omitempty"`

	// Role is the user's LMS role ("role" claim), e.g. STUDENT or ADMIN.
	Role string `json:"role,omitempty"`
}

// UserID returns the subject claim, which carries the LMS user identifier.
func (c Claims) UserID() string {
	return c.Subject
}

// IsAdmin reports whether the claims carry the administrator role.
func (c Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
