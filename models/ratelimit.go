// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// IdentityClass groups callers that share a quota tier.
type IdentityClass string

const (
	// ClassAnonymous is any caller without a verified token.
	ClassAnonymous IdentityClass = "anonymous"
	// ClassAuthenticated is a caller with a verified non-admin token.
	ClassAuthenticated IdentityClass = "authenticated"
	// ClassAdmin is a caller with a verified token carrying the ADMIN role.
	ClassAdmin IdentityClass = "admin"
)

// String implements fmt.Stringer.
func (c IdentityClass) String() string {
	return string(c)
}

// Tier is the quota applied to one identity class.
type Tier struct {
	// Limit is the number of requests allowed inside one Window.
	Limit int64 `json:"limit"`

	// Window is the fixed-window length; the counter key expires after it.
	Window time.Duration `json:"window"`

	// Burst is the capacity of the in-process token bucket that guards the
	// degraded path while the shared store is unavailable. Zero disables it.
	Burst int `json:"burst"`
}

// QuotaTable maps identity classes to their tiers.
type QuotaTable map[IdentityClass]Tier

// Lookup returns the tier for class, falling back to the anonymous tier.
func (q QuotaTable) Lookup(class IdentityClass) (IdentityClass, Tier) {
	if tier, ok := q[class]; ok {
		return class, tier
	}
	return ClassAnonymous, q[ClassAnonymous]
}

// Tiered reports whether any class other than anonymous has its own tier.
// When it does not, the limiter never needs to inspect credentials.
func (q QuotaTable) Tiered() bool {
	for class := range q {
		if class != ClassAnonymous {
			return true
		}
	}
	return false
}

// WindowCount is the state of a fixed-window counter right after an increment.
type WindowCount struct {
	// Count is the post-increment value of the counter.
	Count int64

	// TTL is the time left until the window resets.
	TTL time.Duration
}

// RateLimitDecision is the outcome of one rate-limit check.
type RateLimitDecision struct {
	Allowed bool

	// Class is the identity class whose tier was applied.
	Class IdentityClass

	// Limit is the tier limit reported in X-RateLimit-Limit.
	Limit int64

	// Remaining is reported in X-RateLimit-Remaining; never negative.
	Remaining int64

	// Reset is the time left until the window resets.
	Reset time.Duration

	// Degraded is set when the decision was taken without the shared store.
	Degraded bool
}
