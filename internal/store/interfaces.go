// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/lms-gateway/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CounterStore is the shared store behind the rate limiter. It only exposes
// the atomic primitives the limiter needs; counters are never deleted
// explicitly and disappear when their window expires.
type CounterStore interface {
	// IncrementWindow atomically increments the counter at key and, when the
	// key was just created, sets its expiry to window. It returns the
	// post-increment count and the time left until the key expires.
	IncrementWindow(ctx context.Context, key string, window time.Duration) (models.WindowCount, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error

	Close() error
}
