// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Default values applied before any other source.
const (
	DefaultHTTPAddress        = ":8080"
	DefaultAdminAddress       = ":9090"
	DefaultRequestTimeout     = 30 * time.Second
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultLimit              = 100
	DefaultWindow             = time.Minute
	DefaultKeyPrefix          = "rate_limit"
	DefaultStoreTimeout       = 200 * time.Millisecond
	DefaultStoreProbeInterval = 15 * time.Second
	DefaultLogLevel           = "debug"
)

// DefaultPublicPaths are the path prefixes reachable without a token.
var DefaultPublicPaths = []string{"/api/v1/auth/", "/api/v1/courses"}

// defaults returns the lowest-priority configuration layer.
// FailureMode, TokenSignKey, the redis address and the upstream are left
// empty on purpose: they have to be chosen by the operator.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			PublicPaths: append([]string(nil), DefaultPublicPaths...),
			LogLevel:    DefaultLogLevel,
		},
		RateLimit: RateLimit{
			Limit:        DefaultLimit,
			Window:       DefaultWindow,
			KeyPrefix:    DefaultKeyPrefix,
			StoreTimeout: DefaultStoreTimeout,
		},
		Storage: Storage{
			Redis: Redis{
				DialTimeout:  time.Second,
				ReadTimeout:  DefaultStoreTimeout,
				WriteTimeout: DefaultStoreTimeout,
			},
		},
		Server: Server{
			HTTPAddress:     DefaultHTTPAddress,
			AdminAddress:    DefaultAdminAddress,
			RequestTimeout:  DefaultRequestTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Workers: Workers{
			StoreProbeInterval: DefaultStoreProbeInterval,
		},
	}
}
