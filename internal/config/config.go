// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/lms-gateway/models"
)

// FailureMode selects what the rate limiter does when the shared counter
// store cannot be reached within [RateLimit.StoreTimeout].
type FailureMode string

const (
	// FailOpen admits the request (optionally guarded by a local burst limiter).
	FailOpen FailureMode = "open"
	// FailClosed rejects the request with 503 Service Unavailable.
	FailClosed FailureMode = "closed"
)

// StructuredConfig is the top-level configuration container for the
// gateway. It aggregates all sub-configurations and is populated by merging
// defaults, environment variables, command-line flags, and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token verification, public path and response settings.
	App App `envPrefix:"APP_"`

	// RateLimit holds quota tiers and the store failure policy.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Storage holds the shared counter store connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses, upstream routes and timeouts.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the shared HMAC secret used to verify access tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim. Empty disables the check.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// PublicPaths lists path prefixes that bypass authentication.
	// Env: APP_PUBLIC_PATHS (comma separated)
	PublicPaths []string `env:"PUBLIC_PATHS" envSeparator:","`

	// StructuredErrors switches rejection bodies from empty to JSON.
	// Env: APP_STRUCTURED_ERRORS
	StructuredErrors bool `env:"STRUCTURED_ERRORS"`

	// LogLevel is the zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// RateLimit holds the quota configuration of the rate limiter.
type RateLimit struct {
	// Limit is the anonymous tier's requests per Window.
	// Env: RATE_LIMIT_LIMIT
	Limit int64 `env:"LIMIT"`

	// Window is the fixed-window length shared by the env-configured tiers.
	// Env: RATE_LIMIT_WINDOW
	Window time.Duration `env:"WINDOW"`

	// Burst sizes the local token bucket used while the store is down and
	// the failure mode is open. Zero disables local limiting.
	// Env: RATE_LIMIT_BURST
	Burst int `env:"BURST"`

	// AuthenticatedLimit enables a separate tier for verified callers.
	// Env: RATE_LIMIT_AUTHENTICATED_LIMIT
	AuthenticatedLimit int64 `env:"AUTHENTICATED_LIMIT"`

	// AdminLimit enables a separate tier for verified ADMIN callers.
	// Env: RATE_LIMIT_ADMIN_LIMIT
	AdminLimit int64 `env:"ADMIN_LIMIT"`

	// KeyPrefix scopes counter keys in the shared store.
	// Env: RATE_LIMIT_KEY_PREFIX
	KeyPrefix string `env:"KEY_PREFIX"`

	// FailureMode must be set explicitly to "open" or "closed".
	// Env: RATE_LIMIT_FAILURE_MODE
	FailureMode FailureMode `env:"FAILURE_MODE"`

	// StoreTimeout bounds every call to the shared store.
	// Env: RATE_LIMIT_STORE_TIMEOUT
	StoreTimeout time.Duration `env:"STORE_TIMEOUT"`

	// Tiers overrides individual tiers. Only settable from the JSON file.
	Tiers models.QuotaTable
}

// Storage groups the configuration for the shared counter store.
type Storage struct {
	Redis Redis `envPrefix:"REDIS_"`
}

// Redis holds connection settings of the redis-compatible counter store.
type Redis struct {
	// Addr is "host:port" of the redis server.
	// Env: STORAGE_REDIS_ADDR
	Addr string `env:"ADDR"`

	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`

	// Env: STORAGE_REDIS_DB
	DB int `env:"DB"`

	// Env: STORAGE_REDIS_DIAL_TIMEOUT
	DialTimeout time.Duration `env:"DIAL_TIMEOUT"`

	// Env: STORAGE_REDIS_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT"`

	// Env: STORAGE_REDIS_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the address the gateway pipeline listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// AdminAddress is the address of the metrics and health endpoints.
	// Env: SERVER_ADMIN_ADDRESS
	AdminAddress string `env:"ADMIN_ADDRESS"`

	// UpstreamURL is the backend that receives requests no route matches.
	// Env: SERVER_UPSTREAM_URL
	UpstreamURL string `env:"UPSTREAM_URL"`

	// Routes is a list of "prefix:url" pairs mapping path prefixes to backends.
	// Env: SERVER_ROUTES (comma separated)
	Routes []string `env:"ROUTES" envSeparator:","`

	// RequestTimeout bounds reading and writing a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown of both servers.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// StoreProbeInterval is how often the store health probe pings redis.
	// Env: WORKERS_STORE_PROBE_INTERVAL
	StoreProbeInterval time.Duration `env:"STORE_PROBE_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the gateway
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON file (path resolved from sources 2 and 3)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}

// QuotaTable assembles the rate-limit tiers.
//
// The anonymous tier always comes from Limit, Window and Burst. The
// authenticated and admin tiers exist only when their limits are positive.
// Entries of Tiers replace the corresponding env-derived tier; a zero Window
// in such an entry inherits Window.
func (r RateLimit) QuotaTable() models.QuotaTable {
	table := models.QuotaTable{
		models.ClassAnonymous: {Limit: r.Limit, Window: r.Window, Burst: r.Burst},
	}
	if r.AuthenticatedLimit > 0 {
		table[models.ClassAuthenticated] = models.Tier{Limit: r.AuthenticatedLimit, Window: r.Window, Burst: r.Burst}
	}
	if r.AdminLimit > 0 {
		table[models.ClassAdmin] = models.Tier{Limit: r.AdminLimit, Window: r.Window, Burst: r.Burst}
	}

	for class, tier := range r.Tiers {
		if tier.Window == 0 {
			tier.Window = r.Window
		}
		table[class] = tier
	}

	return table
}
