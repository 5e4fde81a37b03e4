// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilderFailsValidation verifies that a config without the
// operator-chosen values is rejected.
func TestBuild_EmptyBuilderFailsValidation(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterLayersOverride verifies that later non-zero fields win and
// zero fields keep the earlier value.
func TestBuild_LaterLayersOverride(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{
			App:       App{TokenIssuer: "issuer"},
			RateLimit: RateLimit{Limit: 5, FailureMode: FailOpen},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, int64(5), cfg.RateLimit.Limit)
	assert.Equal(t, FailOpen, cfg.RateLimit.FailureMode)
	assert.Equal(t, DefaultWindow, cfg.RateLimit.Window)
	assert.Equal(t, DefaultPublicPaths, cfg.App.PublicPaths)
}

// ── withDefaults / withEnv / withFlags ────────────────────────────────────────

func TestWithDefaults_AppendsDefaults(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withDefaults())
	require.Len(t, b.configs, 1)
	assert.Equal(t, DefaultStoreTimeout, b.configs[0].RateLimit.StoreTimeout)
	assert.Equal(t, DefaultKeyPrefix, b.configs[0].RateLimit.KeyPrefix)
	assert.Empty(t, b.configs[0].RateLimit.FailureMode)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_TOKEN_ISSUER":        "env-issuer",
		"RATE_LIMIT_FAILURE_MODE": "closed",
	})

	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())

	require.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
	assert.Equal(t, "env-issuer", b.configs[0].App.TokenIssuer)
	assert.Equal(t, FailClosed, b.configs[0].RateLimit.FailureMode)
}

func TestWithEnv_SetsErrorOnBadValue(t *testing.T) {
	setEnvVars(t, map[string]string{"RATE_LIMIT_LIMIT": "lots"})

	b := newConfigBuilder().withEnv()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

func TestWithFlags_SetsErrorOnBadFlag(t *testing.T) {
	withArgs(t, "-a", "nowhere")

	b := newConfigBuilder().withFlags()
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()
	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	path := writeTempJSONConfig(t, `{"rate_limit": {"window": "10s"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, 10*time.Second, b.configs[1].RateLimit.Window)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	b.withJSON()
	assert.Error(t, b.err)
	assert.Len(t, b.configs, 1)
}

// TestWithJSON_UsesLastPath verifies that the flag path wins over the env path.
func TestWithJSON_UsesLastPath(t *testing.T) {
	first := writeTempJSONConfig(t, `{"app": {"token_issuer": "first"}}`)
	second := writeTempJSONConfig(t, `{"app": {"token_issuer": "second"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: first},
		&StructuredConfig{JSONFilePath: second},
	)
	b.withJSON()

	require.Len(t, b.configs, 3)
	assert.Equal(t, "second", b.configs[2].App.TokenIssuer)
}

func TestWithJSON_DoesNotAppend_WhenErrorAlreadySet(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: writeTempJSONConfig(t, `{}`)})

	b.withJSON()
	assert.Len(t, b.configs, 1)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_Precedence runs the full chain: defaults, env,
// flags and JSON, each overriding the previous one.
func TestGetStructuredConfig_Precedence(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, `{"rate_limit": {"limit": 7}}`)
	setEnvVars(t, map[string]string{
		"APP_TOKEN_SIGN_KEY":      "secret",
		"RATE_LIMIT_FAILURE_MODE": "closed",
		"RATE_LIMIT_LIMIT":        "50",
		"STORAGE_REDIS_ADDR":      "redis:6379",
		"SERVER_UPSTREAM_URL":     "http://backend:8081",
		"CONFIG":                  jsonPath,
	})
	withArgs(t, "-failure-mode", "open", "-limit", "20")

	cfg, err := GetStructuredConfig()
	require.NoError(t, err)

	assert.Equal(t, FailOpen, cfg.RateLimit.FailureMode)
	assert.Equal(t, int64(7), cfg.RateLimit.Limit)
	assert.Equal(t, DefaultWindow, cfg.RateLimit.Window)
	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
}

func TestGetStructuredConfig_RequiresFailureMode(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_TOKEN_SIGN_KEY":  "secret",
		"STORAGE_REDIS_ADDR":  "redis:6379",
		"SERVER_UPSTREAM_URL": "http://backend:8081",
	})
	withArgs(t)

	cfg, err := GetStructuredConfig()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidRateLimitConfigs)
}
