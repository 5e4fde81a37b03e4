// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// validConfig returns defaults completed with the operator-chosen values.
func validConfig() *StructuredConfig {
	cfg := defaults()
	cfg.App.TokenSignKey = "secret"
	cfg.RateLimit.FailureMode = FailClosed
	cfg.Storage.Redis.Addr = "localhost:6379"
	cfg.Server.UpstreamURL = "http://backend:8081"
	return cfg
}

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	var data []byte
	switch body := v.(type) {
	case string:
		data = []byte(body)
	default:
		var err error
		data, err = json.Marshal(v)
		require.NoError(t, err)
	}
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// withArgs resets the global flag set and simulates the given command line.
func withArgs(t *testing.T, args ...string) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	oldArgs := os.Args
	os.Args = append([]string{"cmd"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_TOKEN_SIGN_KEY",
		"APP_TOKEN_ISSUER",
		"APP_PUBLIC_PATHS",
		"APP_STRUCTURED_ERRORS",
		"APP_LOG_LEVEL",

		"RATE_LIMIT_LIMIT",
		"RATE_LIMIT_WINDOW",
		"RATE_LIMIT_BURST",
		"RATE_LIMIT_AUTHENTICATED_LIMIT",
		"RATE_LIMIT_ADMIN_LIMIT",
		"RATE_LIMIT_KEY_PREFIX",
		"RATE_LIMIT_FAILURE_MODE",
		"RATE_LIMIT_STORE_TIMEOUT",

		"STORAGE_REDIS_ADDR",
		"STORAGE_REDIS_PASSWORD",
		"STORAGE_REDIS_DB",

		"SERVER_ADDRESS",
		"SERVER_ADMIN_ADDRESS",
		"SERVER_UPSTREAM_URL",
		"SERVER_ROUTES",
		"SERVER_REQUEST_TIMEOUT",
		"SERVER_SHUTDOWN_TIMEOUT",

		"WORKERS_STORE_PROBE_INTERVAL",
	}
	for _, k := range keys {
		// t.Setenv restores the previous value after the test.
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}
