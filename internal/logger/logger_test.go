// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLast(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestNewLogger_NotNil(t *testing.T) {
	require.NotNil(t, NewLogger("test", "info"))
}

// TestNewLoggerTo_Fields verifies the role, timestamp and caller fields.
func TestNewLoggerTo_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "gateway", "debug")

	l.Info().Msg("hello")

	entry := decodeLast(t, &buf)
	assert.Equal(t, "gateway", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, "func", zerolog.CallerFieldName)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

// TestNewLoggerTo_LevelFilters verifies that entries below the configured level are dropped.
func TestNewLoggerTo_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "gateway", "warn")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	l.Info().Msg("dropped")
	assert.Empty(t, buf.String())

	l.Warn().Msg("kept")
	assert.NotEmpty(t, buf.String())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String(), "Nop logger should produce no output")
}

func TestGetChildLogger_IsIndependent(t *testing.T) {
	parent := NewLogger("parent", "info")
	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
}

// TestWithCorrelationID_AddsField verifies that the child carries the
// correlation id while the parent stays untouched.
func TestWithCorrelationID_AddsField(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLoggerTo(&buf, "gateway", "debug")

	parent.WithCorrelationID("cid-1").Info().Msg("child")
	entry := decodeLast(t, &buf)
	assert.Equal(t, "cid-1", entry[CorrelationIDField])
	assert.Equal(t, "gateway", entry["role"])

	parent.Info().Msg("parent")
	entry = decodeLast(t, &buf)
	assert.NotContains(t, entry, CorrelationIDField)
}

func TestFromContext_NotNil(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))
}

// TestAttach_RoundTrip verifies that FromContext and FromRequest return the
// logger stored with Attach.
func TestAttach_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, "gateway", "debug").WithCorrelationID("cid-2")
	ctx := l.Attach(context.Background())

	FromContext(ctx).Info().Msg("from context")
	assert.Equal(t, "cid-2", decodeLast(t, &buf)[CorrelationIDField])

	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("from request")
	assert.Equal(t, "cid-2", decodeLast(t, &buf)[CorrelationIDField])
}
