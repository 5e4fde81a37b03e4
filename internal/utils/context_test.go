// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/lms-gateway/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestCorrelationIDCtxKey(t *testing.T) {
	if CorrelationIDCtxKey.String() != "correlationID" {
		t.Errorf("expected 'correlationID', got '%s'", CorrelationIDCtxKey.String())
	}
}

func TestGetCorrelationIDFromContext_Success(t *testing.T) {
	ctx := context.WithValue(context.Background(), CorrelationIDCtxKey, "abc")

	id, ok := GetCorrelationIDFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if id != "abc" {
		t.Errorf("expected id=abc, got %s", id)
	}
}

func TestGetCorrelationIDFromContext_Missing(t *testing.T) {
	id, ok := GetCorrelationIDFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if id != "" {
		t.Errorf("expected empty id, got %s", id)
	}
}

func TestGetClaimsFromContext_Success(t *testing.T) {
	claims := models.Claims{Role: models.RoleStudent}
	claims.Subject = "42"
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, claims)

	got, ok := GetClaimsFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got.Subject != "42" || got.Role != models.RoleStudent {
		t.Errorf("unexpected claims: %+v", got)
	}
}

func TestGetClaimsFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "not-claims")

	_, ok := GetClaimsFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetClaimsFromContext_DifferentKey(t *testing.T) {
	otherKey := contextKey("otherKey")
	ctx := context.WithValue(context.Background(), otherKey, models.Claims{})

	_, ok := GetClaimsFromContext(ctx)

	if ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}
