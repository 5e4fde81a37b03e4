// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/utils"
	"github.com/MKhiriev/lms-gateway/models"
	"github.com/golang-jwt/jwt/v5"
)

// authService is the concrete implementation of AuthService.
// It holds read-only verification parameters and is safe for concurrent use.
type authService struct {
	// tokenSignKey is the shared HMAC secret used to verify token signatures.
	tokenSignKey string

	// tokenIssuer is the expected "iss" claim; empty disables the check.
	tokenIssuer string
}

// NewAuthService constructs an AuthService from the App configuration group.
func NewAuthService(cfg config.App) AuthService {
	return &authService{
		tokenSignKey: cfg.TokenSignKey,
		tokenIssuer:  cfg.TokenIssuer,
	}
}

// ParseToken validates and parses a raw JWT string.
//
// Expired tokens map to ErrTokenIsExpired, every other verification failure
// to ErrInvalidToken. Both wrap the underlying jwt error for logging.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Claims, error) {
	if tokenString == "" {
		return models.Claims{}, ErrUnauthenticated
	}

	claims, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Claims{}, fmt.Errorf("%w: %w", ErrTokenIsExpired, err)
		}
		return models.Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return claims, nil
}

func (a *authService) Classify(ctx context.Context, authorizationHeader string) models.IdentityClass {
	if authorizationHeader == "" {
		return models.ClassAnonymous
	}

	token, err := utils.ParseBearerToken(authorizationHeader)
	if err != nil {
		return models.ClassAnonymous
	}

	claims, err := a.ParseToken(ctx, token)
	if err != nil {
		return models.ClassAnonymous
	}

	if claims.IsAdmin() {
		return models.ClassAdmin
	}
	return models.ClassAuthenticated
}
