package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/lms-gateway/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySubject is returned when a correctly signed token carries no "sub" claim.
var ErrEmptySubject = errors.New("empty subject")

// GenerateJWTToken signs the given claims with HMAC-SHA256.
//
// IssuedAt is set to the current time and ExpiresAt to now plus tokenDuration,
// overriding whatever the caller put there. The gateway itself never issues
// tokens; this is used by tests and local tooling to produce tokens the
// identity service would have issued.
//
// Example usage:
//
//	claims := models.Claims{Role: models.RoleStudent}
//	claims.Subject = "42"
//	signed, err := utils.GenerateJWTToken(claims, time.Hour, "secret")
func GenerateJWTToken(claims models.Claims, tokenDuration time.Duration, signKey string) (string, error) {
	if tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return signed, nil
}

// ValidateAndParseJWTToken verifies tokenString and extracts its claims.
//
// Validation includes:
//   - HS256 signature verification with tokenSignKey (other algorithms are rejected)
//   - presence and validity of the exp claim
//   - the iss claim, only when tokenIssuer is not empty
//   - presence of the sub claim
//
// Errors wrap the jwt sentinel errors, so callers can tell an expired token
// apart with errors.Is(err, jwt.ErrTokenExpired).
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if tokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(tokenIssuer))
	}

	var claims models.Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return models.Claims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Claims{}, ErrEmptySubject
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>" header value.
// The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
