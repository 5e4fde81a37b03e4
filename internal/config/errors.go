// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate]. The returned
// error wraps one of them together with a description of the offending field.
var (
	// ErrInvalidAppConfigs indicates invalid token or public path settings
	// (for example, an empty token sign key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidRateLimitConfigs indicates an unusable quota table or a
	// missing failure mode.
	ErrInvalidRateLimitConfigs = errors.New("invalid rate limit configuration")
	// ErrInvalidStorageConfigs indicates missing counter store settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates missing addresses or malformed upstream routes.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
