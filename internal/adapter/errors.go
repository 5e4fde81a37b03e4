// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrNoRoutes        = errors.New("no upstream routes configured")
	ErrDuplicatePrefix = errors.New("duplicate upstream route prefix")
	ErrInvalidUpstream = errors.New("invalid upstream url")
)
