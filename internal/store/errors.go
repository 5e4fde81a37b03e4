// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

var (
	// ErrStoreUnavailable wraps every transport or timeout failure of the
	// counter store. Callers should use [errors.Is] to match it.
	ErrStoreUnavailable = errors.New("counter store unavailable")

	// ErrUnexpectedReply is returned when the store answers with a value of
	// an unexpected shape.
	ErrUnexpectedReply = errors.New("unexpected counter store reply")
)
