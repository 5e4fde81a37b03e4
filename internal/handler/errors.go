// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when neither the
	// gateway nor the admin address is configured.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoUpstream is returned when the gateway handler has nothing to
	// forward accepted requests to.
	errNoUpstream = errors.New("gateway handler requires an upstream router")
)
