// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the gateway to the LMS backend services.
//
// [NewUpstreamRouter] builds the handler that receives every request that
// passed the gateway filters and forwards it to the backend owning the
// request's path prefix. Transport failures are answered with 502.
package adapter
