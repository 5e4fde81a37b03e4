// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the gateway's HTTP ingress.
//
// Every request runs through one statically ordered filter list built at
// start: the correlator, the rate limiter and the authenticator. Any filter
// may write the terminal response itself and stop the chain; otherwise the
// request reaches the upstream router. The package also serves the admin
// surface (metrics, liveness, readiness) on its own mux.
package http
