// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/lms-gateway/models"
)

// Route maps a request path prefix to an upstream base URL.
type Route struct {
	Prefix   string
	Upstream *url.URL
}

// validate checks that the final merged [StructuredConfig] can be used to
// start the gateway. Every returned error wraps one of the ErrInvalid*Configs
// sentinels.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs)
	}
	for _, p := range cfg.App.PublicPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: public path %q must start with /", ErrInvalidAppConfigs, p)
		}
	}

	if err := cfg.RateLimit.validate(); err != nil {
		return err
	}

	if cfg.Storage.Redis.Addr == "" {
		return fmt.Errorf("%w: redis address is empty", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.AdminAddress == "" {
		return fmt.Errorf("%w: listen addresses must be set", ErrInvalidServerConfigs)
	}
	if cfg.Server.HTTPAddress == cfg.Server.AdminAddress {
		return fmt.Errorf("%w: gateway and admin addresses must differ", ErrInvalidServerConfigs)
	}
	if cfg.Server.UpstreamURL == "" && len(cfg.Server.Routes) == 0 {
		return fmt.Errorf("%w: neither upstream url nor routes are set", ErrInvalidServerConfigs)
	}
	if _, err := cfg.Server.ParseRoutes(); err != nil {
		return err
	}

	if cfg.Workers.StoreProbeInterval <= 0 {
		return fmt.Errorf("%w: store probe interval must be positive", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (r RateLimit) validate() error {
	switch r.FailureMode {
	case FailOpen, FailClosed:
	case "":
		return fmt.Errorf("%w: failure mode must be set to %q or %q", ErrInvalidRateLimitConfigs, FailOpen, FailClosed)
	default:
		return fmt.Errorf("%w: unknown failure mode %q", ErrInvalidRateLimitConfigs, r.FailureMode)
	}

	if r.StoreTimeout <= 0 {
		return fmt.Errorf("%w: store timeout must be positive", ErrInvalidRateLimitConfigs)
	}
	if r.KeyPrefix == "" {
		return fmt.Errorf("%w: key prefix is empty", ErrInvalidRateLimitConfigs)
	}
	if r.Burst < 0 {
		return fmt.Errorf("%w: burst must not be negative", ErrInvalidRateLimitConfigs)
	}

	for class, tier := range r.QuotaTable() {
		switch class {
		case models.ClassAnonymous, models.ClassAuthenticated, models.ClassAdmin:
		default:
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidRateLimitConfigs, class)
		}
		if tier.Limit <= 0 || tier.Window <= 0 {
			return fmt.Errorf("%w: tier %q needs a positive limit and window", ErrInvalidRateLimitConfigs, class)
		}
	}

	return nil
}

// ParseRoutes parses the "prefix:url" pairs of Routes followed by UpstreamURL
// as a catch-all route with an empty prefix.
func (s Server) ParseRoutes() ([]Route, error) {
	routes := make([]Route, 0, len(s.Routes)+1)

	for _, raw := range s.Routes {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		prefix, target, ok := strings.Cut(raw, ":")
		if !ok || !strings.HasPrefix(prefix, "/") {
			return nil, fmt.Errorf("%w: route %q must look like /prefix:http://host", ErrInvalidServerConfigs, raw)
		}
		u, err := parseUpstream(target)
		if err != nil {
			return nil, err
		}
		routes = append(routes, Route{Prefix: prefix, Upstream: u})
	}

	if s.UpstreamURL != "" {
		u, err := parseUpstream(s.UpstreamURL)
		if err != nil {
			return nil, err
		}
		routes = append(routes, Route{Prefix: "", Upstream: u})
	}

	return routes, nil
}

func parseUpstream(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: upstream %q: %w", ErrInvalidServerConfigs, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: upstream %q must be an absolute http(s) url", ErrInvalidServerConfigs, raw)
	}
	return u, nil
}
