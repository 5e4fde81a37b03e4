// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/lms-gateway/internal/config"
	"github.com/MKhiriev/lms-gateway/internal/store"
)

type Services struct {
	RateLimitService RateLimitService
	AuthService      AuthService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig) *Services {
	return &Services{
		RateLimitService: NewRateLimitService(storages.Counter, cfg.RateLimit),
		AuthService:      NewAuthService(cfg.App),
	}
}
