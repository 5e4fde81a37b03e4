// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/MKhiriev/lms-gateway/models"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON file source.
// Durations are written as strings ("30s", "1m") or integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		PublicPaths      []string `json:"public_paths"`
		StructuredErrors bool     `json:"structured_errors"`
		LogLevel         string   `json:"log_level"`
	} `json:"app,omitempty"`

	RateLimit struct {
		Limit              int64               `json:"limit"`
		Window             Duration            `json:"window"`
		Burst              int                 `json:"burst"`
		AuthenticatedLimit int64               `json:"authenticated_limit"`
		AdminLimit         int64               `json:"admin_limit"`
		KeyPrefix          string              `json:"key_prefix"`
		FailureMode        string              `json:"failure_mode"`
		StoreTimeout       Duration            `json:"store_timeout"`
		Tiers              map[string]JSONTier `json:"tiers"`
	} `json:"rate_limit,omitempty"`

	Storage struct {
		Redis struct {
			Addr         string   `json:"addr"`
			Password     string   `json:"password"`
			DB           int      `json:"db"`
			DialTimeout  Duration `json:"dial_timeout"`
			ReadTimeout  Duration `json:"read_timeout"`
			WriteTimeout Duration `json:"write_timeout"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		AdminAddress    string   `json:"admin_address"`
		UpstreamURL     string   `json:"upstream_url"`
		Routes          []string `json:"routes"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		StoreProbeInterval Duration `json:"store_probe_interval"`
	} `json:"workers,omitempty"`
}

// JSONTier is one entry of the "rate_limit.tiers" table.
type JSONTier struct {
	Limit  int64    `json:"limit"`
	Window Duration `json:"window"`
	Burst  int      `json:"burst"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	var tiers models.QuotaTable
	if len(jsonCfg.RateLimit.Tiers) > 0 {
		tiers = make(models.QuotaTable, len(jsonCfg.RateLimit.Tiers))
		for name, t := range jsonCfg.RateLimit.Tiers {
			tiers[models.IdentityClass(name)] = models.Tier{
				Limit:  t.Limit,
				Window: time.Duration(t.Window),
				Burst:  t.Burst,
			}
		}
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			PublicPaths:      jsonCfg.App.PublicPaths,
			StructuredErrors: jsonCfg.App.StructuredErrors,
			LogLevel:         jsonCfg.App.LogLevel,
		},
		RateLimit: RateLimit{
			Limit:              jsonCfg.RateLimit.Limit,
			Window:             time.Duration(jsonCfg.RateLimit.Window),
			Burst:              jsonCfg.RateLimit.Burst,
			AuthenticatedLimit: jsonCfg.RateLimit.AuthenticatedLimit,
			AdminLimit:         jsonCfg.RateLimit.AdminLimit,
			KeyPrefix:          jsonCfg.RateLimit.KeyPrefix,
			FailureMode:        FailureMode(jsonCfg.RateLimit.FailureMode),
			StoreTimeout:       time.Duration(jsonCfg.RateLimit.StoreTimeout),
			Tiers:              tiers,
		},
		Storage: Storage{
			Redis: Redis{
				Addr:         jsonCfg.Storage.Redis.Addr,
				Password:     jsonCfg.Storage.Redis.Password,
				DB:           jsonCfg.Storage.Redis.DB,
				DialTimeout:  time.Duration(jsonCfg.Storage.Redis.DialTimeout),
				ReadTimeout:  time.Duration(jsonCfg.Storage.Redis.ReadTimeout),
				WriteTimeout: time.Duration(jsonCfg.Storage.Redis.WriteTimeout),
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			AdminAddress:    jsonCfg.Server.AdminAddress,
			UpstreamURL:     jsonCfg.Server.UpstreamURL,
			Routes:          jsonCfg.Server.Routes,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Workers: Workers{
			StoreProbeInterval: time.Duration(jsonCfg.Workers.StoreProbeInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
