// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the gateway's command-line flags.
//
// Flags:
//
//	-a            gateway address in format [host]:port
//	-admin        admin (metrics, health) address in format [host]:port
//	-u            default upstream URL
//	-routes       comma separated prefix:url pairs
//	-r            redis address
//	-c/-config    json file path with configs
//	-token-sign-key   token signing key
//	-token-issuer     expected token issuer
//	-failure-mode     "open" or "closed"
//	-limit            anonymous requests per window
//	-window           window length (e.g., "1m")
//	-log-level        zerolog level
//	-request-timeout  request timeout (e.g., "30s", "1m")
func ParseFlags() (*StructuredConfig, error) {
	var serverAddress, adminAddress NetAddress
	var upstreamURL, routes string
	var redisAddr string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var failureMode string
	var limit int64
	var window, requestTimeout time.Duration
	var logLevel string

	flag.Var(&serverAddress, "a", "Gateway net address host:port")
	flag.Var(&adminAddress, "admin", "Admin net address host:port")
	flag.StringVar(&upstreamURL, "u", "", "Default upstream URL")
	flag.StringVar(&routes, "routes", "", "Comma separated prefix:url upstream routes")
	flag.StringVar(&redisAddr, "r", "", "Redis address")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Expected token issuer")
	flag.StringVar(&failureMode, "failure-mode", "", "Rate limit store failure mode: open or closed")
	flag.Int64Var(&limit, "limit", 0, "Anonymous requests per window")
	flag.DurationVar(&window, "window", 0, "Rate limit window (e.g., 1m)")
	flag.StringVar(&logLevel, "log-level", "", "Log level")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")

	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			LogLevel:     logLevel,
		},
		RateLimit: RateLimit{
			Limit:       limit,
			Window:      window,
			FailureMode: FailureMode(failureMode),
		},
		Storage: Storage{
			Redis: Redis{Addr: redisAddr},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			AdminAddress:   adminAddress.String(),
			UpstreamURL:    upstreamURL,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
	if routes != "" {
		cfg.Server.Routes = strings.Split(routes, ",")
	}

	return cfg, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form [host]:port and populates the NetAddress.
// An empty host means all interfaces; otherwise the host must be "localhost"
// or a valid IP address.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
