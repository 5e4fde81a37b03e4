// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"path"
	"strings"
)

// PublicPaths is the immutable set of path prefixes that bypass authentication.
type PublicPaths []string

func NewPublicPaths(prefixes []string) PublicPaths {
	return append(PublicPaths(nil), prefixes...)
}

// Match reports whether p starts with one of the prefixes. Matching is done
// on the cleaned path, so dot segments cannot smuggle a protected path past
// a public prefix.
func (pp PublicPaths) Match(p string) bool {
	cleaned := cleanPath(p)
	for _, prefix := range pp {
		if strings.HasPrefix(cleaned, prefix) {
			return true
		}
	}
	return false
}

// cleanPath is path.Clean that keeps a trailing slash.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	cleaned := path.Clean(p)
	if strings.HasSuffix(p, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned
}
