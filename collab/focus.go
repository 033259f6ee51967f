// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package collab

import (
	"net/url"
	"strings"
)

// Focused reports whether the focused query flag is set. raw may be a full
// URL or a bare query string; only focused=true enables the mode.
func Focused(raw string) bool {
	query := raw
	if strings.Contains(raw, "?") || strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return false
		}
		query = u.RawQuery
	}
	q, err := url.ParseQuery(strings.TrimPrefix(query, "?"))
	if err != nil {
		return false
	}
	return q.Get("focused") == "true"
}
