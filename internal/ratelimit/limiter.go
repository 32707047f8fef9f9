// SPDX-License-Identifier: MIT

// Package ratelimit provides the server-wide token bucket and client
// identification used by the HTTP rate limiting middleware.
package ratelimit

import (
	"net"
	"net/http"
	"strings"

	"github.com/cimeika/seomatrix/internal/metrics"
	"golang.org/x/time/rate"
)

// Limit type labels reported on rejection.
const (
	LimitGlobal = "global"
	LimitPerIP  = "per_ip"
)

// Config holds rate limiting configuration
type Config struct {
	GlobalRate  rate.Limit // requests per second, 0 disables the bucket
	GlobalBurst int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		GlobalRate:  100,
		GlobalBurst: 200,
	}
}

// Limiter is a global token bucket shared by every request.
type Limiter struct {
	global *rate.Limiter
}

// New creates a new rate limiter with the given config
func New(config Config) *Limiter {
	if config.GlobalRate <= 0 {
		return &Limiter{}
	}
	return &Limiter{global: rate.NewLimiter(config.GlobalRate, config.GlobalBurst)}
}

// Allow reports whether one more request fits the global budget.
// A disabled limiter always allows.
func (l *Limiter) Allow() bool {
	if l == nil || l.global == nil {
		return true
	}
	if !l.global.Allow() {
		metrics.RecordRateLimited(LimitGlobal)
		return false
	}
	return true
}

// ClientIP extracts the real client IP from the request. It is shaped as an
// httprate key function.
func ClientIP(r *http.Request) (string, error) {
	return GetClientIP(r), nil
}

// GetClientIP extracts the real client IP from the request
func GetClientIP(r *http.Request) string {
	// X-Forwarded-For: "client, proxy1, proxy2"
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
