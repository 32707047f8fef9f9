// SPDX-License-Identifier: MIT

// Package middleware holds the HTTP ingress stack shared by every route of
// the seomatrix server.
package middleware

import (
	seolog "github.com/cimeika/seomatrix/internal/log"
	"github.com/cimeika/seomatrix/internal/ratelimit"
	"github.com/go-chi/chi/v5"
)

// StackConfig configures the canonical HTTP ingress middleware stack.
type StackConfig struct {
	// Security headers
	EnableSecurityHeaders bool
	CSP                   string

	// Observability
	EnableMetrics  bool
	TracingService string // empty disables tracing
	EnableLogging  bool

	// Rate limiting
	EnableRateLimit   bool
	RequestsPerMinute int
	GlobalLimiter     *ratelimit.Limiter
}

// NewRouter constructs a chi router with the canonical middleware stack applied.
func NewRouter(cfg StackConfig) *chi.Mux {
	r := chi.NewRouter()
	ApplyStack(r, cfg)
	return r
}

// ApplyStack applies the canonical middleware stack to r.
func ApplyStack(r chi.Router, cfg StackConfig) {
	// 1. Recoverer (outermost safety net)
	r.Use(Recoverer)
	// 2. RequestID (correlation early)
	r.Use(RequestID)
	// 3. Security headers
	if cfg.EnableSecurityHeaders {
		r.Use(SecurityHeaders(cfg.CSP))
	}
	// 4. Metrics (track all requests)
	if cfg.EnableMetrics {
		r.Use(Metrics())
	}
	// 5. Tracing
	if cfg.TracingService != "" {
		r.Use(Tracing(cfg.TracingService))
	}
	// 6. Logging (wraps handlers, captures full latency)
	if cfg.EnableLogging {
		r.Use(seolog.Middleware())
	}
	// 7. Rate limit: global bucket first, then per client
	if cfg.EnableRateLimit {
		r.Use(GlobalRateLimit(cfg.GlobalLimiter))
		r.Use(APIRateLimit(cfg.RequestsPerMinute))
	}
}
