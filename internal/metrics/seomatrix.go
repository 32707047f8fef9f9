// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for the seomatrix service.
// Labels are bounded: outcomes, field names, languages and shapes only.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeRouteInvalid = "route_invalid"
	OutcomeMetaMissing  = "meta_missing"
)

var (
	// LookupsTotal counts entry lookups by outcome.
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seomatrix_lookups_total",
		Help: "Total number of SEO entry lookups, by outcome.",
	}, []string{"outcome"})

	// MetaValidationTotal counts advisory length checks by field and outcome.
	MetaValidationTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seomatrix_meta_validation_total",
		Help: "Total number of meta length checks, by field (title/description) and outcome (valid/too_long).",
	}, []string{"field", "outcome"})

	// SitemapEntries is the entry count of the last generated sitemap.
	SitemapEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "seomatrix_sitemap_entries",
		Help: "Number of entries in the last generated sitemap.",
	})

	// MatrixPairs tracks resolved and missing cells per language of the loaded matrix.
	MatrixPairs = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "seomatrix_matrix_pairs",
		Help: "Matrix cells of the loaded document, by language and state (resolved/missing).",
	}, []string{"lang", "state"})

	// ConfigLoadsTotal counts matrix loads by shape and source (file/seed).
	ConfigLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seomatrix_config_loads_total",
		Help: "Total number of matrix document loads, by shape and source.",
	}, []string{"shape", "source"})

	// RateLimitExceeded counts rejected HTTP requests by limiter.
	RateLimitExceeded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seomatrix_ratelimit_exceeded_total",
		Help: "Total rate limit rejections, by limit type (global/per_ip).",
	}, []string{"limit_type"})
)

// RecordLookup increments the lookup counter.
func RecordLookup(outcome string) {
	LookupsTotal.WithLabelValues(outcome).Inc()
}

// RecordValidation records the advisory check of one field.
func RecordValidation(field string, valid bool) {
	outcome := "valid"
	if !valid {
		outcome = "too_long"
	}
	MetaValidationTotal.WithLabelValues(field, outcome).Inc()
}

// SetSitemapEntries records the size of a generated sitemap.
func SetSitemapEntries(n int) {
	SitemapEntries.Set(float64(n))
}

// SetMatrixPairs records resolved and missing cell counts for lang.
func SetMatrixPairs(lang string, resolved, missing int) {
	MatrixPairs.WithLabelValues(lang, "resolved").Set(float64(resolved))
	MatrixPairs.WithLabelValues(lang, "missing").Set(float64(missing))
}

// RecordConfigLoad increments the load counter.
func RecordConfigLoad(shape string, seed bool) {
	source := "file"
	if seed {
		source = "seed"
	}
	ConfigLoadsTotal.WithLabelValues(shape, source).Inc()
}

// RecordRateLimited increments the rate limit counter.
func RecordRateLimited(limitType string) {
	RateLimitExceeded.WithLabelValues(limitType).Inc()
}
