// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cimeika/seomatrix/internal/log"
	"github.com/rs/zerolog"
)

// Environment variable names. Every override is prefixed with SEOMATRIX_.
const (
	EnvListenAddr         = "SEOMATRIX_LISTEN"
	EnvBaseURL            = "SEOMATRIX_BASE_URL"
	EnvMatrixPath         = "SEOMATRIX_MATRIX"
	EnvOGImage            = "SEOMATRIX_OG_IMAGE"
	EnvShutdownTimeout    = "SEOMATRIX_SHUTDOWN_TIMEOUT"
	EnvLogLevel           = "SEOMATRIX_LOG_LEVEL"
	EnvLogService         = "SEOMATRIX_LOG_SERVICE"
	EnvMetricsEnabled     = "SEOMATRIX_METRICS_ENABLED"
	EnvRateLimitEnabled   = "SEOMATRIX_RATELIMIT_ENABLED"
	EnvRateLimitPerMin    = "SEOMATRIX_RATELIMIT_PER_MINUTE"
	EnvRateLimitRPS       = "SEOMATRIX_RATELIMIT_GLOBAL_RPS"
	EnvRateLimitBurst     = "SEOMATRIX_RATELIMIT_GLOBAL_BURST"
	EnvTracingEnabled     = "SEOMATRIX_TRACING_ENABLED"
	EnvTracingExporter    = "SEOMATRIX_TRACING_EXPORTER"
	EnvTracingEndpoint    = "SEOMATRIX_TRACING_ENDPOINT"
	EnvTracingSampling    = "SEOMATRIX_TRACING_SAMPLING_RATE"
	EnvTracingEnvironment = "SEOMATRIX_TRACING_ENVIRONMENT"
)

// ParseString reads a string from environment variable or returns default value.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	return parseStringWithLogger(log.WithComponent("config"), key, defaultValue)
}

func parseStringWithLogger(logger zerolog.Logger, key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		logger.Debug().
			Str("key", key).
			Str("default", defaultValue).
			Str("source", "default").
			Msg("using default value")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Str("value", value).
		Str("source", "environment").
		Msg("using environment variable")
	return value
}

// parseEnv reads key and converts it with parse. Empty or unparsable values
// keep the default; the latter is logged as a warning.
func parseEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	logger := log.WithComponent("config")
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	parsed, err := parse(v)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Interface("default", defaultValue).
			Msg("invalid value in environment variable, using default")
		return defaultValue
	}
	logger.Debug().
		Str("key", key).
		Str("source", "environment").
		Msg("using environment variable")
	return parsed
}

// ParseInt reads an integer from environment variable or returns default value.
func ParseInt(key string, defaultValue int) int {
	return parseEnv(key, defaultValue, strconv.Atoi)
}

// ParseFloat reads a float from environment variable or returns default value.
func ParseFloat(key string, defaultValue float64) float64 {
	return parseEnv(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// ParseDuration reads a Go duration ("5s", "1m") or returns default value.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	return parseEnv(key, defaultValue, time.ParseDuration)
}

// ParseBool accepts true/false, 1/0 and yes/no.
func ParseBool(key string, defaultValue bool) bool {
	return parseEnv(key, defaultValue, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, strconv.ErrSyntax
	})
}
