// SPDX-License-Identifier: MIT

package config

import (
	"strings"
	"time"
)

// AppConfig is the effective process configuration.
type AppConfig struct {
	Version string

	ListenAddr      string
	BaseURL         string
	MatrixPath      string
	OGImage         string
	ShutdownTimeout time.Duration

	LogLevel   string
	LogService string

	MetricsEnabled bool
	RateLimit      RateLimitConfig
	Tracing        TracingConfig
}

// RateLimitConfig controls HTTP request limiting.
type RateLimitConfig struct {
	Enabled bool
	// RequestsPerMinute is the per-client sliding window budget.
	RequestsPerMinute int
	// GlobalRPS and GlobalBurst bound the whole server (token bucket).
	GlobalRPS   float64
	GlobalBurst int
}

// TracingConfig controls OpenTelemetry export.
type TracingConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	SamplingRate float64
	Environment  string
}

// SitemapURL is the absolute sitemap location advertised in robots.txt.
func (c AppConfig) SitemapURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/sitemap.xml"
}

// FileConfig is the YAML file schema. Pointers distinguish "unset" from zero values.
type FileConfig struct {
	ListenAddr      string         `yaml:"listenAddr,omitempty"`
	BaseURL         string         `yaml:"baseUrl,omitempty"`
	MatrixPath      string         `yaml:"matrixPath,omitempty"`
	OGImage         string         `yaml:"ogImage,omitempty"`
	ShutdownTimeout string         `yaml:"shutdownTimeout,omitempty"`
	LogLevel        string         `yaml:"logLevel,omitempty"`
	LogService      string         `yaml:"logService,omitempty"`
	Metrics         *MetricsFile   `yaml:"metrics,omitempty"`
	RateLimit       *RateLimitFile `yaml:"rateLimit,omitempty"`
	Tracing         *TracingFile   `yaml:"tracing,omitempty"`
}

// MetricsFile is the metrics block of the file schema.
type MetricsFile struct {
	Enabled *bool `yaml:"enabled,omitempty"`
}

// RateLimitFile is the rateLimit block of the file schema.
type RateLimitFile struct {
	Enabled           *bool    `yaml:"enabled,omitempty"`
	RequestsPerMinute *int     `yaml:"requestsPerMinute,omitempty"`
	GlobalRPS         *float64 `yaml:"globalRps,omitempty"`
	GlobalBurst       *int     `yaml:"globalBurst,omitempty"`
}

// TracingFile is the tracing block of the file schema.
type TracingFile struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
	Environment  string   `yaml:"environment,omitempty"`
}
