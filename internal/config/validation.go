// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/cimeika/seomatrix/internal/validate"
	"github.com/rs/zerolog"
	"golang.org/x/net/idna"
)

var tracingExporters = []string{"grpc", "http"}

// Validate checks the merged configuration and reports every problem at once.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.ListenAddr("listenAddr", cfg.ListenAddr)
	v.URL("baseUrl", cfg.BaseURL, []string{"http", "https"})
	if u, err := url.Parse(cfg.BaseURL); err == nil && u.Path != "" && u.Path != "/" {
		v.AddError("baseUrl", "must not contain a path", cfg.BaseURL)
	}
	if cfg.MatrixPath != "" {
		ext := strings.ToLower(filepath.Ext(cfg.MatrixPath))
		v.OneOf("matrixPath", ext, []string{".yaml", ".yml"})
	}
	if cfg.OGImage != "" {
		v.URL("ogImage", cfg.OGImage, []string{"http", "https"})
	}
	if cfg.ShutdownTimeout <= 0 {
		v.AddError("shutdownTimeout", fmt.Sprintf("must be positive, got %s", cfg.ShutdownTimeout), cfg.ShutdownTimeout)
	}
	if lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil || lvl == zerolog.NoLevel {
		v.AddError("logLevel", fmt.Sprintf("must be a zerolog level (trace, debug, info, warn, error, fatal, panic, disabled), got %q", cfg.LogLevel), cfg.LogLevel)
	}
	v.NotEmpty("logService", cfg.LogService)

	if cfg.RateLimit.Enabled {
		v.Positive("rateLimit.requestsPerMinute", cfg.RateLimit.RequestsPerMinute)
		if cfg.RateLimit.GlobalRPS < 0 {
			v.AddError("rateLimit.globalRps", "cannot be negative", cfg.RateLimit.GlobalRPS)
		}
		if cfg.RateLimit.GlobalRPS > 0 {
			v.Positive("rateLimit.globalBurst", cfg.RateLimit.GlobalBurst)
		}
	}

	if cfg.Tracing.Enabled {
		v.OneOf("tracing.exporter", cfg.Tracing.Exporter, tracingExporters)
		v.NotEmpty("tracing.endpoint", cfg.Tracing.Endpoint)
		if cfg.Tracing.SamplingRate < 0 || cfg.Tracing.SamplingRate > 1 {
			v.AddError("tracing.samplingRate",
				fmt.Sprintf("must be between 0 and 1, got %g", cfg.Tracing.SamplingRate),
				cfg.Tracing.SamplingRate)
		}
	}

	return v.Err()
}

// NormalizeBaseURL lower-cases the scheme, converts an internationalized
// host to its ASCII (punycode) form and strips a trailing slash.
func NormalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("base URL %q has no host", raw)
	}
	host := u.Hostname()
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("base URL host %q: %w", host, err)
	}
	if port := u.Port(); port != "" {
		u.Host = ascii + ":" + port
	} else {
		u.Host = ascii
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Path = strings.TrimRight(u.Path, "/")
	return u.String(), nil
}
