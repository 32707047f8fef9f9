// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"
)

// Defaults applied before the file and the environment.
const (
	DefaultListenAddr        = ":8080"
	DefaultBaseURL           = "https://cimeika.com"
	DefaultLogLevel          = "info"
	DefaultLogService        = "seomatrix"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultRequestsPerMinute = 600
	DefaultGlobalRPS         = 100
	DefaultGlobalBurst       = 200
	DefaultTracingExporter   = "grpc"
	DefaultTracingEndpoint   = "localhost:4317"
)

func (l *Loader) setDefaults(cfg *AppConfig) {
	cfg.ListenAddr = DefaultListenAddr
	cfg.BaseURL = DefaultBaseURL
	cfg.LogLevel = DefaultLogLevel
	cfg.LogService = DefaultLogService
	cfg.ShutdownTimeout = DefaultShutdownTimeout
	cfg.MetricsEnabled = true
	cfg.RateLimit = RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: DefaultRequestsPerMinute,
		GlobalRPS:         DefaultGlobalRPS,
		GlobalBurst:       DefaultGlobalBurst,
	}
	cfg.Tracing = TracingConfig{
		Exporter:     DefaultTracingExporter,
		Endpoint:     DefaultTracingEndpoint,
		SamplingRate: 1.0,
		Environment:  "production",
	}
}

func (l *Loader) mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	setString(&dst.ListenAddr, src.ListenAddr)
	setString(&dst.BaseURL, src.BaseURL)
	setString(&dst.MatrixPath, src.MatrixPath)
	setString(&dst.OGImage, src.OGImage)
	setString(&dst.LogLevel, src.LogLevel)
	setString(&dst.LogService, src.LogService)

	if src.ShutdownTimeout != "" {
		d, err := time.ParseDuration(src.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("shutdownTimeout: %w", err)
		}
		dst.ShutdownTimeout = d
	}

	if src.Metrics != nil {
		setPtr(&dst.MetricsEnabled, src.Metrics.Enabled)
	}
	if rl := src.RateLimit; rl != nil {
		setPtr(&dst.RateLimit.Enabled, rl.Enabled)
		setPtr(&dst.RateLimit.RequestsPerMinute, rl.RequestsPerMinute)
		setPtr(&dst.RateLimit.GlobalRPS, rl.GlobalRPS)
		setPtr(&dst.RateLimit.GlobalBurst, rl.GlobalBurst)
	}
	if tr := src.Tracing; tr != nil {
		setPtr(&dst.Tracing.Enabled, tr.Enabled)
		setString(&dst.Tracing.Exporter, tr.Exporter)
		setString(&dst.Tracing.Endpoint, tr.Endpoint)
		setPtr(&dst.Tracing.SamplingRate, tr.SamplingRate)
		setString(&dst.Tracing.Environment, tr.Environment)
	}
	return nil
}

func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.ListenAddr = l.envString(EnvListenAddr, cfg.ListenAddr)
	cfg.BaseURL = l.envString(EnvBaseURL, cfg.BaseURL)
	cfg.MatrixPath = l.envString(EnvMatrixPath, cfg.MatrixPath)
	cfg.OGImage = l.envString(EnvOGImage, cfg.OGImage)
	cfg.ShutdownTimeout = l.envDuration(EnvShutdownTimeout, cfg.ShutdownTimeout)
	cfg.LogLevel = l.envString(EnvLogLevel, cfg.LogLevel)
	cfg.LogService = l.envString(EnvLogService, cfg.LogService)
	cfg.MetricsEnabled = l.envBool(EnvMetricsEnabled, cfg.MetricsEnabled)

	cfg.RateLimit.Enabled = l.envBool(EnvRateLimitEnabled, cfg.RateLimit.Enabled)
	cfg.RateLimit.RequestsPerMinute = l.envInt(EnvRateLimitPerMin, cfg.RateLimit.RequestsPerMinute)
	cfg.RateLimit.GlobalRPS = l.envFloat(EnvRateLimitRPS, cfg.RateLimit.GlobalRPS)
	cfg.RateLimit.GlobalBurst = l.envInt(EnvRateLimitBurst, cfg.RateLimit.GlobalBurst)

	cfg.Tracing.Enabled = l.envBool(EnvTracingEnabled, cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = l.envString(EnvTracingExporter, cfg.Tracing.Exporter)
	cfg.Tracing.Endpoint = l.envString(EnvTracingEndpoint, cfg.Tracing.Endpoint)
	cfg.Tracing.SamplingRate = l.envFloat(EnvTracingSampling, cfg.Tracing.SamplingRate)
	cfg.Tracing.Environment = l.envString(EnvTracingEnvironment, cfg.Tracing.Environment)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setPtr[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
