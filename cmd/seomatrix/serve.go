// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/cimeika/seomatrix/internal/api"
	"github.com/cimeika/seomatrix/internal/config"
	seolog "github.com/cimeika/seomatrix/internal/log"
	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/telemetry"
	"github.com/cimeika/seomatrix/internal/version"
)

func runServe(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to process config file (YAML)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	seolog.Configure(seolog.Config{Level: "info", Service: "seomatrix", Version: version.Version})
	logger := seolog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.NewLoader(*configPath, version.Version).Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(seolog.FieldEvent, "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
	}

	seolog.Configure(seolog.Config{Level: cfg.LogLevel, Service: cfg.LogService, Version: cfg.Version})
	logger = seolog.WithComponent("daemon")

	doc, err := matrix.NewHolder(matrixOptions(cfg.MatrixPath)).Get()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(seolog.FieldEvent, "matrix.load_failed").
			Str(seolog.FieldPath, cfg.MatrixPath).
			Msg("failed to load seo matrix")
	}

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Tracing.Environment,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		logger.Fatal().Err(err).Str(seolog.FieldEvent, "telemetry.init_failed").Msg("failed to initialise tracing")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	logger.Info().
		Str(seolog.FieldEvent, "daemon.start").
		Str("listen", cfg.ListenAddr).
		Str(seolog.FieldBaseURL, cfg.BaseURL).
		Str(seolog.FieldShape, doc.Shape().String()).
		Msg("starting seomatrix")

	if err := api.New(cfg, doc).Run(ctx); err != nil {
		logger.Error().Err(err).Str(seolog.FieldEvent, "daemon.failed").Msg("server stopped with error")
		return 1
	}
	logger.Info().Str(seolog.FieldEvent, "daemon.stopped").Msg("server stopped")
	return 0
}

// matrixOptions uses an explicit path when configured and the default
// search paths otherwise.
func matrixOptions(path string) matrix.Options {
	return matrix.Options{Path: path}
}
