// SPDX-License-Identifier: MIT

// Package api exposes the resolved SEO matrix over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cimeika/seomatrix/internal/api/middleware"
	"github.com/cimeika/seomatrix/internal/config"
	"github.com/cimeika/seomatrix/internal/health"
	seolog "github.com/cimeika/seomatrix/internal/log"
	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/metrics"
	"github.com/cimeika/seomatrix/internal/ratelimit"
	"github.com/cimeika/seomatrix/internal/seo"
	"github.com/cimeika/seomatrix/internal/sitemap"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Server serves one immutable matrix document.
type Server struct {
	cfg      config.AppConfig
	doc      *matrix.Document
	resolver *seo.Resolver
	sitemap  *sitemap.Generator
	health   *health.Manager
	router   chi.Router
}

// New builds the server and its routes for doc.
func New(cfg config.AppConfig, doc *matrix.Document) *Server {
	resolver := seo.NewResolver(doc)
	s := &Server{
		cfg:      cfg,
		doc:      doc,
		resolver: resolver,
		sitemap:  sitemap.NewGenerator(resolver),
		health:   newHealth(cfg.Version, resolver),
	}
	s.router = s.routes()
	observeDocument(resolver)
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	stack := middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         s.cfg.MetricsEnabled,
		EnableLogging:         true,
		EnableRateLimit:       s.cfg.RateLimit.Enabled,
		RequestsPerMinute:     s.cfg.RateLimit.RequestsPerMinute,
	}
	if s.cfg.Tracing.Enabled {
		stack.TracingService = s.cfg.LogService
	}
	if s.cfg.RateLimit.Enabled {
		stack.GlobalLimiter = ratelimit.New(ratelimit.Config{
			GlobalRate:  rate.Limit(s.cfg.RateLimit.GlobalRPS),
			GlobalBurst: s.cfg.RateLimit.GlobalBurst,
		})
	}

	r := chi.NewRouter()
	// Health checks and scrapes stay outside the limited stack.
	r.Get("/healthz", s.health.ServeHealth)
	r.Get("/readyz", s.health.ServeReady)
	if s.cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Group(func(r chi.Router) {
		middleware.ApplyStack(r, stack)

		r.Get("/sitemap.xml", s.handleSitemap)
		r.Get("/robots.txt", s.handleRobots)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/seo/{lang}", s.handleLanguage)
			r.Get("/seo/{lang}/{v1}/{v2}", s.handleEntry)
			r.Get("/seo/{lang}/{v1}/{v2}/tags", s.handleTags)
			r.Get("/modules/{v1}", s.handleModule)
			r.Get("/axes", s.handleAxes)
			r.Get("/strategy", s.handleStrategy)
			r.Get("/seeds", s.handleSeeds)
			r.Get("/writes-policy", s.handleWritesPolicy)
			r.Post("/writes-policy/check", s.handleWritesCheck)
			r.Get("/coverage", s.handleCoverage)
			r.Get("/validate", s.handleValidate)
		})
	})
	return r
}

func newHealth(version string, r *seo.Resolver) *health.Manager {
	doc := r.Document()
	m := health.NewManager(version, map[string]any{
		"shape": doc.Shape().String(),
		"seed":  doc.Source().Seed,
	})
	m.RegisterChecker(health.NewFileChecker("matrix_file", doc.Source().Path))
	// Coverage is fixed for the document's lifetime.
	missing := 0
	for _, lc := range r.Coverage().Languages {
		missing += len(lc.Missing)
	}
	m.RegisterChecker(health.NewCoverageChecker(func() int { return missing }))
	return m
}

// observeDocument publishes per-language coverage and the load counter.
func observeDocument(r *seo.Resolver) {
	doc := r.Document()
	metrics.RecordConfigLoad(doc.Shape().String(), doc.Source().Seed)
	for _, lc := range r.Coverage().Languages {
		metrics.SetMatrixPairs(lc.Lang, lc.Resolved, len(lc.Missing))
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
// within the configured timeout. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	logger := seolog.WithComponent("api")
	// Request contexts outlive ctx so in-flight requests drain on shutdown.
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str(seolog.FieldEvent, "server.started").
			Str("addr", ln.Addr().String()).
			Msg("http server listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		timeout := s.cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = config.DefaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		logger.Info().Str(seolog.FieldEvent, "server.stopping").Msg("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
