// SPDX-License-Identifier: MIT

// Package health provides liveness and readiness endpoints with per-component status.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/cimeika/seomatrix/internal/log"
)

// Status represents the overall health/readiness status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// CheckResult represents the result of a component health check
type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Response is the body of both endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Ready     bool                   `json:"ready"`
	Version   string                 `json:"version,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Details   map[string]any         `json:"details,omitempty"`
}

// Checker defines the interface for health checks
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

// Manager manages health and readiness checks
type Manager struct {
	version  string
	details  map[string]any
	checkers []Checker
}

// NewManager creates a new health check manager. details are reported
// verbatim on every verbose response.
func NewManager(version string, details map[string]any) *Manager {
	return &Manager{version: version, details: details}
}

// RegisterChecker adds a health checker to the manager
func (m *Manager) RegisterChecker(checker Checker) {
	m.checkers = append(m.checkers, checker)
}

// run evaluates every checker. Any unhealthy checker makes the result not ready.
func (m *Manager) run(ctx context.Context) Response {
	resp := Response{
		Status:    StatusHealthy,
		Ready:     true,
		Version:   m.version,
		Timestamp: time.Now(),
		Details:   m.details,
	}
	if len(m.checkers) == 0 {
		return resp
	}

	resp.Checks = make(map[string]CheckResult, len(m.checkers))
	for _, c := range m.checkers {
		result := c.Check(ctx)
		resp.Checks[c.Name()] = result
		switch result.Status {
		case StatusUnhealthy:
			resp.Status = StatusUnhealthy
			resp.Ready = false
		case StatusDegraded:
			if resp.Status == StatusHealthy {
				resp.Status = StatusDegraded
			}
		}
	}
	return resp
}

// Health is the liveness view: component checks only when verbose.
func (m *Manager) Health(ctx context.Context, verbose bool) Response {
	if !verbose {
		return Response{Status: StatusHealthy, Ready: true, Version: m.version, Timestamp: time.Now()}
	}
	return m.run(ctx)
}

// Ready is the readiness view.
func (m *Manager) Ready(ctx context.Context) Response {
	return m.run(ctx)
}

// ServeHealth always answers 200 while the process is alive.
func (m *Manager) ServeHealth(w http.ResponseWriter, r *http.Request) {
	resp := m.Health(r.Context(), r.URL.Query().Get("verbose") == "true")
	m.write(w, r, "health", http.StatusOK, resp)
}

// ServeReady answers 503 when any component is unhealthy.
func (m *Manager) ServeReady(w http.ResponseWriter, r *http.Request) {
	resp := m.Ready(r.Context())
	code := http.StatusOK
	if !resp.Ready {
		code = http.StatusServiceUnavailable
	}
	m.write(w, r, "readiness", code, resp)
}

func (m *Manager) write(w http.ResponseWriter, r *http.Request, check string, code int, resp Response) {
	logger := log.WithComponentFromContext(r.Context(), check)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error().Err(err).Str(log.FieldEvent, check+".encode_error").Msg("failed to encode health response")
	}
	logger.Debug().
		Str(log.FieldEvent, check+".checked").
		Str("status", string(resp.Status)).
		Bool("ready", resp.Ready).
		Msg("health check answered")
}

// FileChecker reports whether the matrix file the document came from is
// still readable. An empty path means the built-in seed is in use.
type FileChecker struct {
	name string
	path string
}

// NewFileChecker creates a checker for file existence
func NewFileChecker(name, path string) *FileChecker {
	return &FileChecker{name: name, path: path}
}

func (c *FileChecker) Name() string { return c.name }

func (c *FileChecker) Check(context.Context) CheckResult {
	if c.path == "" {
		return CheckResult{Status: StatusHealthy, Message: "not file-backed"}
	}
	info, err := os.Stat(c.path)
	switch {
	case os.IsNotExist(err):
		// Only a restart needs the file again.
		return CheckResult{Status: StatusDegraded, Error: "file not found", Message: c.path}
	case err != nil:
		return CheckResult{Status: StatusDegraded, Error: err.Error()}
	case info.IsDir():
		return CheckResult{Status: StatusUnhealthy, Error: "expected file, got directory"}
	}
	return CheckResult{Status: StatusHealthy, Message: c.path}
}

// CoverageChecker degrades when some matrix cells have no meta.
type CoverageChecker struct {
	missing func() int
}

// NewCoverageChecker wraps a function returning the number of unresolved cells
// across all languages.
func NewCoverageChecker(missing func() int) *CoverageChecker {
	return &CoverageChecker{missing: missing}
}

func (c *CoverageChecker) Name() string { return "matrix_coverage" }

func (c *CoverageChecker) Check(context.Context) CheckResult {
	if n := c.missing(); n > 0 {
		return CheckResult{Status: StatusDegraded, Message: fmt.Sprintf("%d cells without meta", n)}
	}
	return CheckResult{Status: StatusHealthy, Message: "all cells resolve"}
}
