// SPDX-License-Identifier: MIT

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	seolog "github.com/cimeika/seomatrix/internal/log"
	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/metrics"
	"github.com/cimeika/seomatrix/internal/seo"
	"github.com/cimeika/seomatrix/internal/sitemap"
	"github.com/cimeika/seomatrix/internal/telemetry"
	"github.com/cimeika/seomatrix/internal/writepolicy"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

const maxCheckBody = 64 << 10

func requestID(r *http.Request) string {
	return seolog.RequestIDFromContext(r.Context())
}

// lookup resolves one route and records the outcome on both metric pipelines.
func (s *Server) lookup(r *http.Request) (seo.Entry, error) {
	lang := chi.URLParam(r, "lang")
	v1 := chi.URLParam(r, "v1")
	v2 := chi.URLParam(r, "v2")

	e, err := s.resolver.Lookup(lang, v1, v2)
	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, seo.ErrRouteInvalid):
		outcome = metrics.OutcomeRouteInvalid
	case errors.Is(err, seo.ErrMetaMissing):
		outcome = metrics.OutcomeMetaMissing
	}
	metrics.RecordLookup(outcome)
	telemetry.RecordLookup(r.Context(), lang, v1, v2, outcome)
	if err != nil {
		return e, err
	}

	metrics.RecordValidation("title", e.Validation.Title.Valid)
	metrics.RecordValidation("description", e.Validation.Description.Valid)
	if !e.Validation.Valid() {
		seolog.FromContext(r.Context()).Debug().
			Str(seolog.FieldEvent, "seo.meta_over_limit").
			Str(seolog.FieldLang, lang).
			Str(seolog.FieldAxis1, v1).
			Str(seolog.FieldAxis2, v2).
			Int("title_len", e.Validation.Title.Length).
			Int("description_len", e.Validation.Description.Length).
			Msg("meta text exceeds length rules")
	}
	return e, nil
}

func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, seo.ErrRouteInvalid):
		status, code = http.StatusBadRequest, codeRouteInvalid
	case errors.Is(err, seo.ErrMetaMissing):
		status, code = http.StatusNotFound, codeMetaMissing
	}
	trace.SpanFromContext(r.Context()).SetAttributes(telemetry.ErrorAttributes(err, code)...)
	writeError(w, r, status, code, err.Error())
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	e, err := s.lookup(r)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	e, err := s.lookup(r)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, seo.MetaTags(e, s.cfg.BaseURL, s.cfg.OGImage))
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	if !s.doc.HasLanguage(lang) {
		writeError(w, r, http.StatusBadRequest, codeRouteInvalid, "unknown language "+lang)
		return
	}
	writeJSON(w, http.StatusOK, s.resolver.AllEntries(lang))
}

type moduleResponse struct {
	V1          string                `json:"v1"`
	Label       string                `json:"label,omitempty"`
	Descriptor  matrix.AxisDescriptor `json:"descriptor"`
	Module      string                `json:"module"`
	WritePolicy writepolicy.Policy    `json:"writes_policy"`
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	v1 := chi.URLParam(r, "v1")
	policies := s.resolver.Policies()
	module, ok := policies.ModuleFor(v1)
	if !ok {
		writeError(w, r, http.StatusNotFound, codeNotFound, "no module for "+v1)
		return
	}
	desc, ok := s.doc.Axis1Descriptor(v1)
	if !ok {
		desc = matrix.AxisDescriptor{ID: v1}
	}
	writeJSON(w, http.StatusOK, moduleResponse{
		V1:          v1,
		Label:       desc.Name,
		Descriptor:  desc,
		Module:      module,
		WritePolicy: policies.Policy(module),
	})
}

type axisResponse struct {
	Name   string                  `json:"name"`
	Values []matrix.AxisDescriptor `json:"values"`
}

type axesResponse struct {
	Axis1 axisResponse `json:"axis1"`
	Axis2 axisResponse `json:"axis2"`
}

func (s *Server) handleAxes(w http.ResponseWriter, _ *http.Request) {
	name1, name2 := s.doc.AxisNames()
	values1, values2 := s.doc.AxisDescriptors()
	writeJSON(w, http.StatusOK, axesResponse{
		Axis1: axisResponse{Name: name1, Values: values1},
		Axis2: axisResponse{Name: name2, Values: values2},
	})
}

func (s *Server) handleStrategy(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.doc.Strategy())
}

// handleSeeds returns every research seed, or one language's view when the
// lang query parameter is set.
func (s *Server) handleSeeds(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		writeJSON(w, http.StatusOK, s.doc.ResearchSeeds())
		return
	}
	if !s.doc.HasLanguage(lang) {
		writeError(w, r, http.StatusBadRequest, codeRouteInvalid, "unknown language "+lang)
		return
	}
	writeJSON(w, http.StatusOK, s.doc.ResearchSeedsFor(lang))
}

// handleWritesPolicy returns one module's policy, or every module's when
// the module query parameter is absent.
func (s *Server) handleWritesPolicy(w http.ResponseWriter, r *http.Request) {
	policies := s.resolver.Policies()
	if module := r.URL.Query().Get("module"); module != "" {
		writeJSON(w, http.StatusOK, policies.Policy(module))
		return
	}
	all := make(map[string]writepolicy.Policy)
	for _, m := range policies.Modules() {
		all[m] = policies.Policy(m)
	}
	writeJSON(w, http.StatusOK, all)
}

type writesCheckRequest struct {
	Module string   `json:"module"`
	Writes []string `json:"writes"`
}

func (s *Server) handleWritesCheck(w http.ResponseWriter, r *http.Request) {
	var req writesCheckRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCheckBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}
	if err := s.resolver.Policies().Check(req.Module, req.Writes); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Error:     codePolicyFailure,
			Detail:    err.Error(),
			RequestID: requestID(r),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleCoverage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.resolver.Coverage())
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := s.resolver.Validate(q.Get("title"), q.Get("description"))
	metrics.RecordValidation("title", res.Title.Valid)
	metrics.RecordValidation("description", res.Description.Valid)
	writeJSON(w, http.StatusOK, struct {
		seo.ValidationResult
		Valid bool `json:"valid"`
	}{res, res.Valid()})
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	ctx, span := telemetry.Tracer("seomatrix.sitemap").Start(r.Context(), "sitemap.generate")
	defer span.End()

	entries := s.sitemap.Entries(s.cfg.BaseURL)

	var buf bytes.Buffer
	if err := sitemap.WriteXML(&buf, entries); err != nil {
		span.SetAttributes(telemetry.ErrorAttributes(err, "encode")...)
		seolog.FromContext(ctx).Error().Err(err).
			Str(seolog.FieldEvent, "sitemap.failed").
			Msg("sitemap encoding failed")
		writeError(w, r, http.StatusInternalServerError, "internal_error", "sitemap generation failed")
		return
	}

	metrics.SetSitemapEntries(len(entries))
	span.SetAttributes(telemetry.SitemapAttributes(s.doc.Shape().String(), len(entries))...)
	seolog.FromContext(ctx).Info().
		Str(seolog.FieldEvent, "sitemap.generated").
		Int(seolog.FieldEntries, len(entries)).
		Str(seolog.FieldBaseURL, s.cfg.BaseURL).
		Msg("sitemap generated")

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleRobots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(sitemap.RobotsTxt(s.cfg.SitemapURL())))
}
