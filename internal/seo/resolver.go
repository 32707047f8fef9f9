// SPDX-License-Identifier: MIT

// Package seo resolves matrix cells into routing artifacts: meta text,
// canonical URLs, hreflang alternates and advisory length checks.
//
// Lookups never fail loudly. Methods return (value, false) for unknown routes
// or missing meta; Lookup classifies the two cases for the HTTP boundary.
package seo

import (
	"errors"
	"fmt"

	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/writepolicy"
)

var (
	// ErrRouteInvalid means the language or an axis value is not registered.
	ErrRouteInvalid = errors.New("route invalid")
	// ErrMetaMissing means the route is valid but no meta entry exists.
	ErrMetaMissing = errors.New("meta missing")
)

// Entry is the fully resolved SEO record of one cell in one language.
type Entry struct {
	Lang        string             `json:"lang"`
	V1          string             `json:"v1"`
	V2          string             `json:"v2"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	URL         string             `json:"url"`
	Alternates  map[string]string  `json:"alternates"`
	Module      string             `json:"module,omitempty"`
	WritePolicy writepolicy.Policy `json:"writes_policy"`
	Validation  ValidationResult   `json:"validation"`
	Intent      string             `json:"intent,omitempty"`
	Pages       []string           `json:"pages,omitempty"`
}

// Resolver reads one immutable document. It is safe for concurrent use.
type Resolver struct {
	doc    *matrix.Document
	policy *writepolicy.Resolver
}

// NewResolver binds a resolver to doc.
func NewResolver(doc *matrix.Document) *Resolver {
	return &Resolver{doc: doc, policy: writepolicy.NewResolver(doc)}
}

// Document returns the underlying document.
func (r *Resolver) Document() *matrix.Document { return r.doc }

// Policies returns the module/write-policy resolver sharing this document.
func (r *Resolver) Policies() *writepolicy.Resolver { return r.policy }

// ValidateRouting reports whether lang, v1 and v2 are all registered.
func (r *Resolver) ValidateRouting(lang, v1, v2 string) bool {
	return r.doc.ValidateRouting(lang, v1, v2)
}

// Meta looks up nested v1 -> v2 meta first, then the composite "v1:v2" form.
func (r *Resolver) Meta(lang, v1, v2 string) (matrix.MetaText, bool) {
	if m, ok := r.doc.NestedMeta(lang, v1, v2); ok {
		return m, true
	}
	return r.doc.PairMeta(lang, v1, v2)
}

// Entry resolves one cell. It returns false when the route is not registered
// or no meta exists for it.
func (r *Resolver) Entry(lang, v1, v2 string) (Entry, bool) {
	e, err := r.Lookup(lang, v1, v2)
	return e, err == nil
}

// Lookup is Entry with the failure classified as ErrRouteInvalid or ErrMetaMissing.
func (r *Resolver) Lookup(lang, v1, v2 string) (Entry, error) {
	if lang == "" {
		lang = r.doc.CanonicalLang()
	}
	if !r.doc.ValidateRouting(lang, v1, v2) {
		return Entry{}, fmt.Errorf("%w: %s/%s/%s", ErrRouteInvalid, lang, v1, v2)
	}
	meta, ok := r.Meta(lang, v1, v2)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s/%s/%s", ErrMetaMissing, lang, v1, v2)
	}

	module, policy := r.policy.PolicyFor(v1)
	e := Entry{
		Lang:        lang,
		V1:          v1,
		V2:          v2,
		Title:       meta.Title,
		Description: meta.Description,
		URL:         r.CanonicalURL(v1, v2, lang),
		Alternates:  r.HreflangTags(v1, v2),
		Module:      module,
		WritePolicy: policy,
		Validation:  Validate(r.doc.Rules(), meta.Title, meta.Description),
	}
	if cell, ok := r.doc.Cell(v1, v2); ok {
		e.Intent = cell.Intent
		e.Pages = cell.Pages
	}
	return e, nil
}

// AllEntries returns every resolvable cell for lang in axis1 x axis2 order.
// Cells without meta are skipped; an unknown language yields nil.
func (r *Resolver) AllEntries(lang string) []Entry {
	if !r.doc.HasLanguage(lang) {
		return nil
	}
	axis1, axis2 := r.doc.Axis1(), r.doc.Axis2()
	out := make([]Entry, 0, len(axis1)*len(axis2))
	for _, v1 := range axis1 {
		for _, v2 := range axis2 {
			if e, ok := r.Entry(lang, v1, v2); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

// Validate checks meta text against the document's rules.
func (r *Resolver) Validate(title, description string) ValidationResult {
	return Validate(r.doc.Rules(), title, description)
}
