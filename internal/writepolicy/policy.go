// SPDX-License-Identifier: MIT

// Package writepolicy maps axis-1 values to owning modules and exposes the
// related-record write policy that collaborators are expected to follow.
// The policy is data only; nothing here enforces it.
package writepolicy

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cimeika/seomatrix/internal/matrix"
)

// ErrPolicyViolation is returned by Check when a planned write set does not satisfy the policy.
var ErrPolicyViolation = errors.New("write policy violation")

// Policy describes the related records expected for one write.
type Policy struct {
	Min       int      `json:"min"`
	Max       int      `json:"max"`
	Mandatory []string `json:"mandatory"`
	Optional  string   `json:"optional,omitempty"`
}

// Resolver answers module and policy questions for one document.
type Resolver struct {
	doc *matrix.Document
}

// NewResolver binds a resolver to a loaded document.
func NewResolver(doc *matrix.Document) *Resolver {
	return &Resolver{doc: doc}
}

// ModuleFor returns the module that owns v1.
func (r *Resolver) ModuleFor(v1 string) (string, bool) {
	return r.doc.Module(v1)
}

// Policy returns the base policy, plus the module's optional record when
// module is non-empty and has one configured.
func (r *Resolver) Policy(module string) Policy {
	w := r.doc.Writes()
	p := Policy{Min: w.Min, Max: w.Max, Mandatory: w.Mandatory}
	if p.Mandatory == nil {
		p.Mandatory = []string{}
	}
	if module != "" {
		p.Optional = w.OptionalByModule[module]
	}
	return p
}

// PolicyFor resolves the module of v1 first. Unknown values get the base policy.
func (r *Resolver) PolicyFor(v1 string) (string, Policy) {
	module, _ := r.ModuleFor(v1)
	return module, r.Policy(module)
}

// Modules returns the distinct module ids in axis-1 order.
func (r *Resolver) Modules() []string {
	var out []string
	for _, v1 := range r.doc.Axis1() {
		if m, ok := r.doc.Module(v1); ok && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	return out
}

// Check reports whether writes satisfies the policy for module. It never
// blocks anything by itself; callers decide what to do with the result.
func (r *Resolver) Check(module string, writes []string) error {
	p := r.Policy(module)
	var problems []string

	for _, m := range p.Mandatory {
		if !slices.Contains(writes, m) {
			problems = append(problems, fmt.Sprintf("missing mandatory %q", m))
		}
	}
	for _, w := range writes {
		if !slices.Contains(p.Mandatory, w) && w != p.Optional {
			problems = append(problems, fmt.Sprintf("unexpected record %q", w))
		}
	}
	switch n := len(writes); {
	case n < p.Min:
		problems = append(problems, fmt.Sprintf("%d records, need at least %d", n, p.Min))
	case n > p.Max:
		problems = append(problems, fmt.Sprintf("%d records, at most %d allowed", n, p.Max))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: module %q: %s", ErrPolicyViolation, module, strings.Join(problems, "; "))
}
