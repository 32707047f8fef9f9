// SPDX-License-Identifier: MIT

package matrix

import (
	"maps"
	"slices"
)

// MetaText is the title/description pair of one matrix cell in one language.
type MetaText struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Rules carries the advisory length limits for meta text.
type Rules struct {
	TitleMax       int `yaml:"title_max" json:"title_max"`
	DescriptionMax int `yaml:"description_max" json:"description_max"`
}

// Default length limits.
const (
	DefaultTitleMax       = 60
	DefaultDescriptionMax = 155
)

// Cell holds the matrix-shape extras of one pair.
type Cell struct {
	Intent string   `yaml:"intent,omitempty" json:"intent,omitempty"`
	Pages  []string `yaml:"pages,omitempty" json:"pages,omitempty"`
}

// Page is one explicit page slug from the flattened page list.
type Page struct {
	V1     string `yaml:"v1" json:"v1"`
	V2     string `yaml:"v2" json:"v2"`
	Intent string `yaml:"intent,omitempty" json:"intent,omitempty"`
	Slug   string `yaml:"slug" json:"slug"`
}

// WritesTable is the raw write-policy configuration.
type WritesTable struct {
	Min              int               `yaml:"min" json:"min"`
	Max              int               `yaml:"max" json:"max"`
	Mandatory        []string          `yaml:"mandatory" json:"mandatory"`
	OptionalByModule map[string]string `yaml:"optional_by_module,omitempty" json:"optional_by_module,omitempty"`
}

// Source describes where a Document came from.
type Source struct {
	Path string `yaml:"path,omitempty" json:"path,omitempty"`
	Seed bool   `yaml:"seed" json:"seed"`
}

// metaIndex is lang -> v1 -> v2 -> text. The empty language holds
// language-neutral entries that apply to every language.
type metaIndex map[string]map[string]map[string]MetaText

func (m metaIndex) get(lang, v1, v2 string) (MetaText, bool) {
	byV1, ok := m[lang]
	if !ok {
		return MetaText{}, false
	}
	t, ok := byV1[v1][v2]
	return t, ok
}

func (m metaIndex) put(lang, v1, v2 string, t MetaText) {
	if m[lang] == nil {
		m[lang] = map[string]map[string]MetaText{}
	}
	if m[lang][v1] == nil {
		m[lang][v1] = map[string]MetaText{}
	}
	m[lang][v1][v2] = t
}

// Document is the normalized, immutable matrix. All accessors return copies.
type Document struct {
	shape         Shape
	source        Source
	axis1Name     string
	axis2Name     string
	axis1         []string
	axis2         []string
	descriptors1  map[string]AxisDescriptor
	descriptors2  map[string]AxisDescriptor
	languages     []string
	canonicalLang string
	patterns      map[string]string
	xDefault      string
	pagePattern   string
	nested        metaIndex
	pairs         metaIndex // composite "v1:v2" keys, stored split
	cells         map[string]map[string]Cell
	pages         []Page
	rules         Rules
	modules       map[string]string
	writes        WritesTable
	strategy      Strategy
	seeds         ResearchSeeds
	warnings      []string

	axis1Set map[string]struct{}
	axis2Set map[string]struct{}
	langSet  map[string]struct{}
}

// Shape reports which configuration shape the document was normalized from.
func (d *Document) Shape() Shape { return d.shape }

// Source reports the file (or seed) the document was loaded from.
func (d *Document) Source() Source { return d.source }

// AxisNames returns the human names of both axes, e.g. ("state", "intent").
func (d *Document) AxisNames() (string, string) { return d.axis1Name, d.axis2Name }

// Axis1 returns the ordered axis-1 values.
func (d *Document) Axis1() []string { return slices.Clone(d.axis1) }

// Axis2 returns the ordered axis-2 values.
func (d *Document) Axis2() []string { return slices.Clone(d.axis2) }

// Languages returns the supported languages, canonical language first.
func (d *Document) Languages() []string { return slices.Clone(d.languages) }

// CanonicalLang returns the default language.
func (d *Document) CanonicalLang() string { return d.canonicalLang }

// Rules returns the validation limits.
func (d *Document) Rules() Rules { return d.rules }

// Warnings returns the non-fatal notes recorded during normalization.
func (d *Document) Warnings() []string { return slices.Clone(d.warnings) }

// Label returns the display name configured for an axis value, if any.
func (d *Document) Label(v string) (string, bool) {
	if desc, ok := d.descriptors1[v]; ok && desc.Name != "" {
		return desc.Name, true
	}
	if desc, ok := d.descriptors2[v]; ok && desc.Name != "" {
		return desc.Name, true
	}
	return "", false
}

// HasAxis1 reports registry membership on axis 1.
func (d *Document) HasAxis1(v string) bool { _, ok := d.axis1Set[v]; return ok }

// HasAxis2 reports registry membership on axis 2.
func (d *Document) HasAxis2(v string) bool { _, ok := d.axis2Set[v]; return ok }

// HasLanguage reports whether lang is a supported language.
func (d *Document) HasLanguage(lang string) bool { _, ok := d.langSet[lang]; return ok }

// ValidateRouting is true iff lang, v1 and v2 are all registered.
func (d *Document) ValidateRouting(lang, v1, v2 string) bool {
	return d.HasLanguage(lang) && d.HasAxis1(v1) && d.HasAxis2(v2)
}

// Pattern returns the normalized pair URL template for lang.
func (d *Document) Pattern(lang string) (string, bool) {
	p, ok := d.patterns[lang]
	return p, ok
}

// Patterns returns a copy of every normalized pair URL template.
func (d *Document) Patterns() map[string]string { return maps.Clone(d.patterns) }

// XDefaultPattern returns the x-default hreflang template, if configured.
// x-default is never a member of Languages.
func (d *Document) XDefaultPattern() (string, bool) { return d.xDefault, d.xDefault != "" }

// PagePattern returns the page URL template ({lang}, {slug}).
func (d *Document) PagePattern() string { return d.pagePattern }

// NestedMeta looks up v1 -> v2 meta for lang, falling back to language-neutral entries.
func (d *Document) NestedMeta(lang, v1, v2 string) (MetaText, bool) {
	if t, ok := d.nested.get(lang, v1, v2); ok {
		return t, true
	}
	return d.nested.get("", v1, v2)
}

// PairMeta looks up the composite "v1:v2" meta for lang, falling back to language-neutral entries.
func (d *Document) PairMeta(lang, v1, v2 string) (MetaText, bool) {
	if t, ok := d.pairs.get(lang, v1, v2); ok {
		return t, true
	}
	return d.pairs.get("", v1, v2)
}

// Cell returns the matrix-shape extras of a pair.
func (d *Document) Cell(v1, v2 string) (Cell, bool) {
	c, ok := d.cells[v1][v2]
	if !ok {
		return Cell{}, false
	}
	c.Pages = slices.Clone(c.Pages)
	return c, true
}

// Pages returns the flattened explicit page list in source order.
func (d *Document) Pages() []Page { return slices.Clone(d.pages) }

// Module returns the module owning an axis-1 value.
func (d *Document) Module(v1 string) (string, bool) {
	m, ok := d.modules[v1]
	return m, ok
}

// Writes returns a copy of the write-policy table.
func (d *Document) Writes() WritesTable {
	w := d.writes
	w.Mandatory = slices.Clone(w.Mandatory)
	w.OptionalByModule = maps.Clone(w.OptionalByModule)
	return w
}

func (d *Document) index() {
	d.axis1Set = toSet(d.axis1)
	d.axis2Set = toSet(d.axis2)
	d.langSet = toSet(d.languages)
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
