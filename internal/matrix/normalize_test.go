// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestNormalize_Legacy(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "legacy.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ShapeLegacy, doc.Shape())
	assert.Equal(t, []string{"fatigue", "loss"}, doc.Axis1())
	assert.Equal(t, []string{"understand", "calm"}, doc.Axis2())
	assert.Equal(t, []string{"en", "uk"}, doc.Languages())
	assert.Equal(t, "en", doc.CanonicalLang())
	assert.Equal(t, Rules{TitleMax: 60, DescriptionMax: 155}, doc.Rules())

	a1, a2 := doc.AxisNames()
	assert.Equal(t, "state", a1)
	assert.Equal(t, "intent", a2)

	p, ok := doc.Pattern("en")
	require.True(t, ok)
	assert.Equal(t, "/en/{v1}/{v2}", p)

	meta, ok := doc.NestedMeta("en", "fatigue", "understand")
	require.True(t, ok)
	assert.Equal(t, "Understand your fatigue", meta.Title)

	// Language-neutral entries serve every language.
	meta, ok = doc.NestedMeta("uk", "fatigue", "calm")
	require.True(t, ok)
	assert.Equal(t, "Calm your fatigue", meta.Title)

	_, ok = doc.NestedMeta("uk", "loss", "understand")
	assert.False(t, ok)
}

func TestNormalize_AliasLanguageMerged(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "legacy.yaml"))
	require.NoError(t, err)

	assert.True(t, doc.HasLanguage("uk"))
	assert.False(t, doc.HasLanguage("ua"))

	p, ok := doc.Pattern("uk")
	require.True(t, ok)
	assert.Equal(t, "/uk/{v1}/{v2}", p)

	meta, ok := doc.NestedMeta("uk", "fatigue", "understand")
	require.True(t, ok)
	assert.Equal(t, "Зрозуміти втому", meta.Title)

	assert.NotEmpty(t, doc.Warnings())
}

const xDefaultMatrix = `
seo:
  hreflang:
    en: "/en/{state}/{intent}"
    uk: "/uk/{state}/{intent}"
    x-default: "/{state}/{intent}"
meta_entries:
  fatigue:
    understand: {title: "Understand your fatigue", description: "Clarify fatigue."}
`

func TestNormalize_XDefaultIsAlternateOnly(t *testing.T) {
	doc, err := Normalize([]byte(xDefaultMatrix))
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "uk"}, doc.Languages())
	assert.False(t, doc.HasLanguage(XDefault))
	assert.False(t, doc.ValidateRouting(XDefault, "fatigue", "understand"))
	assert.NotContains(t, doc.Patterns(), XDefault)

	p, ok := doc.XDefaultPattern()
	require.True(t, ok)
	assert.Equal(t, "/{v1}/{v2}", p)

	_, ok = Seed().XDefaultPattern()
	assert.False(t, ok)
}

func TestNormalize_XDefaultRejectedAsLanguage(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"canonical_lang", "seo:\n  canonical_lang: x-default\n  hreflang:\n    en: \"/en/{state}/{intent}\"\nstates: [a]\nintents: [b]\n"},
		{"languages", "seo:\n  languages: [en, x-default]\n  hreflang:\n    en: \"/en/{state}/{intent}\"\nstates: [a]\nintents: [b]\n"},
		{"meta language", "seo:\n  hreflang:\n    en: \"/en/{state}/{intent}\"\nmeta_entries:\n  a:\n    b:\n      x-default: {title: t, description: d}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrConfigInvalid)
			assert.Contains(t, err.Error(), "alternate-only hreflang")
		})
	}
}

func TestNormalize_CanonicalKeyWinsOverAlias(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "alias first",
			yaml: `
seo:
  hreflang:
    en: "/en/{state}/{intent}"
    ua: "/ua/{state}/{intent}"
    uk: "/uk/{state}/{intent}"
states: [fatigue]
intents: [understand]
`,
		},
		{
			name: "canonical first",
			yaml: `
seo:
  hreflang:
    en: "/en/{state}/{intent}"
    uk: "/uk/{state}/{intent}"
    ua: "/ua/{state}/{intent}"
states: [fatigue]
intents: [understand]
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Normalize([]byte(tt.yaml))
			require.NoError(t, err)
			p, _ := doc.Pattern("uk")
			assert.Equal(t, "/uk/{v1}/{v2}", p)
			assert.Equal(t, []string{"en", "uk"}, doc.Languages())
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	data := readTestdata(t, "legacy.yaml")

	first, err := Normalize(data)
	require.NoError(t, err)
	second, err := Normalize(data)
	require.NoError(t, err)

	a, err := first.Dump()
	require.NoError(t, err)
	b, err := second.Dump()
	require.NoError(t, err)

	if diff := cmp.Diff(string(a), string(b)); diff != "" {
		t.Fatalf("normalization is not deterministic (-first +second):\n%s", diff)
	}
}

func TestNormalize_MatrixShape(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "matrix49.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ShapeMatrix, doc.Shape())
	assert.Equal(t, []string{"nastrij", "kazkar", "podija"}, doc.Axis1())
	assert.Equal(t, []string{"problem", "howto"}, doc.Axis2())
	assert.Equal(t, []string{"en", "uk"}, doc.Languages())

	p, _ := doc.Pattern("uk")
	assert.Equal(t, "/uk/{v1}/{v2}", p)
	assert.Equal(t, DefaultPagePattern, doc.PagePattern())

	label, ok := doc.Label("kazkar")
	require.True(t, ok)
	assert.Equal(t, "Казкар", label)

	cell, ok := doc.Cell("nastrij", "problem")
	require.True(t, ok)
	assert.Equal(t, "I feel tired", cell.Intent)
	assert.Equal(t, []string{"tired-after-work", "tired-after-work", "burnout-signs"}, cell.Pages)

	pages := doc.Pages()
	require.Len(t, pages, 8)
	assert.Equal(t, Page{V1: "podija", V2: "problem", Intent: "Big change ahead", Slug: "burnout-signs"}, pages[6])

	meta, ok := doc.NestedMeta("en", "nastrij", "problem")
	require.True(t, ok)
	assert.Equal(t, "Tired after work", meta.Title)

	meta, ok = doc.NestedMeta("uk", "kazkar", "problem")
	require.True(t, ok)
	assert.Equal(t, "Grief, first days", meta.Title)

	// Identity module mapping.
	mod, ok := doc.Module("podija")
	require.True(t, ok)
	assert.Equal(t, "podija", mod)
	assert.Empty(t, doc.Writes().OptionalByModule)
}

func TestNormalize_MinimalOverlaysSeed(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "minimal.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ShapeMinimal, doc.Shape())
	assert.Equal(t, "uk", doc.CanonicalLang())
	assert.Equal(t, []string{"uk", "en"}, doc.Languages())
	assert.Equal(t, Rules{TitleMax: 70, DescriptionMax: DefaultDescriptionMax}, doc.Rules())
	assert.Equal(t, SeedStates, doc.Axis1())
	assert.Equal(t, SeedIntents, doc.Axis2())
}

func TestNormalize_LegacyMatrixList(t *testing.T) {
	doc, err := Normalize([]byte(`
seo:
  hreflang:
    en: "/en/{state}/{intent}"
matrix:
  - state: fatigue
    intent: understand
    en: {title: T, description: D}
  - state: joy
    intent: preserve
    en: {title: T2, description: D2}
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"fatigue", "joy"}, doc.Axis1())
	assert.Equal(t, []string{"understand", "preserve"}, doc.Axis2())
	meta, ok := doc.NestedMeta("en", "joy", "preserve")
	require.True(t, ok)
	assert.Equal(t, MetaText{Title: "T2", Description: "D2"}, meta)
	assert.Contains(t, doc.Warnings(), "migrated legacy key 'matrix' → 'meta_entries'")
}

func TestNormalize_MetaByPair(t *testing.T) {
	doc, err := Normalize([]byte(`
hreflang_patterns:
  en: "/{lang}/{state}/{intent}"
states: [joy, loss]
intents: [calm]
meta_by_pair:
  "joy:calm": {title: "Calm your joy", description: "Soften joy."}
`))
	require.NoError(t, err)

	_, ok := doc.NestedMeta("en", "joy", "calm")
	assert.False(t, ok)
	meta, ok := doc.PairMeta("en", "joy", "calm")
	require.True(t, ok)
	assert.Equal(t, "Calm your joy", meta.Title)

	p, _ := doc.Pattern("en")
	assert.Equal(t, "/en/{v1}/{v2}", p)
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantIs   []error
		problems []string
	}{
		{
			name:   "unknown field",
			data:   readTestdata(t, "unknown-field.yaml"),
			wantIs: []error{ErrConfigInvalid, ErrUnknownField},
		},
		{
			name:   "unrecognized shape",
			data:   readTestdata(t, "unrecognized.yaml"),
			wantIs: []error{ErrConfigInvalid, ErrUnrecognizedShape},
		},
		{
			name:   "missing canonical pattern and empty axis",
			data:   readTestdata(t, "missing-canonical.yaml"),
			wantIs: []error{ErrConfigInvalid},
			problems: []string{
				"axis1: list cannot be empty",
				`seo.hreflang: missing pattern for canonical language "en"`,
			},
		},
		{
			name:   "root is a list",
			data:   []byte("- a\n- b\n"),
			wantIs: []error{ErrConfigInvalid},
		},
		{
			name:   "multiple documents",
			data:   []byte("seo: {}\n---\nseo: {}\n"),
			wantIs: []error{ErrConfigInvalid},
		},
		{
			name:   "empty",
			data:   []byte(""),
			wantIs: []error{ErrConfigInvalid, ErrUnrecognizedShape},
		},
		{
			name:   "comments only",
			data:   []byte("# seo matrix\n# nothing configured yet\n"),
			wantIs: []error{ErrConfigInvalid, ErrUnrecognizedShape},
		},
		{
			name:   "null document",
			data:   []byte("~\n"),
			wantIs: []error{ErrConfigInvalid, ErrUnrecognizedShape},
		},
		{
			name: "pattern without axis placeholders",
			data: []byte(`
seo:
  hreflang:
    en: "/en/{state}"
states: [fatigue]
intents: [understand]
`),
			wantIs:   []error{ErrConfigInvalid},
			problems: []string{"seo.hreflang.en: must contain {v2}"},
		},
		{
			name: "unknown placeholder",
			data: []byte(`
seo:
  hreflang:
    en: "/en/{state}/{intent}/{page}"
states: [fatigue]
intents: [understand]
`),
			wantIs: []error{ErrConfigInvalid},
		},
		{
			name: "rule limits out of range",
			data: []byte(`
seo:
  hreflang:
    en: "/en/{state}/{intent}"
  rules: {title_max: 0, description_max: 5000}
states: [fatigue]
intents: [understand]
`),
			wantIs: []error{ErrConfigInvalid},
			problems: []string{
				"seo.rules.title_max: value must be between 1 and 1000, got 0",
				"seo.rules.description_max: value must be between 1 and 1000, got 5000",
			},
		},
		{
			name: "writes policy min above max",
			data: []byte(`
seo:
  hreflang:
    en: "/en/{state}/{intent}"
states: [fatigue]
intents: [understand]
writes_policy: {min: 4, max: 3}
`),
			wantIs:   []error{ErrConfigInvalid},
			problems: []string{"writes_policy.max: max 3 is below min 4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Normalize(tt.data)
			require.Error(t, err)
			assert.Nil(t, doc)
			for _, target := range tt.wantIs {
				assert.ErrorIs(t, err, target)
			}
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			for _, p := range tt.problems {
				assert.Contains(t, cerr.Problems, p)
			}
		})
	}
}

func TestShape_Detection(t *testing.T) {
	tests := []struct {
		yaml string
		want Shape
	}{
		{"network_matrix: {}", ShapeMatrix},
		{"patterns_49: {}\nmeta_entries: {}", ShapeMatrix},
		{"meta_entries: {}", ShapeLegacy},
		{"states: []", ShapeLegacy},
		{"seo: {}", ShapeMinimal},
		{"other: 1", ShapeUnknown},
	}
	for _, tt := range tests {
		root, err := parseRoot([]byte(tt.yaml))
		require.NoError(t, err)
		assert.Equal(t, tt.want, detectShape(root), tt.yaml)
	}
}
