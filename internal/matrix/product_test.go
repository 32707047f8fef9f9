// SPDX-License-Identifier: MIT

package matrix

import (
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasWarningPrefix(doc *Document, prefix string) bool {
	return slices.ContainsFunc(doc.Warnings(), func(w string) bool { return strings.HasPrefix(w, prefix) })
}

func TestStrategy_MatrixShape(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "matrix49.yaml"))
	require.NoError(t, err)

	want := Strategy{
		Product: ProductStrategy{
			WedgeMarket: "emotional self-care",
			CorePromise: "Feel lighter in five minutes",
			PrimaryCTA:  "Start a check-in",
		},
		Status:        map[string]string{"phase": "beta", "traffic_ready": "true"},
		PriorityOrder: []string{"nastrij", "kazkar", "podija"},
		Gates:         map[string][]string{"launch": {"meta_complete", "sitemap_live"}},
	}
	if diff := cmp.Diff(want, doc.Strategy()); diff != "" {
		t.Fatalf("strategy mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, hasWarningPrefix(doc, "status.owners: non-scalar value ignored"))
}

func TestStrategy_ReturnsCopies(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "matrix49.yaml"))
	require.NoError(t, err)

	s := doc.Strategy()
	s.Status["phase"] = "ga"
	s.PriorityOrder[0] = "podija"
	s.Gates["launch"][0] = "skipped"

	again := doc.Strategy()
	assert.Equal(t, "beta", again.Status["phase"])
	assert.Equal(t, "nastrij", again.PriorityOrder[0])
	assert.Equal(t, "meta_complete", again.Gates["launch"][0])
}

func TestStrategy_EmptyForLegacy(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "legacy.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Strategy{}, doc.Strategy())
	assert.Nil(t, doc.Snapshot().Strategy)
	assert.True(t, doc.ResearchSeeds().Empty())
	assert.Nil(t, doc.Snapshot().ResearchSeeds)
}

func TestStrategy_MalformedBlocks(t *testing.T) {
	_, err := Normalize([]byte(`
network_matrix:
  modules: [nastrij]
  traffic_categories: [problem]
product_strategy: "just a sentence"
execution_strategy_next:
  priority_order: {first: nastrij}
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.Contains(t, err.Error(), "product_strategy:")
	assert.Contains(t, err.Error(), "execution_strategy_next:")
}

func TestAxisDescriptors(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "matrix49.yaml"))
	require.NoError(t, err)

	d, ok := doc.Axis1Descriptor("nastrij")
	require.True(t, ok)
	assert.Equal(t, AxisDescriptor{ID: "nastrij", Name: "Настрій", Description: "Mood check-ins", Emoji: "🌤", Color: "#F5A623"}, d)

	// Declared as a bare id.
	d, ok = doc.Axis1Descriptor("podija")
	require.True(t, ok)
	assert.Equal(t, AxisDescriptor{ID: "podija"}, d)

	d, ok = doc.Axis2Descriptor("howto")
	require.True(t, ok)
	assert.Equal(t, AxisDescriptor{ID: "howto", Name: "How-to"}, d)

	_, ok = doc.Axis1Descriptor("problem")
	assert.False(t, ok, "axis-2 value must not resolve on axis 1")
	_, ok = doc.Axis2Descriptor("unknown")
	assert.False(t, ok)

	axis1, axis2 := doc.AxisDescriptors()
	require.Len(t, axis1, 3)
	assert.Equal(t, "kazkar", axis1[1].ID)
	assert.Equal(t, "Казкар", axis1[1].Name)
	assert.Equal(t, []AxisDescriptor{{ID: "problem", Name: "Problem"}, {ID: "howto", Name: "How-to"}}, axis2)

	snap := doc.Snapshot()
	assert.Equal(t, "Mood check-ins", snap.Descriptors1["nastrij"].Description)
	assert.Equal(t, AxisDescriptor{ID: "podija"}, snap.Descriptors1["podija"])
}

func TestAxisDescriptors_LegacyIDsOnly(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "legacy.yaml"))
	require.NoError(t, err)

	d, ok := doc.Axis1Descriptor("fatigue")
	require.True(t, ok)
	assert.Equal(t, AxisDescriptor{ID: "fatigue"}, d)
	_, ok = doc.Label("fatigue")
	assert.False(t, ok)
}

func TestResearchSeeds_Inline(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "matrix49.yaml"))
	require.NoError(t, err)

	want := ResearchSeeds{
		IntentGeneric: map[string][]string{
			"en": {"how to feel better"},
			"uk": {"як почуватися краще"},
		},
		StateSpecific: map[string]map[string][]string{
			"nastrij":        {"en": {"tired after work"}, "uk": {"втома після роботи"}},
			"unknown-module": {"en": {"orphan seed"}},
		},
	}
	if diff := cmp.Diff(want, doc.ResearchSeeds()); diff != "" {
		t.Fatalf("seeds mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, doc.Warnings(), `research_seeds.intent_generic: language "ua" normalized to "uk"`)
	assert.Contains(t, doc.Warnings(), `research_seeds.state_specific: "unknown-module" is not an axis1 value`)
}

func TestResearchSeedsFor(t *testing.T) {
	doc, err := Normalize(readTestdata(t, "matrix49.yaml"))
	require.NoError(t, err)

	uk := doc.ResearchSeedsFor("uk")
	assert.Equal(t, LanguageSeeds{
		Lang:          "uk",
		IntentGeneric: []string{"як почуватися краще"},
		StateSpecific: map[string][]string{"nastrij": {"втома після роботи"}},
	}, uk)

	en := doc.ResearchSeedsFor("en")
	assert.Len(t, en.StateSpecific, 2)

	none := doc.ResearchSeedsFor("de")
	assert.Equal(t, LanguageSeeds{Lang: "de"}, none)

	uk.IntentGeneric[0] = "changed"
	assert.Equal(t, "як почуватися краще", doc.ResearchSeedsFor("uk").IntentGeneric[0])
}

func TestResearchSeeds_InvalidLanguage(t *testing.T) {
	_, err := Normalize([]byte(`
seo:
  hreflang:
    en: "/en/{state}/{intent}"
states: [fatigue]
intents: [understand]
research_seeds:
  intent_generic:
    x-default: [anything]
  state_specific:
    fatigue:
      "not a language!": [tired]
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigInvalid)
	assert.Contains(t, err.Error(), "research_seeds.intent_generic: x-default is an alternate-only hreflang")
	assert.Contains(t, err.Error(), "research_seeds.state_specific.fatigue: invalid language code")
}

func TestLoadFile_SiblingSeedsFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, FileName, string(readTestdata(t, "legacy.yaml")))
	writeFile(t, dir, ResearchSeedsFileName, `
intent_generic:
  ua: [як зрозуміти втому]
state_specific:
  fatigue:
    en: [always tired]
`)

	doc, err := LoadFile(p)
	require.NoError(t, err)

	seeds := doc.ResearchSeedsFor("uk")
	assert.Equal(t, []string{"як зрозуміти втому"}, seeds.IntentGeneric)
	assert.Equal(t, map[string][]string{"fatigue": {"always tired"}}, doc.ResearchSeedsFor("en").StateSpecific)
	assert.Contains(t, doc.Warnings(), ResearchSeedsFileName+`: research_seeds.intent_generic: language "ua" normalized to "uk"`)
}

func TestLoadFile_InlineSeedsWinOverSiblingFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, FileName, string(readTestdata(t, "matrix49.yaml")))
	writeFile(t, dir, ResearchSeedsFileName, "intent_generic:\n  en: [from the sibling file]\n")

	doc, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, []string{"how to feel better"}, doc.ResearchSeedsFor("en").IntentGeneric)
}

func TestLoadFile_SiblingSeedsFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []error
	}{
		{name: "unknown key", content: "intent_specific: {}\n", want: []error{ErrConfigInvalid, ErrUnknownField}},
		{name: "bad language", content: "intent_generic:\n  \"??\": [x]\n", want: []error{ErrConfigInvalid}},
		{name: "syntax", content: "intent_generic: [\n", want: []error{ErrConfigInvalid}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			p := writeFile(t, dir, FileName, string(readTestdata(t, "legacy.yaml")))
			seedsPath := writeFile(t, dir, ResearchSeedsFileName, tt.content)

			_, err := LoadFile(p)
			require.Error(t, err)
			for _, want := range tt.want {
				assert.ErrorIs(t, err, want)
			}
			assert.Contains(t, err.Error(), seedsPath)
		})
	}
}

func TestLoadFile_EmptySiblingSeedsFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, FileName, string(readTestdata(t, "legacy.yaml")))
	writeFile(t, dir, ResearchSeedsFileName, "# nothing yet\n")

	doc, err := LoadFile(p)
	require.NoError(t, err)
	assert.True(t, doc.ResearchSeeds().Empty())
}
