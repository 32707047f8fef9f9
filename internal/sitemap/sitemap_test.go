// SPDX-License-Identifier: MIT

package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/seo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobotsTxt(t *testing.T) {
	assert.Equal(t,
		"User-agent: *\nAllow: /\n\nSitemap: https://example.com/sitemap.xml\n",
		RobotsTxt("https://example.com/sitemap.xml"))
}

func TestEntries_FullMatrix(t *testing.T) {
	g := NewGenerator(seo.NewResolver(matrix.Seed()))

	entries := g.Entries("https://cimeika.com")
	require.Len(t, entries, 49)

	first := entries[0]
	assert.Equal(t, "fatigue/understand", first.Slug)
	assert.Equal(t, "https://cimeika.com/en/fatigue/understand", first.Loc)
	assert.Equal(t, []seo.Alternate{
		{Hreflang: "en", Href: "https://cimeika.com/en/fatigue/understand"},
		{Hreflang: "uk", Href: "https://cimeika.com/uk/fatigue/understand"},
	}, first.Alternates)
}

func TestEntries_XDefaultAlternate(t *testing.T) {
	doc, err := matrix.Normalize([]byte(`
seo:
  hreflang:
    en: "/en/{state}/{intent}"
    uk: "/uk/{state}/{intent}"
    x-default: "/{state}/{intent}"
states: [fatigue]
intents: [understand]
`))
	require.NoError(t, err)

	entries := NewGenerator(seo.NewResolver(doc)).Entries("https://cimeika.com")
	require.Len(t, entries, 1)
	assert.Equal(t, []seo.Alternate{
		{Hreflang: "en", Href: "https://cimeika.com/en/fatigue/understand"},
		{Hreflang: "uk", Href: "https://cimeika.com/uk/fatigue/understand"},
		{Hreflang: "x-default", Href: "https://cimeika.com/fatigue/understand"},
	}, entries[0].Alternates)
}

func TestEntries_PagesDeduplicated(t *testing.T) {
	doc, err := matrix.Normalize([]byte(`
network_matrix:
  modules: [nastrij, podija]
  traffic_categories: [problem]
patterns_49:
  nastrij:
    problem:
      intent: tired
      pages: [tired-after-work, tired-after-work, burnout-signs]
  podija:
    problem:
      intent: change
      pages: [burnout-signs, moving-house]
`))
	require.NoError(t, err)
	g := NewGenerator(seo.NewResolver(doc))

	entries := g.Entries("https://cimeika.com/")
	var slugs, locs []string
	for _, e := range entries {
		slugs = append(slugs, e.Slug)
		locs = append(locs, e.Loc)
	}
	assert.Equal(t, []string{"tired-after-work", "burnout-signs", "moving-house"}, slugs)
	assert.Equal(t, "https://cimeika.com/en/moving-house", locs[2])

	seen := map[string]bool{}
	for _, l := range locs {
		assert.False(t, seen[l], "duplicate loc %s", l)
		seen[l] = true
	}
}

func TestXML(t *testing.T) {
	g := NewGenerator(seo.NewResolver(matrix.Seed()))

	out, err := g.XML("https://cimeika.com")
	require.NoError(t, err)
	s := string(out)

	assert.True(t, strings.HasPrefix(s, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, s, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, s, `xmlns:xhtml="http://www.w3.org/1999/xhtml"`)
	assert.Contains(t, s, `<loc>https://cimeika.com/en/joy/calm</loc>`)
	assert.Contains(t, s, `<xhtml:link rel="alternate" hreflang="uk" href="https://cimeika.com/uk/joy/calm"></xhtml:link>`)
	assert.Equal(t, 49, strings.Count(s, "<url>"))

	// The document must stay well-formed.
	var parsed struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(out, &parsed))
	assert.Len(t, parsed.URLs, 49)
}
