// SPDX-License-Identifier: MIT

// Package sitemap renders sitemap.xml and robots.txt from a resolved matrix.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/seo"
)

// XML namespaces of the sitemap protocol and the hreflang extension.
const (
	NamespaceSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"
	NamespaceXHTML   = "http://www.w3.org/1999/xhtml"
)

// Entry is one deduplicated sitemap URL with its language alternates.
type Entry struct {
	Slug       string          `json:"slug"`
	Loc        string          `json:"loc"`
	Alternates []seo.Alternate `json:"alternates"`
}

// Generator builds sitemap entries from a resolver.
type Generator struct {
	seo *seo.Resolver
}

// NewGenerator returns a generator over r.
func NewGenerator(r *seo.Resolver) *Generator {
	return &Generator{seo: r}
}

// Entries lists one entry per slug, first occurrence wins. When the document
// carries an explicit page list the sitemap covers those pages; otherwise it
// covers every axis1 x axis2 cell.
func (g *Generator) Entries(baseURL string) []Entry {
	doc := g.seo.Document()
	seen := map[string]struct{}{}
	var out []Entry

	add := func(slug string, build func(lang string) string) bool {
		if _, dup := seen[slug]; dup {
			return false
		}
		seen[slug] = struct{}{}
		e := Entry{Slug: slug, Loc: seo.JoinURL(baseURL, build(doc.CanonicalLang()))}
		for _, lang := range doc.Languages() {
			e.Alternates = append(e.Alternates, seo.Alternate{Hreflang: lang, Href: seo.JoinURL(baseURL, build(lang))})
		}
		out = append(out, e)
		return true
	}

	if pages := doc.Pages(); len(pages) > 0 {
		for _, p := range pages {
			slug := p.Slug
			add(slug, func(lang string) string { return g.seo.PageURL(slug, lang) })
		}
		return out
	}

	for _, v1 := range doc.Axis1() {
		for _, v2 := range doc.Axis2() {
			added := add(v1+"/"+v2, func(lang string) string { return g.seo.CanonicalURL(v1, v2, lang) })
			if href, ok := g.seo.XDefaultURL(v1, v2); ok && added {
				last := &out[len(out)-1]
				last.Alternates = append(last.Alternates, seo.Alternate{Hreflang: matrix.XDefault, Href: seo.JoinURL(baseURL, href)})
			}
		}
	}
	return out
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc   string    `xml:"loc"`
	Links []xmlLink `xml:"xhtml:link"`
}

type xmlLink struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// WriteXML encodes entries as a sitemap urlset.
func WriteXML(w io.Writer, entries []Entry) error {
	set := xmlURLSet{Xmlns: NamespaceSitemap, XHTML: NamespaceXHTML}
	for _, e := range entries {
		u := xmlURL{Loc: e.Loc}
		for _, a := range e.Alternates {
			u.Links = append(u.Links, xmlLink{Rel: "alternate", Hreflang: a.Hreflang, Href: a.Href})
		}
		set.URLs = append(set.URLs, u)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteXML generates the entries for baseURL and writes the sitemap.
func (g *Generator) WriteXML(w io.Writer, baseURL string) error {
	return WriteXML(w, g.Entries(baseURL))
}

// XML returns the sitemap document for baseURL.
func (g *Generator) XML(baseURL string) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.WriteXML(&buf, baseURL); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RobotsTxt returns a permissive robots.txt pointing at sitemapURL.
func RobotsTxt(sitemapURL string) string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + sitemapURL + "\n"
}
