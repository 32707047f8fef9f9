// SPDX-License-Identifier: MIT

package seo

import (
	"net/url"
	"strings"

	"github.com/cimeika/seomatrix/internal/matrix"
)

// CanonicalURL builds the path for (v1, v2) in lang. An empty lang means the
// canonical language. Unknown languages fall back to the canonical pattern.
func (r *Resolver) CanonicalURL(v1, v2, lang string) string {
	if lang == "" {
		lang = r.doc.CanonicalLang()
	}
	return expand(r.pattern(lang), v1, v2)
}

// HreflangTags maps every configured language to its URL for (v1, v2), plus
// x-default when the document declares a selector pattern.
func (r *Resolver) HreflangTags(v1, v2 string) map[string]string {
	langs := r.doc.Languages()
	out := make(map[string]string, len(langs)+1)
	for _, lang := range langs {
		out[lang] = r.CanonicalURL(v1, v2, lang)
	}
	if href, ok := r.XDefaultURL(v1, v2); ok {
		out[matrix.XDefault] = href
	}
	return out
}

// XDefaultURL builds the x-default path for (v1, v2), if one is configured.
func (r *Resolver) XDefaultURL(v1, v2 string) (string, bool) {
	p, ok := r.doc.XDefaultPattern()
	if !ok {
		return "", false
	}
	return expand(p, v1, v2), true
}

// Alternate is one hreflang link.
type Alternate struct {
	Hreflang string `json:"hreflang"`
	Href     string `json:"href"`
}

// PageURL builds the URL of an explicit page slug in lang.
func (r *Resolver) PageURL(slug, lang string) string {
	if lang == "" {
		lang = r.doc.CanonicalLang()
	}
	segments := strings.Split(strings.Trim(slug, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.NewReplacer(
		matrix.PlaceholderLang, lang,
		matrix.PlaceholderSlug, strings.Join(segments, "/"),
	).Replace(r.doc.PagePattern())
}

// pattern walks lang -> canonical -> first configured language. Loading
// guarantees the canonical pattern exists.
func (r *Resolver) pattern(lang string) string {
	if p, ok := r.doc.Pattern(lang); ok {
		return p
	}
	if p, ok := r.doc.Pattern(r.doc.CanonicalLang()); ok {
		return p
	}
	for _, l := range r.doc.Languages() {
		if p, ok := r.doc.Pattern(l); ok {
			return p
		}
	}
	return ""
}

func expand(pattern, v1, v2 string) string {
	return strings.NewReplacer(
		matrix.PlaceholderV1, url.PathEscape(v1),
		matrix.PlaceholderV2, url.PathEscape(v2),
	).Replace(pattern)
}

// JoinURL prefixes path with baseURL, avoiding a doubled slash.
func JoinURL(baseURL, path string) string {
	if baseURL == "" {
		return path
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
