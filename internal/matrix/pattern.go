// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"regexp"
	"strings"
)

// Canonical placeholder vocabulary. Every URL template is rewritten to it at load time.
const (
	PlaceholderV1   = "{v1}"
	PlaceholderV2   = "{v2}"
	PlaceholderLang = "{lang}"
	PlaceholderSlug = "{slug}"
)

// DefaultPagePattern builds URLs for explicit page slugs.
const DefaultPagePattern = "/{lang}/{slug}"

var placeholderRe = regexp.MustCompile(`\{[^{}]*\}`)

// pairVocabulary accepts both axis-specific names and the legacy aliases.
var pairVocabulary = map[string]string{
	"{v1}":       PlaceholderV1,
	"{state}":    PlaceholderV1,
	"{module}":   PlaceholderV1,
	"{v2}":       PlaceholderV2,
	"{intent}":   PlaceholderV2,
	"{category}": PlaceholderV2,
}

// normalizePairTemplate binds {lang} and rewrites pair placeholders to {v1}/{v2}.
func normalizePairTemplate(tpl, lang string) (string, error) {
	var unknown []string
	out := placeholderRe.ReplaceAllStringFunc(tpl, func(ph string) string {
		if ph == PlaceholderLang {
			return lang
		}
		if c, ok := pairVocabulary[ph]; ok {
			return c
		}
		unknown = append(unknown, ph)
		return ph
	})
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown placeholder(s) %s in %q", strings.Join(unknown, ", "), tpl)
	}
	return out, nil
}

// normalizePageTemplate accepts only {lang} and {slug}.
func normalizePageTemplate(tpl string) (string, error) {
	var unknown []string
	for _, ph := range placeholderRe.FindAllString(tpl, -1) {
		if ph != PlaceholderLang && ph != PlaceholderSlug {
			unknown = append(unknown, ph)
		}
	}
	if len(unknown) > 0 {
		return "", fmt.Errorf("unknown placeholder(s) %s in %q", strings.Join(unknown, ", "), tpl)
	}
	return tpl, nil
}
