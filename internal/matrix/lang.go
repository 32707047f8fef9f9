// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultCanonicalLang is used when a document does not declare one.
const DefaultCanonicalLang = "en"

// XDefault is the hreflang value reserved for the language-selector page.
const XDefault = "x-default"

// languageAliases maps non-standard codes seen in older configs to BCP 47 codes.
// "ua" is the country code of Ukraine, not a language.
var languageAliases = map[string]string{
	"ua": "uk",
	"gr": "el",
	"cz": "cs",
	"dk": "da",
	"se": "sv",
	"jp": "ja",
}

// canonicalLanguage normalizes a configured language key. aliased reports
// whether the key was rewritten to a different code (case changes excluded).
func canonicalLanguage(code string) (canon string, aliased bool, err error) {
	c := strings.ToLower(strings.TrimSpace(code))
	c = strings.ReplaceAll(c, "_", "-")
	if c == "" {
		return "", false, fmt.Errorf("empty language code")
	}
	if c == XDefault {
		return c, false, nil
	}
	if target, ok := languageAliases[c]; ok {
		c = target
	}
	tag, err := language.Parse(c)
	if err != nil {
		return "", false, fmt.Errorf("invalid language code %q: %w", code, err)
	}
	canon = tag.String()
	return canon, !strings.EqualFold(canon, strings.TrimSpace(code)), nil
}
