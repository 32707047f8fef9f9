// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type rulesBlock struct {
	TitleMax       *int `yaml:"title_max"`
	DescriptionMax *int `yaml:"description_max"`
}

type seoBlock struct {
	CanonicalLang string      `yaml:"canonical_lang"`
	Languages     []string    `yaml:"languages"`
	Hreflang      yaml.Node   `yaml:"hreflang"`
	PagePattern   string      `yaml:"page_pattern"`
	Rules         *rulesBlock `yaml:"rules"`
}

type writesBlock struct {
	Min              *int              `yaml:"min"`
	Max              *int              `yaml:"max"`
	Mandatory        []string          `yaml:"mandatory"`
	OptionalByModule map[string]string `yaml:"optional_by_module"`
}

// builder accumulates a Document. Conversion problems are collected so a
// single load reports everything that is wrong with the file.
type builder struct {
	doc      *Document
	problems []string
}

func newBuilder(shape Shape, warnings []string) *builder {
	return &builder{doc: &Document{
		shape:    shape,
		patterns: map[string]string{},
		nested:   metaIndex{},
		pairs:    metaIndex{},
		cells:    map[string]map[string]Cell{},
		modules:  map[string]string{},
		warnings: slices.Clone(warnings),
	}}
}

func (b *builder) problemf(format string, args ...any) {
	b.problems = append(b.problems, fmt.Sprintf(format, args...))
}

func (b *builder) warnf(format string, args ...any) {
	b.doc.warnings = append(b.doc.warnings, fmt.Sprintf(format, args...))
}

// language canonicalizes a configured language key, recording alias rewrites.
// x-default is not a routable language and is rejected here; only
// seo.hreflang may declare it.
func (b *builder) language(field, code string) (string, bool) {
	canon, aliased, err := canonicalLanguage(code)
	if err != nil {
		b.problemf("%s: %v", field, err)
		return "", false
	}
	if canon == XDefault {
		b.problemf("%s: %s is an alternate-only hreflang, not a language", field, XDefault)
		return "", false
	}
	if aliased {
		b.warnf("%s: language %q normalized to %q", field, code, canon)
	}
	return canon, true
}

// applySEO fills canonical language, patterns, languages, page pattern and rules.
// defaults supplies lang -> template used only when the block declares no hreflang.
func (b *builder) applySEO(seo *seoBlock, defaults []keyedNode) {
	if seo == nil {
		seo = &seoBlock{}
	}
	d := b.doc

	d.canonicalLang = DefaultCanonicalLang
	if seo.CanonicalLang != "" {
		if c, ok := b.language("seo.canonical_lang", seo.CanonicalLang); ok {
			d.canonicalLang = c
		}
	}

	entries, err := orderedPairs(&seo.Hreflang, "seo.hreflang")
	if err != nil {
		b.problemf("%v", err)
	}
	if len(entries) == 0 {
		entries = defaults
	}

	// Canonical keys win over aliases regardless of source order.
	var order []string
	fromAlias := map[string]bool{}
	for _, e := range entries {
		if e.Value.Kind != yaml.ScalarNode {
			b.problemf("seo.hreflang.%s: expected a string template (line %d)", e.Key, e.Value.Line)
			continue
		}
		if c, _, err := canonicalLanguage(e.Key); err == nil && c == XDefault {
			b.applyXDefault(e.Value.Value)
			continue
		}
		lang, ok := b.language("seo.hreflang", e.Key)
		if !ok {
			continue
		}
		aliased := isAlias(e.Key, lang)
		if _, seen := d.patterns[lang]; seen {
			if aliased || !fromAlias[lang] {
				b.warnf("seo.hreflang: duplicate key %q for %q ignored", e.Key, lang)
				continue
			}
			b.warnf("seo.hreflang: %q overrides alias entry", e.Key)
		} else {
			order = append(order, lang)
		}
		tpl, err := normalizePairTemplate(e.Value.Value, lang)
		if err != nil {
			b.problemf("seo.hreflang.%s: %v", lang, err)
			continue
		}
		d.patterns[lang] = tpl
		fromAlias[lang] = aliased
	}

	if len(seo.Languages) > 0 {
		for i, l := range seo.Languages {
			if lang, ok := b.language(fmt.Sprintf("seo.languages[%d]", i), l); ok {
				if !slices.Contains(d.languages, lang) {
					d.languages = append(d.languages, lang)
				}
			}
		}
		for lang := range d.patterns {
			if !slices.Contains(d.languages, lang) && lang != d.canonicalLang {
				b.warnf("seo.hreflang: pattern for %q ignored (not in seo.languages)", lang)
				delete(d.patterns, lang)
			}
		}
	} else {
		d.languages = order
	}
	// Canonical language first.
	if i := slices.Index(d.languages, d.canonicalLang); i > 0 {
		d.languages = slices.Insert(slices.Delete(d.languages, i, i+1), 0, d.canonicalLang)
	} else if i < 0 {
		d.languages = slices.Insert(d.languages, 0, d.canonicalLang)
	}

	d.pagePattern = DefaultPagePattern
	if seo.PagePattern != "" {
		tpl, err := normalizePageTemplate(seo.PagePattern)
		if err != nil {
			b.problemf("seo.page_pattern: %v", err)
		} else {
			d.pagePattern = tpl
		}
	}

	d.rules = Rules{TitleMax: DefaultTitleMax, DescriptionMax: DefaultDescriptionMax}
	if seo.Rules != nil {
		if seo.Rules.TitleMax != nil {
			d.rules.TitleMax = *seo.Rules.TitleMax
		}
		if seo.Rules.DescriptionMax != nil {
			d.rules.DescriptionMax = *seo.Rules.DescriptionMax
		}
	}
}

// applyXDefault stores the selector-page template. {lang} binds to the
// canonical language, which applySEO resolves before reading hreflang.
func (b *builder) applyXDefault(tpl string) {
	if b.doc.xDefault != "" {
		b.warnf("seo.hreflang: duplicate %s ignored", XDefault)
		return
	}
	out, err := normalizePairTemplate(tpl, b.doc.canonicalLang)
	if err != nil {
		b.problemf("seo.hreflang.%s: %v", XDefault, err)
		return
	}
	b.doc.xDefault = out
}

// applyWrites merges a configured writes_policy over the given base table.
func (b *builder) applyWrites(w *writesBlock, base WritesTable) {
	t := base
	t.Mandatory = slices.Clone(base.Mandatory)
	t.OptionalByModule = map[string]string{}
	for k, v := range base.OptionalByModule {
		t.OptionalByModule[k] = v
	}
	if w != nil {
		if w.Min != nil {
			t.Min = *w.Min
		}
		if w.Max != nil {
			t.Max = *w.Max
		}
		if w.Mandatory != nil {
			t.Mandatory = slices.Clone(w.Mandatory)
		}
		if w.OptionalByModule != nil {
			t.OptionalByModule = map[string]string{}
			for k, v := range w.OptionalByModule {
				t.OptionalByModule[k] = v
			}
		}
	}
	b.doc.writes = t
}

// metaFields are the keys that mark a language-neutral meta mapping.
var metaFields = []string{"title", "description"}

// addMeta stores one pair's meta node. The node is either a language-neutral
// {title, description} mapping or a mapping of language -> {title, description}.
// extra names keys tolerated next to title/description (matrix-shape cells).
func (b *builder) addMeta(idx metaIndex, field, v1, v2 string, n *yaml.Node, extra ...string) {
	if n == nil || n.Kind != yaml.MappingNode {
		b.problemf("%s: expected a mapping", field)
		return
	}
	neutral := false
	for _, f := range metaFields {
		if _, ok := mappingGet(n, f); ok {
			neutral = true
		}
	}
	if neutral {
		t, ok := b.metaText(field, n, extra...)
		if ok {
			idx.put("", v1, v2, t)
		}
		return
	}

	pairs, err := orderedPairs(n, field)
	if err != nil {
		b.problemf("%v", err)
		return
	}
	fromAlias := map[string]bool{}
	for _, p := range pairs {
		if slices.Contains(extra, p.Key) {
			continue
		}
		lang, ok := b.language(field, p.Key)
		if !ok {
			continue
		}
		sub := field + "." + p.Key
		if p.Value.Kind != yaml.MappingNode {
			b.problemf("%s: expected a mapping", sub)
			continue
		}
		t, ok := b.metaText(sub, p.Value)
		if !ok {
			continue
		}
		aliased := isAlias(p.Key, lang)
		if _, exists := idx.get(lang, v1, v2); exists {
			if aliased || !fromAlias[lang] {
				b.warnf("%s: duplicate language %q ignored", field, p.Key)
				continue
			}
		}
		idx.put(lang, v1, v2, t)
		fromAlias[lang] = aliased
	}
}

func (b *builder) metaText(field string, n *yaml.Node, extra ...string) (MetaText, bool) {
	var t MetaText
	pairs, err := orderedPairs(n, field)
	if err != nil {
		b.problemf("%v", err)
		return t, false
	}
	for _, p := range pairs {
		switch {
		case p.Key == "title" || p.Key == "description":
			if p.Value.Kind != yaml.ScalarNode {
				b.problemf("%s.%s: expected a string (line %d)", field, p.Key, p.Value.Line)
				return t, false
			}
			if p.Key == "title" {
				t.Title = p.Value.Value
			} else {
				t.Description = p.Value.Value
			}
		case slices.Contains(extra, p.Key):
		default:
			b.warnf("%s: unknown key %q ignored", field, p.Key)
		}
	}
	return t, true
}

// appendUnique adds v to list when absent.
func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

// isAlias reports whether key named lang through the alias table rather than
// by its own code (case and separator differences excluded).
func isAlias(key, lang string) bool {
	return !strings.EqualFold(strings.ReplaceAll(strings.TrimSpace(key), "_", "-"), lang)
}
