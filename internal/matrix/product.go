// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResearchSeedsFileName is the optional sibling file holding research seeds
// when the matrix file itself carries no research_seeds block.
const ResearchSeedsFileName = "seoresearchseeds.yaml"

// AxisDescriptor is the display metadata of one axis value.
type AxisDescriptor struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Emoji       string `yaml:"emoji,omitempty" json:"emoji,omitempty"`
	Color       string `yaml:"color,omitempty" json:"color,omitempty"`
}

// ProductStrategy is the product positioning carried by matrix files.
type ProductStrategy struct {
	WedgeMarket string `yaml:"wedge_market,omitempty" json:"wedge_market,omitempty"`
	CorePromise string `yaml:"core_promise,omitempty" json:"core_promise,omitempty"`
	PrimaryCTA  string `yaml:"primary_cta,omitempty" json:"primary_cta,omitempty"`
}

// Strategy groups the product-level blocks of a matrix file. None of it
// affects routing, meta resolution or the sitemap.
type Strategy struct {
	Product       ProductStrategy     `yaml:"product" json:"product"`
	Status        map[string]string   `yaml:"status,omitempty" json:"status,omitempty"`
	PriorityOrder []string            `yaml:"priority_order,omitempty" json:"priority_order,omitempty"`
	Gates         map[string][]string `yaml:"gates,omitempty" json:"gates,omitempty"`
}

func (s Strategy) empty() bool {
	return s.Product == ProductStrategy{} && len(s.Status) == 0 && len(s.PriorityOrder) == 0 && len(s.Gates) == 0
}

func (s Strategy) clone() Strategy {
	out := s
	out.Status = maps.Clone(s.Status)
	out.PriorityOrder = slices.Clone(s.PriorityOrder)
	out.Gates = cloneLists(s.Gates)
	return out
}

// ResearchSeeds are the keyword seeds used for semantic research.
// IntentGeneric is lang -> phrases; StateSpecific is axis-1 value -> lang -> phrases.
type ResearchSeeds struct {
	IntentGeneric map[string][]string            `yaml:"intent_generic,omitempty" json:"intent_generic,omitempty"`
	StateSpecific map[string]map[string][]string `yaml:"state_specific,omitempty" json:"state_specific,omitempty"`
}

// LanguageSeeds is the research-seed view for one language.
type LanguageSeeds struct {
	Lang          string              `json:"lang"`
	IntentGeneric []string            `json:"intent_generic,omitempty"`
	StateSpecific map[string][]string `json:"state_specific,omitempty"`
}

// Empty reports whether no seeds are configured.
func (s ResearchSeeds) Empty() bool {
	return len(s.IntentGeneric) == 0 && len(s.StateSpecific) == 0
}

func (s ResearchSeeds) clone() ResearchSeeds {
	out := ResearchSeeds{IntentGeneric: cloneLists(s.IntentGeneric)}
	if s.StateSpecific != nil {
		out.StateSpecific = make(map[string]map[string][]string, len(s.StateSpecific))
		for v1, byLang := range s.StateSpecific {
			out.StateSpecific[v1] = cloneLists(byLang)
		}
	}
	return out
}

func cloneLists(m map[string][]string) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}

// Strategy returns a copy of the product strategy, status and execution plan.
func (d *Document) Strategy() Strategy { return d.strategy.clone() }

// ResearchSeeds returns a copy of every configured research seed.
func (d *Document) ResearchSeeds() ResearchSeeds { return d.seeds.clone() }

// ResearchSeedsFor returns the seeds of one language. Axis-1 values without
// phrases in lang are omitted.
func (d *Document) ResearchSeedsFor(lang string) LanguageSeeds {
	out := LanguageSeeds{Lang: lang, IntentGeneric: slices.Clone(d.seeds.IntentGeneric[lang])}
	for v1, byLang := range d.seeds.StateSpecific {
		phrases, ok := byLang[lang]
		if !ok {
			continue
		}
		if out.StateSpecific == nil {
			out.StateSpecific = map[string][]string{}
		}
		out.StateSpecific[v1] = slices.Clone(phrases)
	}
	return out
}

// Axis1Descriptor returns the metadata of an axis-1 value. Values declared
// without metadata yield a descriptor carrying only the ID.
func (d *Document) Axis1Descriptor(v string) (AxisDescriptor, bool) {
	return descriptor(d.axis1Set, d.descriptors1, v)
}

// Axis2Descriptor is Axis1Descriptor for axis 2.
func (d *Document) Axis2Descriptor(v string) (AxisDescriptor, bool) {
	return descriptor(d.axis2Set, d.descriptors2, v)
}

// AxisDescriptors returns both axes' descriptors in axis order.
func (d *Document) AxisDescriptors() (axis1, axis2 []AxisDescriptor) {
	for _, v := range d.axis1 {
		desc, _ := d.Axis1Descriptor(v)
		axis1 = append(axis1, desc)
	}
	for _, v := range d.axis2 {
		desc, _ := d.Axis2Descriptor(v)
		axis2 = append(axis2, desc)
	}
	return axis1, axis2
}

func descriptor(set map[string]struct{}, m map[string]AxisDescriptor, v string) (AxisDescriptor, bool) {
	if _, ok := set[v]; !ok {
		return AxisDescriptor{}, false
	}
	if desc, ok := m[v]; ok {
		return desc, true
	}
	return AxisDescriptor{ID: v}, true
}

// seedsBlock is the research_seeds block, inline or in ResearchSeedsFileName.
type seedsBlock struct {
	IntentGeneric map[string][]string            `yaml:"intent_generic"`
	StateSpecific map[string]map[string][]string `yaml:"state_specific"`
}

type executionBlock struct {
	PriorityOrder []string            `yaml:"priority_order"`
	Gates         map[string][]string `yaml:"gates"`
}

// applyStrategy reads the product-level blocks. They are decoded leniently:
// keys beyond the known ones are product notes and are not validated.
func (b *builder) applyStrategy(product, status, execution *yaml.Node) {
	s := &b.doc.strategy
	if product != nil && product.Kind != 0 {
		if err := product.Decode(&s.Product); err != nil {
			b.problemf("product_strategy: %v", err)
		}
	}

	pairs, err := orderedPairs(status, "status")
	if err != nil {
		b.problemf("%v", err)
	}
	for _, p := range pairs {
		if p.Value.Kind != yaml.ScalarNode {
			b.warnf("status.%s: non-scalar value ignored (line %d)", p.Key, p.Value.Line)
			continue
		}
		if s.Status == nil {
			s.Status = map[string]string{}
		}
		s.Status[p.Key] = p.Value.Value
	}

	if execution != nil && execution.Kind != 0 {
		var e executionBlock
		if err := execution.Decode(&e); err != nil {
			b.problemf("execution_strategy_next: %v", err)
			return
		}
		s.PriorityOrder = e.PriorityOrder
		s.Gates = e.Gates
	}
}

// applyResearchSeeds canonicalizes seed languages. It runs after the axes
// are known so unknown axis-1 keys can be reported.
func (b *builder) applyResearchSeeds(block *seedsBlock) {
	if block == nil {
		return
	}
	seeds, warnings, problems := normalizeResearchSeeds(block, b.doc.axis1)
	b.doc.seeds = seeds
	b.doc.warnings = append(b.doc.warnings, warnings...)
	b.problems = append(b.problems, problems...)
}

func normalizeResearchSeeds(block *seedsBlock, axis1 []string) (seeds ResearchSeeds, warnings, problems []string) {
	byLang := func(field string, in map[string][]string) map[string][]string {
		out := map[string][]string{}
		for _, code := range slices.Sorted(maps.Keys(in)) {
			lang, aliased, err := canonicalLanguage(code)
			switch {
			case err != nil:
				problems = append(problems, fmt.Sprintf("%s: %v", field, err))
				continue
			case lang == XDefault:
				problems = append(problems, fmt.Sprintf("%s: %s is an alternate-only hreflang, not a language", field, XDefault))
				continue
			case aliased:
				warnings = append(warnings, fmt.Sprintf("%s: language %q normalized to %q", field, code, lang))
			}
			for _, phrase := range in[code] {
				if phrase = strings.TrimSpace(phrase); phrase != "" && !slices.Contains(out[lang], phrase) {
					out[lang] = append(out[lang], phrase)
				}
			}
		}
		return out
	}

	if len(block.IntentGeneric) > 0 {
		seeds.IntentGeneric = byLang("research_seeds.intent_generic", block.IntentGeneric)
	}
	for _, v1 := range slices.Sorted(maps.Keys(block.StateSpecific)) {
		if !slices.Contains(axis1, v1) {
			warnings = append(warnings, fmt.Sprintf("research_seeds.state_specific: %q is not an axis1 value", v1))
		}
		if seeds.StateSpecific == nil {
			seeds.StateSpecific = map[string]map[string][]string{}
		}
		seeds.StateSpecific[v1] = byLang("research_seeds.state_specific."+v1, block.StateSpecific[v1])
	}
	return seeds, warnings, problems
}
