// SPDX-License-Identifier: MIT

package matrix

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type legacyFile struct {
	SEO           *seoBlock         `yaml:"seo"`
	States        []string          `yaml:"states"`
	Intents       []string          `yaml:"intents"`
	MetaEntries   yaml.Node         `yaml:"meta_entries"`
	MetaByPair    yaml.Node         `yaml:"meta_by_pair"`
	ModuleMapping map[string]string `yaml:"module_mapping"`
	WritesPolicy  *writesBlock      `yaml:"writes_policy"`
	ResearchSeeds *seedsBlock       `yaml:"research_seeds"`
	// Meta is an informational block (version, notes). It is accepted and ignored.
	Meta yaml.Node `yaml:"meta"`
}

// fromLegacy converts the state x intent shape.
func fromLegacy(f *legacyFile, shape Shape, warnings []string) (*Document, error) {
	b := newBuilder(shape, warnings)
	d := b.doc
	d.axis1Name, d.axis2Name = "state", "intent"

	b.applySEO(f.SEO, nil)

	d.axis1 = dedupe(b, "states", f.States)
	d.axis2 = dedupe(b, "intents", f.Intents)
	explicit1, explicit2 := len(d.axis1) > 0, len(d.axis2) > 0

	states, err := orderedPairs(&f.MetaEntries, "meta_entries")
	if err != nil {
		b.problemf("%v", err)
	}
	for _, s := range states {
		if !explicit1 {
			d.axis1 = appendUnique(d.axis1, s.Key)
		}
		intents, err := orderedPairs(s.Value, "meta_entries."+s.Key)
		if err != nil {
			b.problemf("%v", err)
			continue
		}
		for _, in := range intents {
			if !explicit2 {
				d.axis2 = appendUnique(d.axis2, in.Key)
			}
			b.addMeta(d.nested, "meta_entries."+s.Key+"."+in.Key, s.Key, in.Key, in.Value)
		}
	}

	byPair, err := orderedPairs(&f.MetaByPair, "meta_by_pair")
	if err != nil {
		b.problemf("%v", err)
	}
	for _, p := range byPair {
		v1, v2, ok := strings.Cut(p.Key, ":")
		if !ok || v1 == "" || v2 == "" {
			b.problemf("meta_by_pair: key %q is not of the form v1:v2", p.Key)
			continue
		}
		if !explicit1 {
			d.axis1 = appendUnique(d.axis1, v1)
		}
		if !explicit2 {
			d.axis2 = appendUnique(d.axis2, v2)
		}
		b.addMeta(d.pairs, "meta_by_pair."+p.Key, v1, v2, p.Value)
	}

	if f.ModuleMapping != nil {
		for k, v := range f.ModuleMapping {
			d.modules[k] = v
		}
	} else {
		for k, v := range defaultModuleMapping {
			d.modules[k] = v
		}
	}
	b.applyWrites(f.WritesPolicy, defaultWrites)
	b.applyResearchSeeds(f.ResearchSeeds)

	return b.finish()
}

func dedupe(b *builder, field string, values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			b.problemf("%s: empty value", field)
			continue
		}
		if slices.Contains(out, v) {
			b.warnf("%s: duplicate value %q ignored", field, v)
			continue
		}
		out = append(out, v)
	}
	return out
}

// Defaults applied to the legacy shape when no mapping or policy is configured.
var (
	defaultModuleMapping = map[string]string{
		"fatigue":      "nastrij",
		"tension":      "nastrij",
		"anxiety":      "nastrij",
		"joy":          "nastrij",
		"loss":         "kazkar",
		"anticipation": "podija",
		"change":       "podija",
	}

	defaultWrites = WritesTable{
		Min:       2,
		Max:       3,
		Mandatory: []string{"calendar.time_point", "gallery.experience_snapshot"},
		OptionalByModule: map[string]string{
			"nastrij": "nastrij.state_mark",
			"kazkar":  "kazkar.memory_node",
			"podija":  "podija.future_link",
		},
	}
)
