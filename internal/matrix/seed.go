// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Seed axes, in routing order.
var (
	SeedStates  = []string{"fatigue", "tension", "anxiety", "joy", "loss", "anticipation", "change"}
	SeedIntents = []string{"understand", "capture", "calm", "check", "preserve", "connect", "prepare"}
)

type phrase struct {
	title       string
	description string
}

var enPhrases = map[string]phrase{
	"understand": {"Understand your %s", "Clarify %s."},
	"capture":    {"Capture your %s", "Note %s as it happens."},
	"calm":       {"Calm your %s", "Soften %s."},
	"check":      {"Check your %s", "Check in on %s."},
	"preserve":   {"Preserve your %s", "Keep a trace of %s."},
	"connect":    {"Share your %s", "Share %s with close people."},
	"prepare":    {"Prepare for %s", "Get ready for %s."},
}

// ukPhrases take the accusative form, except prepare which takes the genitive.
var ukPhrases = map[string]phrase{
	"understand": {"Зрозуміти %s", "Прояснити %s."},
	"capture":    {"Зафіксувати %s", "Зафіксувати %s у моменті."},
	"calm":       {"Заспокоїти %s", "Пом'якшити %s."},
	"check":      {"Перевірити %s", "Перевірити стан: %s."},
	"preserve":   {"Зберегти %s", "Зберегти слід про %s."},
	"connect":    {"Розділити %s", "Розділити %s з близькими."},
	"prepare":    {"Підготуватися до %s", "Підготуватися до %s заздалегідь."},
}

var (
	ukAccusative = map[string]string{
		"fatigue": "втому", "tension": "напругу", "anxiety": "тривогу", "joy": "радість",
		"loss": "втрату", "anticipation": "очікування", "change": "зміни",
	}
	ukGenitive = map[string]string{
		"fatigue": "втоми", "tension": "напруги", "anxiety": "тривоги", "joy": "радості",
		"loss": "втрати", "anticipation": "очікування", "change": "змін",
	}
)

const (
	enSuffix = " One step, clear result."
	ukSuffix = " Один крок, зрозумілий результат."
)

type seedSEO struct {
	CanonicalLang string            `yaml:"canonical_lang"`
	Hreflang      map[string]string `yaml:"hreflang"`
	Rules         Rules             `yaml:"rules"`
}

type seedFile struct {
	SEO           seedSEO                                   `yaml:"seo"`
	States        []string                                  `yaml:"states"`
	Intents       []string                                  `yaml:"intents"`
	MetaEntries   map[string]map[string]map[string]MetaText `yaml:"meta_entries"`
	ModuleMapping map[string]string                         `yaml:"module_mapping"`
	WritesPolicy  WritesTable                               `yaml:"writes_policy"`
}

func seedMeta(state, intent string) map[string]MetaText {
	en := enPhrases[intent]
	uk := ukPhrases[intent]
	ukWord := ukAccusative[state]
	if intent == "prepare" {
		ukWord = ukGenitive[state]
	}
	return map[string]MetaText{
		"en": {
			Title:       fmt.Sprintf(en.title, state),
			Description: fmt.Sprintf(en.description, state) + enSuffix,
		},
		"uk": {
			Title:       fmt.Sprintf(uk.title, ukWord),
			Description: fmt.Sprintf(uk.description, ukWord) + ukSuffix,
		},
	}
}

// SeedYAML renders the built-in matrix in the legacy shape.
func SeedYAML() []byte {
	seedOnce.Do(buildSeed)
	return seedBytes
}

var (
	seedOnce  sync.Once
	seedBytes []byte
)

func buildSeed() {
	f := seedFile{
		SEO: seedSEO{
			CanonicalLang: DefaultCanonicalLang,
			Hreflang: map[string]string{
				"en": "/en/{state}/{intent}",
				"uk": "/uk/{state}/{intent}",
			},
			Rules: Rules{TitleMax: DefaultTitleMax, DescriptionMax: DefaultDescriptionMax},
		},
		States:        SeedStates,
		Intents:       SeedIntents,
		MetaEntries:   map[string]map[string]map[string]MetaText{},
		ModuleMapping: defaultModuleMapping,
		WritesPolicy:  defaultWrites,
	}
	for _, s := range SeedStates {
		f.MetaEntries[s] = map[string]map[string]MetaText{}
		for _, i := range SeedIntents {
			f.MetaEntries[s][i] = seedMeta(s, i)
		}
	}
	out, err := yaml.Marshal(f)
	if err != nil {
		panic(fmt.Sprintf("matrix: marshal seed: %v", err))
	}
	seedBytes = out
}

// Seed returns the built-in default matrix: 7 states x 7 intents in en and uk.
func Seed() *Document {
	d, err := Normalize(SeedYAML())
	if err != nil {
		panic(fmt.Sprintf("matrix: built-in seed is invalid: %v", err))
	}
	d.source = Source{Seed: true}
	return d
}

type minimalFile struct {
	SEO *seoBlock `yaml:"seo"`
}

// fromMinimal overlays a bare seo block onto the seed matrix. hreflang and
// languages replace the seed's values; rules merge key by key.
func fromMinimal(root *yaml.Node, warnings []string) (*Document, error) {
	var f minimalFile
	if err := decodeStrict(root, &f, ShapeMinimal); err != nil {
		return nil, err
	}
	seedRoot, err := parseRoot(SeedYAML())
	if err != nil {
		return nil, err
	}
	seedSEONode, _ := mappingGet(seedRoot, "seo")
	overlay, _ := mappingGet(root, "seo")
	if overlay != nil && overlay.Kind == yaml.MappingNode {
		for i := 0; i < len(overlay.Content)-1; i += 2 {
			key, val := overlay.Content[i].Value, overlay.Content[i+1]
			if key == "rules" && val.Kind == yaml.MappingNode {
				rules := ensureMapping(seedSEONode, "rules")
				for j := 0; j < len(val.Content)-1; j += 2 {
					mappingSet(rules, val.Content[j].Value, val.Content[j+1])
				}
				continue
			}
			mappingSet(seedSEONode, key, val)
		}
	}

	var lf legacyFile
	if err := decodeStrict(seedRoot, &lf, ShapeMinimal); err != nil {
		return nil, err
	}
	return fromLegacy(&lf, ShapeMinimal, warnings)
}
