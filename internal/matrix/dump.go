// SPDX-License-Identifier: MIT

package matrix

import (
	"maps"

	"gopkg.in/yaml.v3"
)

// Snapshot is the exported, serialisable view of a Document.
type Snapshot struct {
	Shape         Shape                                     `yaml:"shape"`
	Source        Source                                    `yaml:"source"`
	AxisNames     [2]string                                 `yaml:"axis_names,flow"`
	Axis1         []string                                  `yaml:"axis1"`
	Axis2         []string                                  `yaml:"axis2"`
	Descriptors1  map[string]AxisDescriptor                 `yaml:"descriptors1,omitempty"`
	Descriptors2  map[string]AxisDescriptor                 `yaml:"descriptors2,omitempty"`
	Languages     []string                                  `yaml:"languages"`
	CanonicalLang string                                    `yaml:"canonical_lang"`
	Patterns      map[string]string                         `yaml:"patterns"`
	XDefault      string                                    `yaml:"x_default,omitempty"`
	PagePattern   string                                    `yaml:"page_pattern"`
	Rules         Rules                                     `yaml:"rules"`
	Meta          map[string]map[string]map[string]MetaText `yaml:"meta,omitempty"`
	MetaByPair    map[string]map[string]map[string]MetaText `yaml:"meta_by_pair,omitempty"`
	Cells         map[string]map[string]Cell                `yaml:"cells,omitempty"`
	Pages         []Page                                    `yaml:"pages,omitempty"`
	Modules       map[string]string                         `yaml:"modules"`
	Writes        WritesTable                               `yaml:"writes_policy"`
	Strategy      *Strategy                                 `yaml:"strategy,omitempty"`
	ResearchSeeds *ResearchSeeds                            `yaml:"research_seeds,omitempty"`
	Warnings      []string                                  `yaml:"warnings,omitempty"`
}

// Snapshot returns a deep copy of the document's normalized state.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		Shape:         d.shape,
		Source:        d.source,
		AxisNames:     [2]string{d.axis1Name, d.axis2Name},
		Axis1:         d.Axis1(),
		Axis2:         d.Axis2(),
		Descriptors1:  maps.Clone(d.descriptors1),
		Descriptors2:  maps.Clone(d.descriptors2),
		Languages:     d.Languages(),
		CanonicalLang: d.canonicalLang,
		Patterns:      d.Patterns(),
		XDefault:      d.xDefault,
		PagePattern:   d.pagePattern,
		Rules:         d.rules,
		Meta:          d.nested.clone(),
		MetaByPair:    d.pairs.clone(),
		Cells:         d.cloneCells(),
		Pages:         d.Pages(),
		Modules:       maps.Clone(d.modules),
		Writes:        d.Writes(),
		Warnings:      d.Warnings(),
	}
	if st := d.Strategy(); !st.empty() {
		s.Strategy = &st
	}
	if !d.seeds.Empty() {
		seeds := d.ResearchSeeds()
		s.ResearchSeeds = &seeds
	}
	return s
}

// Dump renders the snapshot as YAML. Map keys are emitted sorted, so two
// documents built from the same input dump byte-identically.
func (d *Document) Dump() ([]byte, error) {
	return yaml.Marshal(d.Snapshot())
}

func (m metaIndex) clone() map[string]map[string]map[string]MetaText {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]map[string]map[string]MetaText, len(m))
	for lang, byV1 := range m {
		out[lang] = make(map[string]map[string]MetaText, len(byV1))
		for v1, byV2 := range byV1 {
			out[lang][v1] = maps.Clone(byV2)
		}
	}
	return out
}

func (d *Document) cloneCells() map[string]map[string]Cell {
	if len(d.cells) == 0 {
		return nil
	}
	out := make(map[string]map[string]Cell, len(d.cells))
	for v1 := range d.cells {
		out[v1] = map[string]Cell{}
		for v2 := range d.cells[v1] {
			out[v1][v2], _ = d.Cell(v1, v2)
		}
	}
	return out
}
