// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// axisItem is a network_matrix entry: either a bare id or {id, name, ...}.
type axisItem AxisDescriptor

func (a *axisItem) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		a.ID = strings.TrimSpace(n.Value)
		return nil
	case yaml.MappingNode:
		var raw AxisDescriptor
		if err := n.Decode(&raw); err != nil {
			return err
		}
		raw.ID = strings.TrimSpace(raw.ID)
		*a = axisItem(raw)
		return nil
	default:
		return fmt.Errorf("line %d: expected an id or an {id, name} mapping", n.Line)
	}
}

type networkMatrix struct {
	Modules           []axisItem `yaml:"modules"`
	TrafficCategories []axisItem `yaml:"traffic_categories"`
}

type matrixFile struct {
	SEO           *seoBlock         `yaml:"seo"`
	NetworkMatrix *networkMatrix    `yaml:"network_matrix"`
	Patterns      yaml.Node         `yaml:"patterns_49"`
	MetaEntries   yaml.Node         `yaml:"meta_entries"`
	ModuleMapping map[string]string `yaml:"module_mapping"`
	WritesPolicy  *writesBlock      `yaml:"writes_policy"`
	ResearchSeeds *seedsBlock       `yaml:"research_seeds"`

	// Product-level blocks are carried by the same file but do not affect routing.
	Meta              yaml.Node `yaml:"meta"`
	ProductStrategy   yaml.Node `yaml:"product_strategy"`
	Status            yaml.Node `yaml:"status"`
	ExecutionStrategy yaml.Node `yaml:"execution_strategy_next"`
}

// matrixDefaultPatterns apply when a matrix-shaped file has no seo.hreflang block.
var matrixDefaultPatterns = []keyedNode{
	{Key: "en", Value: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "/{lang}/{module}/{category}"}},
	{Key: "uk", Value: &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "/{lang}/{module}/{category}"}},
}

// cellKeys are tolerated next to title/description inside a patterns_49 cell.
var cellKeys = []string{"intent", "pages", "cta", "keywords"}

// fromMatrix converts the module x traffic-category shape.
func fromMatrix(f *matrixFile, warnings []string) (*Document, error) {
	b := newBuilder(ShapeMatrix, warnings)
	d := b.doc
	d.axis1Name, d.axis2Name = "module", "category"

	b.applySEO(f.SEO, matrixDefaultPatterns)

	if nm := f.NetworkMatrix; nm != nil {
		d.axis1, d.descriptors1 = b.axisItems("network_matrix.modules", nm.Modules)
		d.axis2, d.descriptors2 = b.axisItems("network_matrix.traffic_categories", nm.TrafficCategories)
	}
	explicit1, explicit2 := len(d.axis1) > 0, len(d.axis2) > 0

	modules, err := orderedPairs(&f.Patterns, "patterns_49")
	if err != nil {
		b.problemf("%v", err)
	}
	for _, m := range modules {
		if !explicit1 {
			d.axis1 = appendUnique(d.axis1, m.Key)
		}
		cats, err := orderedPairs(m.Value, "patterns_49."+m.Key)
		if err != nil {
			b.problemf("%v", err)
			continue
		}
		for _, c := range cats {
			if !explicit2 {
				d.axis2 = appendUnique(d.axis2, c.Key)
			}
			b.addCell(m.Key, c.Key, c.Value)
		}
	}

	entries, err := orderedPairs(&f.MetaEntries, "meta_entries")
	if err != nil {
		b.problemf("%v", err)
	}
	for _, m := range entries {
		cats, err := orderedPairs(m.Value, "meta_entries."+m.Key)
		if err != nil {
			b.problemf("%v", err)
			continue
		}
		for _, c := range cats {
			b.addMeta(d.nested, "meta_entries."+m.Key+"."+c.Key, m.Key, c.Key, c.Value)
		}
	}

	if f.ModuleMapping != nil {
		for k, v := range f.ModuleMapping {
			d.modules[k] = v
		}
	} else {
		for _, v := range d.axis1 {
			d.modules[v] = v
		}
	}
	b.applyWrites(f.WritesPolicy, WritesTable{Min: defaultWrites.Min, Max: defaultWrites.Max, Mandatory: defaultWrites.Mandatory})
	b.applyStrategy(&f.ProductStrategy, &f.Status, &f.ExecutionStrategy)
	b.applyResearchSeeds(f.ResearchSeeds)

	return b.finish()
}

func (b *builder) axisItems(field string, items []axisItem) ([]string, map[string]AxisDescriptor) {
	var out []string
	descs := map[string]AxisDescriptor{}
	for i, it := range items {
		if it.ID == "" {
			b.problemf("%s[%d]: missing id", field, i)
			continue
		}
		if slices.Contains(out, it.ID) {
			b.warnf("%s: duplicate id %q ignored", field, it.ID)
			continue
		}
		out = append(out, it.ID)
		descs[it.ID] = AxisDescriptor(it)
	}
	return out, descs
}

// addCell records intent/pages and any inline meta of one patterns_49 cell.
func (b *builder) addCell(v1, v2 string, n *yaml.Node) {
	field := "patterns_49." + v1 + "." + v2
	if n == nil || n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return
	}
	if n.Kind != yaml.MappingNode {
		b.problemf("%s: expected a mapping (line %d)", field, n.Line)
		return
	}
	var raw struct {
		Intent string   `yaml:"intent"`
		Pages  []string `yaml:"pages"`
	}
	if err := n.Decode(&raw); err != nil {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			b.problemf("%s: %s", field, strings.Join(te.Errors, "; "))
		} else {
			b.problemf("%s: %v", field, err)
		}
		return
	}
	cell := Cell{Intent: raw.Intent}
	for _, slug := range raw.Pages {
		slug = strings.Trim(strings.TrimSpace(slug), "/")
		if slug == "" {
			b.problemf("%s.pages: empty slug", field)
			continue
		}
		cell.Pages = append(cell.Pages, slug)
		b.doc.pages = append(b.doc.pages, Page{V1: v1, V2: v2, Intent: raw.Intent, Slug: slug})
	}
	if b.doc.cells[v1] == nil {
		b.doc.cells[v1] = map[string]Cell{}
	}
	b.doc.cells[v1][v2] = cell

	for _, f := range metaFields {
		if _, ok := mappingGet(n, f); ok {
			b.addMeta(b.doc.nested, field, v1, v2, n, cellKeys...)
			return
		}
	}
	// Per-language meta inside the cell: {intent, pages, en: {...}, uk: {...}}.
	langs := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i < len(n.Content)-1; i += 2 {
		if !slices.Contains(cellKeys, n.Content[i].Value) {
			langs.Content = append(langs.Content, n.Content[i], n.Content[i+1])
		}
	}
	if len(langs.Content) > 0 {
		b.addMeta(b.doc.nested, field, v1, v2, langs)
	}
}
