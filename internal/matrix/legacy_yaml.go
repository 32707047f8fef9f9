// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// rewriteLegacyKeys applies backward-compatible key mappings on the raw node
// tree so that each shape can be decoded strictly afterwards.
func rewriteLegacyKeys(root *yaml.Node) ([]string, error) {
	var warnings []string

	// Root-level aliases that belong in the seo block.
	moveInto(root, &warnings, "hreflang_patterns", "seo", "hreflang")
	moveInto(root, &warnings, "hreflang", "seo", "hreflang")
	moveInto(root, &warnings, "canonical_lang", "seo", "canonical_lang")
	moveInto(root, &warnings, "canonicalLang", "seo", "canonical_lang")
	moveInto(root, &warnings, "rules", "seo", "rules")
	moveInto(root, &warnings, "languages", "seo", "languages")

	renameKey(root, &warnings, "patterns", "patterns_49")
	renameKey(root, &warnings, "metaEntries", "meta_entries")
	renameKey(root, &warnings, "metaByPair", "meta_by_pair")
	renameKey(root, &warnings, "moduleMapping", "module_mapping")
	renameKey(root, &warnings, "module_map", "module_mapping")
	renameKey(root, &warnings, "writesPolicy", "writes_policy")
	renameKey(root, &warnings, "writes", "writes_policy")
	renameKey(root, &warnings, "networkMatrix", "network_matrix")

	if seo, _ := mappingGet(root, "seo"); seo != nil && seo.Kind == yaml.MappingNode {
		renameKey(seo, &warnings, "canonicalLang", "canonical_lang")
		renameKey(seo, &warnings, "hreflang_patterns", "hreflang")
		renameKey(seo, &warnings, "hreflangPatterns", "hreflang")
		renameKey(seo, &warnings, "pagePattern", "page_pattern")
		if rules, _ := mappingGet(seo, "rules"); rules != nil && rules.Kind == yaml.MappingNode {
			renameKey(rules, &warnings, "titleMax", "title_max")
			renameKey(rules, &warnings, "descriptionMax", "description_max")
			renameKey(rules, &warnings, "desc_max", "description_max")
		}
	}

	if nm, _ := mappingGet(root, "network_matrix"); nm != nil && nm.Kind == yaml.MappingNode {
		renameKey(nm, &warnings, "categories", "traffic_categories")
		renameKey(nm, &warnings, "trafficCategories", "traffic_categories")
	}

	if wp, _ := mappingGet(root, "writes_policy"); wp != nil && wp.Kind == yaml.MappingNode {
		renameKey(wp, &warnings, "optionalByModule", "optional_by_module")
		renameKey(wp, &warnings, "optional", "optional_by_module")
	}

	// Legacy: matrix: [{state, intent, en: {...}, uk: {...}}] -> meta_entries
	if list, idx := mappingGetCI(root, "matrix"); list != nil {
		if _, exists := mappingGet(root, "meta_entries"); exists {
			mappingDeleteAt(root, idx)
			warnings = append(warnings, "ignored legacy key 'matrix' (meta_entries already configured)")
		} else {
			entries, err := matrixListToMetaEntries(list)
			if err != nil {
				return warnings, err
			}
			mappingDeleteAt(root, idx)
			mappingSet(root, "meta_entries", entries)
			warnings = append(warnings, "migrated legacy key 'matrix' → 'meta_entries'")
		}
	}

	return warnings, nil
}

// moveInto relocates root[from] to root[parent][to] unless the target is already set.
func moveInto(root *yaml.Node, warnings *[]string, from, parent, to string) {
	val, _ := mappingGetCI(root, from)
	if val == nil {
		return
	}
	target := ensureMapping(root, parent)
	if target == nil {
		return
	}
	if _, exists := mappingGet(target, to); exists {
		*warnings = append(*warnings, fmt.Sprintf("ignored legacy key %q (%s.%s already configured)", from, parent, to))
	} else {
		mappingSet(target, to, val)
		*warnings = append(*warnings, fmt.Sprintf("migrated legacy key %q → %q", from, parent+"."+to))
	}
	// ensureMapping may have appended the parent, so look the key up again.
	_, idx := mappingGetCI(root, from)
	mappingDeleteAt(root, idx)
}

func renameKey(m *yaml.Node, warnings *[]string, from, to string) {
	if m == nil || m.Kind != yaml.MappingNode || from == to {
		return
	}
	val, idx := mappingGetCI(m, from)
	if val == nil || m.Content[idx].Value == to {
		return
	}
	if _, exists := mappingGet(m, to); exists {
		mappingDeleteAt(m, idx)
		*warnings = append(*warnings, fmt.Sprintf("ignored legacy key %q (%q already configured)", from, to))
		return
	}
	m.Content[idx].Value = to
	*warnings = append(*warnings, fmt.Sprintf("renamed legacy key %q → %q", from, to))
}

// matrixListToMetaEntries converts the list form
//
//	matrix:
//	  - {state: fatigue, intent: understand, en: {title, description}}
//
// into the nested meta_entries mapping, preserving first-seen order.
func matrixListToMetaEntries(list *yaml.Node) (*yaml.Node, error) {
	if list.Kind != yaml.SequenceNode {
		return nil, invalidf(ShapeLegacy, "matrix: expected a list (line %d)", list.Line)
	}
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i, item := range list.Content {
		if item.Kind != yaml.MappingNode {
			return nil, invalidf(ShapeLegacy, "matrix[%d]: expected a mapping", i)
		}
		stateNode, _ := mappingGet(item, "state")
		intentNode, _ := mappingGet(item, "intent")
		if stateNode == nil || intentNode == nil || stateNode.Value == "" || intentNode.Value == "" {
			return nil, invalidf(ShapeLegacy, "matrix[%d]: state and intent are required", i)
		}
		langs := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for j := 0; j < len(item.Content)-1; j += 2 {
			switch item.Content[j].Value {
			case "state", "intent":
				continue
			}
			langs.Content = append(langs.Content, item.Content[j], item.Content[j+1])
		}
		byState := ensureMapping(out, stateNode.Value)
		if byState == nil {
			return nil, invalidf(ShapeLegacy, "matrix[%d]: conflicting state %q", i, stateNode.Value)
		}
		mappingSet(byState, intentNode.Value, langs)
	}
	return out, nil
}
