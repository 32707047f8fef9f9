// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// legacyRenames maps older root keys to their current names.
var legacyRenames = []struct{ from, to string }{
	{"listen", "listenAddr"},
	{"addr", "listenAddr"},
	{"base_url", "baseUrl"},
	{"matrix", "matrixPath"},
	{"matrix_path", "matrixPath"},
	{"log_level", "logLevel"},
	{"og_image", "ogImage"},
	{"rate_limit", "rateLimit"},
}

// normalizeLegacyYAML applies backward-compatible key mappings to config.yaml.
// It returns YAML bytes that can be decoded with KnownFields(true).
func normalizeLegacyYAML(data []byte) ([]byte, []string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse YAML: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return data, nil, nil
	}
	root := doc.Content[0]

	var warnings []string
	for _, r := range legacyRenames {
		migrateKey(root, &warnings, r.from, r.to)
	}
	// Legacy: metrics: true → metrics: {enabled: true}
	if v, idx := mappingGetCI(root, "metrics"); v != nil && v.Kind == yaml.ScalarNode {
		root.Content[idx+1] = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: "enabled"},
			v,
		}}
		warnings = append(warnings, "migrated legacy scalar 'metrics' → 'metrics.enabled'")
	}
	if len(warnings) == 0 {
		return data, nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, nil, fmt.Errorf("encode YAML: %w", err)
	}
	_ = enc.Close()
	return buf.Bytes(), warnings, nil
}

// migrateKey renames from to to. When both are present the legacy key is
// dropped and the current one wins.
func migrateKey(m *yaml.Node, warnings *[]string, from, to string) {
	val, idx := mappingGetCI(m, from)
	if val == nil || m.Content[idx].Value == to {
		return
	}
	if strings.EqualFold(from, to) {
		m.Content[idx].Value = to
		*warnings = append(*warnings, fmt.Sprintf("renamed key %q → %q", from, to))
		return
	}
	if _, exists := mappingGetCI(m, to); exists != -1 {
		m.Content = append(m.Content[:idx], m.Content[idx+2:]...)
		*warnings = append(*warnings, fmt.Sprintf("ignored legacy key %q (%q already configured)", from, to))
		return
	}
	m.Content[idx].Value = to
	*warnings = append(*warnings, fmt.Sprintf("migrated legacy key %q → %q", from, to))
}

func mappingGetCI(m *yaml.Node, key string) (*yaml.Node, int) {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil, -1
	}
	for i := 0; i < len(m.Content)-1; i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && strings.EqualFold(k.Value, key) {
			return m.Content[i+1], i
		}
	}
	return nil, -1
}
