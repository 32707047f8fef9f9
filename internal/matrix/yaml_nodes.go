// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

func mappingGet(m *yaml.Node, key string) (*yaml.Node, bool) {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil, false
	}
	for i := 0; i < len(m.Content)-1; i += 2 {
		k := m.Content[i]
		if k.Kind == yaml.ScalarNode && k.Value == key {
			return m.Content[i+1], true
		}
	}
	return nil, false
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

func mappingDeleteAt(m *yaml.Node, keyIdx int) {
	if m == nil || m.Kind != yaml.MappingNode {
		return
	}
	if keyIdx < 0 || keyIdx+1 >= len(m.Content) {
		return
	}
	m.Content = append(m.Content[:keyIdx], m.Content[keyIdx+2:]...)
}

func mappingSet(m *yaml.Node, key string, value *yaml.Node) {
	if m == nil || m.Kind != yaml.MappingNode {
		return
	}
	if _, idx := mappingGetCI(m, key); idx != -1 {
		m.Content[idx].Value = key
		m.Content[idx+1] = value
		return
	}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

func ensureMapping(root *yaml.Node, key string) *yaml.Node {
	if root == nil || root.Kind != yaml.MappingNode {
		return nil
	}
	if v, ok := mappingGet(root, key); ok {
		if v.Kind == yaml.MappingNode {
			return v
		}
		return nil
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	mappingSet(root, key, m)
	return m
}

// keyedNode is one key/value pair of a mapping, in document order.
type keyedNode struct {
	Key   string
	Value *yaml.Node
}

// orderedPairs returns the pairs of a mapping node in source order.
// An absent (zero) node yields no pairs; any other non-mapping kind is an error.
func orderedPairs(n *yaml.Node, field string) ([]keyedNode, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: expected a mapping (line %d)", field, n.Line)
	}
	out := make([]keyedNode, 0, len(n.Content)/2)
	for i := 0; i < len(n.Content)-1; i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s: non-scalar key (line %d)", field, k.Line)
		}
		out = append(out, keyedNode{Key: k.Value, Value: n.Content[i+1]})
	}
	return out, nil
}
