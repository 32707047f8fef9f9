// SPDX-License-Identifier: MIT

package matrix

import "gopkg.in/yaml.v3"

// Shape identifies which configuration schema a document was written in.
type Shape int

const (
	ShapeUnknown Shape = iota
	ShapeLegacy
	ShapeMatrix
	ShapeMinimal
)

func (s Shape) String() string {
	switch s {
	case ShapeLegacy:
		return "legacy"
	case ShapeMatrix:
		return "matrix"
	case ShapeMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// MarshalYAML renders the shape by name.
func (s Shape) MarshalYAML() (any, error) {
	return s.String(), nil
}

var (
	matrixKeys = []string{"network_matrix", "patterns_49"}
	legacyKeys = []string{"meta_entries", "meta_by_pair", "states", "intents"}
)

// detectShape classifies a rewritten root mapping by its characteristic keys.
// The matrix shape wins over legacy because matrix files may also carry meta_entries.
func detectShape(root *yaml.Node) Shape {
	has := func(keys []string) bool {
		for _, k := range keys {
			if _, ok := mappingGet(root, k); ok {
				return true
			}
		}
		return false
	}
	switch {
	case has(matrixKeys):
		return ShapeMatrix
	case has(legacyKeys):
		return ShapeLegacy
	case has([]string{"seo"}):
		return ShapeMinimal
	default:
		return ShapeUnknown
	}
}
