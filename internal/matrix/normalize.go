// SPDX-License-Identifier: MIT

package matrix

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/cimeika/seomatrix/internal/validate"
	"gopkg.in/yaml.v3"
)

// Normalize parses one YAML document in any supported shape and returns the
// canonical Document. Failures are *ConfigError values matching ErrConfigInvalid.
func Normalize(data []byte) (*Document, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}
	return normalizeNode(root)
}

func parseRoot(data []byte) (*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, emptyDocument()
		}
		return nil, invalidCause(ShapeUnknown, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, invalidf(ShapeUnknown, "multiple YAML documents are not supported")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, emptyDocument()
	}
	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, emptyDocument()
	}
	if root.Kind != yaml.MappingNode {
		return nil, invalidf(ShapeUnknown, "root must be a mapping (line %d)", root.Line)
	}
	return root, nil
}

func normalizeNode(root *yaml.Node) (*Document, error) {
	warnings, err := rewriteLegacyKeys(root)
	if err != nil {
		return nil, err
	}

	shape := detectShape(root)
	switch shape {
	case ShapeLegacy:
		var f legacyFile
		if err := decodeStrict(root, &f, shape); err != nil {
			return nil, err
		}
		return fromLegacy(&f, ShapeLegacy, warnings)
	case ShapeMatrix:
		var f matrixFile
		if err := decodeStrict(root, &f, shape); err != nil {
			return nil, err
		}
		return fromMatrix(&f, warnings)
	case ShapeMinimal:
		return fromMinimal(root, warnings)
	default:
		return nil, unrecognized("root has none of seo, meta_entries, states, network_matrix, patterns_49")
	}
}

// emptyDocument classifies a file with no YAML content (or only comments)
// like an empty mapping: it carries no recognised shape.
func emptyDocument() *ConfigError {
	return unrecognized("document is empty")
}

func unrecognized(problem string) *ConfigError {
	return &ConfigError{
		Kind:     ErrConfigInvalid,
		Shape:    ShapeUnknown,
		Problems: []string{problem},
		Cause:    ErrUnrecognizedShape,
	}
}

// decodeStrict re-encodes the rewritten node tree and decodes it with
// KnownFields so unknown keys surface as errors instead of being dropped.
func decodeStrict(root *yaml.Node, out any, shape Shape) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(root); err != nil {
		return invalidCause(shape, err)
	}
	_ = enc.Close()

	dec := yaml.NewDecoder(&buf)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			cerr := &ConfigError{Kind: ErrConfigInvalid, Shape: shape, Problems: te.Errors, Cause: err}
			for _, msg := range te.Errors {
				if strings.Contains(msg, "not found in type") {
					cerr.Cause = fmt.Errorf("%w: %w", ErrUnknownField, err)
					break
				}
			}
			return cerr
		}
		return invalidCause(shape, err)
	}
	return nil
}

// maxRuleLength bounds configured length limits; meta text is never paginated.
const maxRuleLength = 1000

// finish validates the assembled document and freezes it.
func (b *builder) finish() (*Document, error) {
	d := b.doc
	v := validate.New()

	v.NonEmptyList("axis1", d.axis1)
	v.NonEmptyList("axis2", d.axis2)
	for _, a := range []struct {
		field  string
		values []string
	}{{"axis1", d.axis1}, {"axis2", d.axis2}} {
		v.Unique(a.field, a.values)
		for _, val := range a.values {
			if strings.ContainsAny(val, "/:{}") {
				v.AddError(a.field, fmt.Sprintf("value %q must not contain '/', ':' or braces", val), val)
			}
		}
	}

	v.NonEmptyList("seo.languages", d.languages)
	if _, ok := d.patterns[d.canonicalLang]; !ok {
		v.AddError("seo.hreflang", fmt.Sprintf("missing pattern for canonical language %q", d.canonicalLang), d.canonicalLang)
	}
	for _, lang := range d.languages {
		tpl, ok := d.patterns[lang]
		if !ok {
			if lang != d.canonicalLang {
				v.AddError("seo.hreflang", fmt.Sprintf("missing pattern for language %q", lang), lang)
			}
			continue
		}
		v.Contains("seo.hreflang."+lang, tpl, PlaceholderV1, PlaceholderV2)
	}
	if d.xDefault != "" {
		v.Contains("seo.hreflang."+XDefault, d.xDefault, PlaceholderV1, PlaceholderV2)
	}
	v.Contains("seo.page_pattern", d.pagePattern, PlaceholderSlug)

	v.Range("seo.rules.title_max", d.rules.TitleMax, 1, maxRuleLength)
	v.Range("seo.rules.description_max", d.rules.DescriptionMax, 1, maxRuleLength)

	v.NonNegative("writes_policy.min", d.writes.Min)
	if d.writes.Max < d.writes.Min {
		v.AddError("writes_policy.max", fmt.Sprintf("max %d is below min %d", d.writes.Max, d.writes.Min), d.writes.Max)
	}
	for _, v1 := range slices.Sorted(maps.Keys(d.modules)) {
		if mod := d.modules[v1]; mod == "" {
			v.AddError("module_mapping."+v1, "module id cannot be empty", mod)
		}
	}

	if len(b.problems) == 0 && v.IsValid() {
		d.index()
		return d, nil
	}
	cerr := fromValidation(d.shape, v.Err())
	cerr.Problems = append(append([]string(nil), b.problems...), cerr.Problems...)
	if cerr.Cause == nil {
		cerr.Cause = errors.New(strings.Join(cerr.Problems, "; "))
	}
	return nil, cerr
}
