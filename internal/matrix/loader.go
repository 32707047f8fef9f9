// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	seolog "github.com/cimeika/seomatrix/internal/log"
)

// EnvDataDir names an extra directory searched for seo_matrix.yaml.
const EnvDataDir = "SEOMATRIX_DATA"

// FileName is the default matrix file name.
const FileName = "seo_matrix.yaml"

// Options controls where Load looks for the matrix file.
type Options struct {
	// Path is an explicit file. When set, a missing file is fatal.
	Path string
	// SearchPaths are tried in order when Path is empty. Nil means DefaultSearchPaths.
	SearchPaths []string
}

// DefaultSearchPaths returns the implicit lookup locations in priority order.
func DefaultSearchPaths() []string {
	paths := []string{
		FileName,
		filepath.Join("config", FileName),
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		paths = append(paths, filepath.Join(dir, FileName))
	}
	return paths
}

// LoadFile loads and normalizes an explicit matrix file.
func LoadFile(path string) (*Document, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, &ConfigError{Kind: ErrConfigInvalid, Path: path,
			Problems: []string{fmt.Sprintf("unsupported config format %q (only YAML supported)", ext)}}
	}

	// #nosec G304 -- matrix file paths are provided by the operator via CLI/ENV
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Kind: ErrConfigNotFound, Path: path, Cause: err}
		}
		return nil, &ConfigError{Kind: ErrConfigInvalid, Path: path, Cause: fmt.Errorf("read file: %w", err)}
	}

	doc, err := Normalize(data)
	if err != nil {
		return nil, withPath(err, path)
	}
	doc.source = Source{Path: path}
	if doc.seeds.Empty() {
		if err := doc.attachSeedsFile(filepath.Join(filepath.Dir(path), ResearchSeedsFileName)); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// attachSeedsFile reads research seeds from a file next to the matrix.
// A missing or empty file leaves the document without seeds.
func (d *Document) attachSeedsFile(path string) error {
	// #nosec G304 -- derived from the operator-provided matrix path
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ConfigError{Kind: ErrConfigInvalid, Path: path, Cause: fmt.Errorf("read file: %w", err)}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return withPath(invalidCause(ShapeUnknown, err), path)
	}
	if root.Kind == 0 || len(root.Content) == 0 || root.Content[0].Tag == "!!null" {
		return nil
	}
	var block seedsBlock
	if err := decodeStrict(&root, &block, ShapeUnknown); err != nil {
		return withPath(err, path)
	}
	seeds, warnings, problems := normalizeResearchSeeds(&block, d.axis1)
	if len(problems) > 0 {
		return &ConfigError{Kind: ErrConfigInvalid, Path: path, Problems: problems}
	}
	d.seeds = seeds
	for _, w := range warnings {
		d.warnings = append(d.warnings, ResearchSeedsFileName+": "+w)
	}
	return nil
}

// Load resolves the matrix document. An explicit Path must exist and be valid.
// Without one, the first existing search path is used; when none exists, or the
// file found carries none of the recognised root keys, the built-in seed is returned.
func Load(opts Options) (*Document, error) {
	logger := seolog.WithComponent("matrix")

	if opts.Path != "" {
		doc, err := LoadFile(opts.Path)
		if err != nil {
			return nil, err
		}
		logLoaded(doc)
		return doc, nil
	}

	search := opts.SearchPaths
	if search == nil {
		search = DefaultSearchPaths()
	}
	for _, p := range search {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		doc, err := LoadFile(p)
		if errors.Is(err, ErrUnrecognizedShape) {
			logger.Warn().
				Str(seolog.FieldEvent, "matrix.seed_fallback").
				Str(seolog.FieldPath, p).
				Err(err).
				Msg("matrix file has no recognised shape, using built-in seed")
			return seedDocument(), nil
		}
		if err != nil {
			return nil, err
		}
		logLoaded(doc)
		return doc, nil
	}

	logger.Warn().
		Str(seolog.FieldEvent, "matrix.seed_fallback").
		Strs("searched", search).
		Msg("no matrix file found, using built-in seed")
	return seedDocument(), nil
}

func seedDocument() *Document {
	doc := Seed()
	logLoaded(doc)
	return doc
}

func logLoaded(doc *Document) {
	logger := seolog.WithComponent("matrix")
	src := doc.source.Path
	if doc.source.Seed {
		src = "seed"
	}
	for _, w := range doc.warnings {
		logger.Warn().
			Str(seolog.FieldEvent, "matrix.warning").
			Str(seolog.FieldSource, src).
			Msg(w)
	}
	logger.Info().
		Str(seolog.FieldEvent, "matrix.loaded").
		Str(seolog.FieldSource, src).
		Stringer(seolog.FieldShape, doc.shape).
		Int(seolog.FieldAxis1, len(doc.axis1)).
		Int(seolog.FieldAxis2, len(doc.axis2)).
		Strs("languages", doc.languages).
		Int(seolog.FieldWarnings, len(doc.warnings)).
		Msg("seo matrix loaded")
}
