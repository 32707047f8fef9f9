// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cimeika/seomatrix/internal/config"
	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/seo"
	"github.com/cimeika/seomatrix/internal/sitemap"
	"github.com/cimeika/seomatrix/internal/version"
	"github.com/google/renameio/v2"
)

func runExport(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("out", "", "directory receiving sitemap.xml and robots.txt")
	configPath := fs.String("config", "", "path to process config file (YAML)")
	matrixPath := fs.String("matrix", "", "seo matrix file, overrides the configured one")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *out == "" {
		fmt.Fprintln(stderr, "Error: --out is required")
		usage(stderr)
		return 2
	}

	cfg, err := config.NewLoader(*configPath, version.Version).Load()
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}
	if *matrixPath != "" {
		cfg.MatrixPath = *matrixPath
	}

	doc, err := matrix.Load(matrixOptions(cfg.MatrixPath))
	if err != nil {
		fmt.Fprintf(stderr, "Matrix error: %v\n", err)
		return 1
	}

	n, err := export(*out, cfg, doc)
	if err != nil {
		fmt.Fprintf(stderr, "Export failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d sitemap entries to %s\n", n, *out)
	return 0
}

// export writes sitemap.xml and robots.txt atomically into dir.
func export(dir string, cfg config.AppConfig, doc *matrix.Document) (int, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, fmt.Errorf("create %s: %w", dir, err)
	}

	gen := sitemap.NewGenerator(seo.NewResolver(doc))
	entries := gen.Entries(cfg.BaseURL)
	data, err := gen.XML(cfg.BaseURL)
	if err != nil {
		return 0, fmt.Errorf("render sitemap: %w", err)
	}

	if err := renameio.WriteFile(filepath.Join(dir, "sitemap.xml"), data, 0o644); err != nil {
		return 0, fmt.Errorf("write sitemap.xml: %w", err)
	}
	robots := []byte(sitemap.RobotsTxt(cfg.SitemapURL()))
	if err := renameio.WriteFile(filepath.Join(dir, "robots.txt"), robots, 0o644); err != nil {
		return 0, fmt.Errorf("write robots.txt: %w", err)
	}
	return len(entries), nil
}
