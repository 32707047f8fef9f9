// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/cimeika/seomatrix/internal/seo"
)

func runValidate(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var file string
	fs.StringVar(&file, "file", "", "path to the seo matrix YAML file")
	fs.StringVar(&file, "f", "", "path to the seo matrix YAML file (shorthand)")
	strict := fs.Bool("strict", false, "fail when coverage is incomplete or meta exceeds length rules")
	dump := fs.Bool("dump", false, "print the normalized document as YAML")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		fmt.Fprintln(stderr, "")
		usage(stderr)
		return 2
	}

	doc, err := matrix.LoadFile(file)
	if err != nil {
		fmt.Fprintf(stderr, "Matrix error in %s:\n", file)
		var cerr *matrix.ConfigError
		if errors.As(err, &cerr) && len(cerr.Problems) > 0 {
			for _, p := range cerr.Problems {
				fmt.Fprintf(stderr, "  - %s\n", p)
			}
		} else {
			fmt.Fprintf(stderr, "  %v\n", err)
		}
		return 1
	}

	for _, w := range doc.Warnings() {
		fmt.Fprintf(stdout, "warning: %s\n", w)
	}

	cov := seo.NewResolver(doc).Coverage()
	fmt.Fprintf(stdout, "shape: %s, %d x %d cells\n", doc.Shape(), cov.Axis1, cov.Axis2)
	for _, lc := range cov.Languages {
		fmt.Fprintf(stdout, "  %s: %d/%d resolved, %d over limit\n", lc.Lang, lc.Resolved, lc.Expected, lc.OverLimit)
	}

	if *strict {
		failed := false
		for _, lc := range cov.Languages {
			if !lc.Complete() {
				fmt.Fprintf(stderr, "%s is incomplete for %s: %d of %d cells without meta\n",
					file, lc.Lang, lc.Expected-lc.Resolved, lc.Expected)
				failed = true
			}
			if lc.OverLimit > 0 {
				fmt.Fprintf(stderr, "%s has %d cells over the length rules for %s\n", file, lc.OverLimit, lc.Lang)
				failed = true
			}
		}
		if failed {
			return 1
		}
	}

	if *dump {
		out, err := doc.Dump()
		if err != nil {
			fmt.Fprintf(stderr, "dump failed: %v\n", err)
			return 1
		}
		_, _ = stdout.Write(out)
	}

	fmt.Fprintf(stdout, "✓ %s is valid\n", file)
	return 0
}
