// SPDX-License-Identifier: MIT

// seomatrix serves and exports SEO metadata resolved from the two-axis matrix.
//
// Usage:
//
//	seomatrix [serve] [-config config.yaml]
//	seomatrix validate -f seo_matrix.yaml [-strict] [-dump]
//	seomatrix export -out dir [-config config.yaml] [-matrix seo_matrix.yaml]
//
// Exit codes for validate and export:
//   - 0: success
//   - 1: invalid matrix or failed write
//   - 2: usage error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/cimeika/seomatrix/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := "serve"
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		return runServe(args, stderr)
	case "validate":
		return runValidate(args, stdout, stderr)
	case "export":
		return runExport(args, stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, version.String())
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", cmd)
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  seomatrix [serve] [-config config.yaml]")
	fmt.Fprintln(w, "  seomatrix validate -f seo_matrix.yaml [-strict] [-dump]")
	fmt.Fprintln(w, "  seomatrix export -out dir [-config config.yaml] [-matrix seo_matrix.yaml]")
	fmt.Fprintln(w, "  seomatrix version")
}
