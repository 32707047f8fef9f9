// SPDX-License-Identifier: MIT

// Package matrix loads the two-axis SEO content matrix and normalizes every
// supported configuration shape into one immutable Document.
//
// Three shapes are recognised:
//
//   - legacy:  seo{canonical_lang, hreflang, rules} + meta_entries (state x intent)
//   - matrix:  network_matrix{modules, traffic_categories} + patterns_49 (module x category)
//   - minimal: a bare seo block, overlaid onto the built-in seed matrix
//
// Documents are built once per process (see Holder) and never mutated.
package matrix
