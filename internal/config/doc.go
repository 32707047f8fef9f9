// SPDX-License-Identifier: MIT

// Package config loads the seomatrix process configuration.
//
// Precedence is ENV > file > defaults. The file is decoded strictly
// (unknown keys are fatal) after legacy keys have been rewritten, and the
// merged result is validated before use. The SEO matrix itself is loaded by
// internal/matrix; this package only carries its path.
package config
