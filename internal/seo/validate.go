// SPDX-License-Identifier: MIT

package seo

import (
	"unicode/utf8"

	"github.com/cimeika/seomatrix/internal/matrix"
)

// FieldCheck is the advisory length check of one meta field.
type FieldCheck struct {
	Value  string `json:"value"`
	Length int    `json:"length"`
	Max    int    `json:"max"`
	Valid  bool   `json:"valid"`
}

// ValidationResult reports title and description checks. It never blocks URL
// or sitemap generation.
type ValidationResult struct {
	Title       FieldCheck `json:"title"`
	Description FieldCheck `json:"description"`
}

// Valid is true when both fields are within limits.
func (v ValidationResult) Valid() bool {
	return v.Title.Valid && v.Description.Valid
}

// Validate checks title and description against rules. Lengths are counted in
// Unicode code points, so Cyrillic text is measured the same as Latin.
func Validate(rules matrix.Rules, title, description string) ValidationResult {
	return ValidationResult{
		Title:       check(title, rules.TitleMax),
		Description: check(description, rules.DescriptionMax),
	}
}

func check(value string, limit int) FieldCheck {
	n := utf8.RuneCountInString(value)
	return FieldCheck{Value: value, Length: n, Max: limit, Valid: n <= limit}
}
