// SPDX-License-Identifier: MIT

package seo

// LanguageCoverage counts resolvable cells for one language.
type LanguageCoverage struct {
	Lang     string   `json:"lang"`
	Resolved int      `json:"resolved"`
	Expected int      `json:"expected"`
	Missing  []string `json:"missing,omitempty"` // "v1/v2"
	// OverLimit counts resolved cells whose title or description exceeds the rules.
	OverLimit int `json:"over_limit"`
}

// Complete is true when every cell resolves.
func (c LanguageCoverage) Complete() bool { return c.Resolved == c.Expected }

// Coverage is the per-language completeness report of the matrix.
type Coverage struct {
	Axis1     int                `json:"axis1"`
	Axis2     int                `json:"axis2"`
	Languages []LanguageCoverage `json:"languages"`
}

// Complete is true when every language is complete.
func (c Coverage) Complete() bool {
	for _, l := range c.Languages {
		if !l.Complete() {
			return false
		}
	}
	return true
}

// Coverage reports, per language, how many cells resolve to meta.
func (r *Resolver) Coverage() Coverage {
	axis1, axis2 := r.doc.Axis1(), r.doc.Axis2()
	cov := Coverage{Axis1: len(axis1), Axis2: len(axis2)}
	for _, lang := range r.doc.Languages() {
		lc := LanguageCoverage{Lang: lang, Expected: len(axis1) * len(axis2)}
		for _, v1 := range axis1 {
			for _, v2 := range axis2 {
				meta, ok := r.Meta(lang, v1, v2)
				if !ok {
					lc.Missing = append(lc.Missing, v1+"/"+v2)
					continue
				}
				lc.Resolved++
				if !r.Validate(meta.Title, meta.Description).Valid() {
					lc.OverLimit++
				}
			}
		}
		cov.Languages = append(cov.Languages, lc)
	}
	return cov
}
