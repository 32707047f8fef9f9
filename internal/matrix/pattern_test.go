// SPDX-License-Identifier: MIT

package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePairTemplate(t *testing.T) {
	tests := []struct {
		tpl, lang, want string
		wantErr         bool
	}{
		{tpl: "/en/{state}/{intent}", lang: "en", want: "/en/{v1}/{v2}"},
		{tpl: "/{lang}/{module}/{category}", lang: "uk", want: "/uk/{v1}/{v2}"},
		{tpl: "/{lang}/{v1}/{v2}", lang: "en", want: "/en/{v1}/{v2}"},
		{tpl: "/{state}-{category}", lang: "en", want: "/{v1}-{v2}"},
		{tpl: "/{lang}/{page}", lang: "en", wantErr: true},
	}
	for _, tt := range tests {
		got, err := normalizePairTemplate(tt.tpl, tt.lang)
		if tt.wantErr {
			assert.Error(t, err, tt.tpl)
			continue
		}
		require.NoError(t, err, tt.tpl)
		assert.Equal(t, tt.want, got)
	}
}

func TestNormalizePageTemplate(t *testing.T) {
	got, err := normalizePageTemplate("/{lang}/p/{slug}")
	require.NoError(t, err)
	assert.Equal(t, "/{lang}/p/{slug}", got)

	_, err = normalizePageTemplate("/{lang}/{state}")
	assert.Error(t, err)
}

func TestCanonicalLanguage(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		wantAliased bool
		wantErr     bool
	}{
		{in: "en", want: "en"},
		{in: "UK", want: "uk"},
		{in: "ua", want: "uk", wantAliased: true},
		{in: "en_US", want: "en-US", wantAliased: true},
		{in: "x-default", want: "x-default"},
		{in: "", wantErr: true},
		{in: "not a language", wantErr: true},
	}
	for _, tt := range tests {
		got, aliased, err := canonicalLanguage(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantAliased, aliased, tt.in)
	}
}
