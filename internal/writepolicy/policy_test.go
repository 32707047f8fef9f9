// SPDX-License-Identifier: MIT

package writepolicy

import (
	"testing"

	"github.com/cimeika/seomatrix/internal/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleFor_Seed(t *testing.T) {
	r := NewResolver(matrix.Seed())

	tests := map[string]string{
		"fatigue":      "nastrij",
		"tension":      "nastrij",
		"anxiety":      "nastrij",
		"joy":          "nastrij",
		"loss":         "kazkar",
		"anticipation": "podija",
		"change":       "podija",
	}
	for v1, want := range tests {
		got, ok := r.ModuleFor(v1)
		require.True(t, ok, v1)
		assert.Equal(t, want, got, v1)
	}

	_, ok := r.ModuleFor("boredom")
	assert.False(t, ok)
	assert.Equal(t, []string{"nastrij", "kazkar", "podija"}, r.Modules())
}

func TestPolicy(t *testing.T) {
	r := NewResolver(matrix.Seed())

	p := r.Policy("kazkar")
	assert.Equal(t, Policy{
		Min:       2,
		Max:       3,
		Mandatory: []string{"calendar.time_point", "gallery.experience_snapshot"},
		Optional:  "kazkar.memory_node",
	}, p)

	base := r.Policy("")
	assert.Empty(t, base.Optional)
	assert.Equal(t, p.Mandatory, base.Mandatory)

	assert.Empty(t, r.Policy("unknown").Optional)

	// Callers cannot mutate the shared table.
	p.Mandatory[0] = "mutated"
	assert.Equal(t, "calendar.time_point", r.Policy("kazkar").Mandatory[0])

	module, p := r.PolicyFor("change")
	assert.Equal(t, "podija", module)
	assert.Equal(t, "podija.future_link", p.Optional)
}

func TestCheck(t *testing.T) {
	r := NewResolver(matrix.Seed())

	tests := []struct {
		name    string
		module  string
		writes  []string
		wantErr bool
	}{
		{name: "mandatory only", module: "nastrij", writes: []string{"calendar.time_point", "gallery.experience_snapshot"}},
		{name: "with optional", module: "nastrij", writes: []string{"calendar.time_point", "gallery.experience_snapshot", "nastrij.state_mark"}},
		{name: "missing mandatory", module: "kazkar", writes: []string{"calendar.time_point", "kazkar.memory_node"}, wantErr: true},
		{name: "foreign optional", module: "kazkar", writes: []string{"calendar.time_point", "gallery.experience_snapshot", "podija.future_link"}, wantErr: true},
		{name: "too few", module: "", writes: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Check(tt.module, tt.writes)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPolicyViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMatrixShape_IdentityMapping(t *testing.T) {
	doc, err := matrix.Normalize([]byte(`
network_matrix:
  modules: [ci, kazkar]
  traffic_categories: [problem]
`))
	require.NoError(t, err)
	r := NewResolver(doc)

	m, ok := r.ModuleFor("ci")
	require.True(t, ok)
	assert.Equal(t, "ci", m)
	assert.Equal(t, 2, r.Policy("ci").Min)
}
