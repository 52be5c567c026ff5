package encode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/vocab"
)

func sliceLookup(labels []string) Lookup {
	return func(value string) (int, bool) {
		for i, l := range labels {
			if l == value {
				return i, true
			}
		}
		return 0, false
	}
}

func TestOneHot(t *testing.T) {
	labels := []string{"FinTech", "HealthTech", "SaaS"}
	lookup := sliceLookup(labels)

	assert.Equal(t, core.Vector{0, 1, 0}, OneHot("HealthTech", len(labels), lookup))
	assert.Equal(t, core.Vector{0, 0, 0}, OneHot("SpaceTech", len(labels), lookup), "unknown values encode to zeros")
	assert.Equal(t, core.Vector{0, 0, 0}, OneHot("", len(labels), lookup))
	assert.Equal(t, core.Vector{}, OneHot("FinTech", 0, sliceLookup(nil)))
}

func TestMultiHot(t *testing.T) {
	labels := []string{"Pre-Seed", "Seed", "Series A", "Series B"}
	lookup := sliceLookup(labels)

	tests := []struct {
		name   string
		values []string
		want   core.Vector
	}{
		{"none", nil, core.Vector{0, 0, 0, 0}},
		{"single", []string{"Seed"}, core.Vector{0, 1, 0, 0}},
		{"several", []string{"Seed", "Series B"}, core.Vector{0, 1, 0, 1}},
		{"duplicates", []string{"Seed", "Seed"}, core.Vector{0, 1, 0, 0}},
		{"unknown mixed in", []string{"Series Z", "Pre-Seed"}, core.Vector{1, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MultiHot(tt.values, len(labels), lookup)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncoder_Encode(t *testing.T) {
	v, err := vocab.FromLabels(vocab.Labels{
		Industries:     []string{"AI/ML", "FinTech", "SaaS"},
		Stages:         []string{"Seed", "Series A"},
		Locations:      []string{"Berlin", "London"},
		BusinessModels: []string{"b2b", "b2c"},
	})
	require.NoError(t, err)

	e, err := New(v)
	require.NoError(t, err)
	assert.Same(t, v, e.Vocabulary())

	var p core.Profile
	p[core.DimensionIndustry] = []string{"SaaS", "AI/ML", "Quantum"}
	p[core.DimensionStage] = []string{"Seed"}
	p[core.DimensionLocation] = []string{canon.Unknown}
	p[core.DimensionTeam] = []string{canon.TeamMedium, canon.TeamLarge}
	p[core.DimensionYear] = []string{canon.YearGrowing}
	p[core.DimensionBusinessModel] = []string{"marketplace"}

	b := e.Encode(p)

	assert.Equal(t, core.Vector{1, 0, 1}, b[core.DimensionIndustry])
	assert.Equal(t, core.Vector{1, 0}, b[core.DimensionStage])
	assert.Equal(t, core.Vector{0, 0}, b[core.DimensionLocation])
	assert.Equal(t, core.Vector{0, 1, 1, 0}, b[core.DimensionTeam])
	assert.Equal(t, core.Vector{0, 1, 0}, b[core.DimensionYear])
	assert.Equal(t, core.Vector{0, 0}, b[core.DimensionBusinessModel])
	assert.Equal(t, core.Vector{}, b[core.DimensionRevenueStage])
	assert.Equal(t, core.Vector{}, b[core.DimensionCustomerSegment])

	require.NoError(t, core.ValidateBundle(&b, e.Widths()))
}

func TestEncoder_EmptyProfile(t *testing.T) {
	v, err := vocab.FromLabels(vocab.Labels{Industries: []string{"FinTech"}})
	require.NoError(t, err)
	e, err := New(v)
	require.NoError(t, err)

	b := e.Encode(core.Profile{})
	for _, d := range core.Dimensions {
		assert.True(t, b[d].IsZero(), d.String())
		assert.Len(t, b[d], v.Size(d), d.String())
	}
}

func TestEncoder_Deterministic(t *testing.T) {
	v, err := vocab.FromLabels(vocab.Labels{Industries: []string{"FinTech", "SaaS"}})
	require.NoError(t, err)
	e, err := New(v)
	require.NoError(t, err)

	var p core.Profile
	p[core.DimensionIndustry] = []string{"SaaS"}
	assert.Equal(t, e.Encode(p), e.Encode(p))
}

func TestNew_RequiresVocabulary(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrVocabularyRequired)
}
