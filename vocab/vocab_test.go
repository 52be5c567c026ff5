package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/core"
)

func TestBuilder_Build(t *testing.T) {
	var b Builder

	var p1 core.Profile
	p1[core.DimensionIndustry] = []string{"SaaS", "FinTech", "N/A"}
	p1[core.DimensionStage] = []string{"Seed"}
	p1[core.DimensionLocation] = []string{canon.Unknown}
	p1[core.DimensionTeam] = []string{canon.TeamLarge}
	p1[core.DimensionBusinessModel] = []string{"b2b"}

	var p2 core.Profile
	p2[core.DimensionIndustry] = []string{"FinTech", " ", "AI/ML"}
	p2[core.DimensionStage] = []string{"Series A", "unknown"}
	p2[core.DimensionLocation] = []string{"Berlin"}
	p2[core.DimensionRevenueStage] = []string{"pre revenue"}
	p2[core.DimensionCustomerSegment] = []string{"smb", "none"}

	b.Add(p1)
	b.Add(p2)

	v, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, []string{"AI/ML", "FinTech", "SaaS"}, v.Values(core.DimensionIndustry))
	assert.Equal(t, []string{"Seed", "Series A"}, v.Values(core.DimensionStage))
	assert.Equal(t, []string{"Berlin"}, v.Values(core.DimensionLocation))
	assert.Equal(t, canon.TeamBuckets, v.Values(core.DimensionTeam))
	assert.Equal(t, canon.YearBuckets, v.Values(core.DimensionYear))
	assert.Equal(t, []string{"b2b"}, v.Values(core.DimensionBusinessModel))
	assert.Equal(t, []string{"pre revenue"}, v.Values(core.DimensionRevenueStage))
	assert.Equal(t, []string{"smb"}, v.Values(core.DimensionCustomerSegment))

	assert.Equal(t, [core.DimensionCount]int{3, 2, 1, 4, 3, 1, 1, 1}, v.Widths())
}

func TestBuilder_Empty(t *testing.T) {
	var b Builder
	v, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 0, v.Size(core.DimensionIndustry))
	assert.Equal(t, len(canon.TeamBuckets), v.Size(core.DimensionTeam))
	assert.NotNil(t, v.Values(core.DimensionIndustry))
}

func TestVocabulary_Index(t *testing.T) {
	v, err := FromLabels(Labels{Industries: []string{"FinTech", "AI/ML"}})
	require.NoError(t, err)

	i, ok := v.Index(core.DimensionIndustry, "AI/ML")
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = v.Index(core.DimensionIndustry, "fintech")
	assert.False(t, ok, "lookups are exact")

	i, ok = v.Index(core.DimensionTeam, canon.TeamEnterprise)
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = v.Index(core.Dimension(99), "FinTech")
	assert.False(t, ok)
	assert.Equal(t, 0, v.Size(core.Dimension(99)))
}

func TestVocabulary_Immutable(t *testing.T) {
	source := []string{"FinTech"}
	v, err := FromLabels(Labels{Industries: source})
	require.NoError(t, err)

	source[0] = "Changed"
	values := v.Values(core.DimensionIndustry)
	values[0] = "Mutated"

	assert.Equal(t, []string{"FinTech"}, v.Values(core.DimensionIndustry))
}

func TestFromLabels_Invalid(t *testing.T) {
	_, err := FromLabels(Labels{Stages: []string{"Seed", "Seed"}})
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	_, err = FromLabels(Labels{Locations: []string{"Berlin", " "}})
	assert.ErrorIs(t, err, ErrEmptyLabel)
}

func TestVocabulary_LabelsRoundTrip(t *testing.T) {
	in := Labels{
		Industries:       []string{"FinTech"},
		Stages:           []string{"Seed", "Series A"},
		Locations:        []string{"Berlin"},
		BusinessModels:   []string{"b2b"},
		RevenueStages:    []string{},
		CustomerSegments: []string{"smb"},
	}
	v, err := FromLabels(in)
	require.NoError(t, err)
	assert.Equal(t, in, v.Labels())
}

func TestIsPlaceholder(t *testing.T) {
	for _, value := range []string{"", "  ", "N/A", "n/a", "Unknown", "UNKNOWN", "none"} {
		assert.True(t, IsPlaceholder(value), value)
	}
	for _, value := range []string{"Seed", "Nairobi", "Other"} {
		assert.False(t, IsPlaceholder(value), value)
	}
}
