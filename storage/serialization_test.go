package storage

import (
	"testing"
	"time"

	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"content-based ID", core.IDFromContent("Northwind Capital")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func testInvestor() *core.Investor {
	var features core.FeatureBundle
	features[core.DimensionIndustry] = core.Vector{1, 0, 1}
	features[core.DimensionStage] = core.Vector{0, 1}
	features[core.DimensionTeam] = core.Vector{0.5, 0, 0, 0}

	return &core.Investor{
		Id:                  core.IDFromContent("Helix Ventures"),
		Name:                "Helix Ventures",
		Location:            "London, UK",
		TicketSize:          "$1M-$5M",
		Industries:          []string{"HealthTech", "BioTech"},
		Stages:              []string{"Series A"},
		NumInvestments:      14,
		RecentActivityYear:  2023,
		Bio:                 "Backs clinical software and München-based labs",
		Role:                "Lead",
		SuccessRate:         "60%",
		PastInvestmentTypes: []string{"Equity"},
		Features:            features,
	}
}

func TestMarshalUnmarshalInvestor(t *testing.T) {
	inv := testInvestor()

	decoded, err := UnmarshalInvestor(MarshalInvestor(inv))
	require.NoError(t, err)
	assert.Equal(t, inv, decoded)
}

func TestMarshalUnmarshalStartup(t *testing.T) {
	var features core.FeatureBundle
	features[core.DimensionLocation] = core.Vector{0, 1}

	s := &core.Startup{
		Id:              core.NewStartupID(1, 0),
		Name:            "CareSignal",
		Industry:        "Healthcare",
		Location:        "London",
		FundingStage:    "Seed",
		BusinessModel:   "B2B",
		RevenueStage:    "Early Revenue",
		CustomerSegment: "Enterprise",
		TeamSize:        "35",
		FoundedYear:     "2019",
		InvestorId:      core.IDFromContent("Helix Ventures"),
		InvestorName:    "Helix Ventures",
		Features:        features,
	}

	decoded, err := UnmarshalStartup(MarshalStartup(s))
	require.NoError(t, err)
	assert.Equal(t, s, decoded)
}

func TestMarshalUnmarshalInteraction(t *testing.T) {
	in := &core.Interaction{
		StartupId: "0_1",
		Investors: []core.ID{core.IDFromContent("a"), core.IDFromContent("b")},
	}

	decoded, err := UnmarshalInteraction(MarshalInteraction(in))
	require.NoError(t, err)
	assert.Equal(t, in, decoded)
}

func TestMarshalUnmarshalLabels(t *testing.T) {
	l := &vocab.Labels{
		Industries: []string{"BioTech", "FinTech"},
		Stages:     []string{"Seed"},
		Locations:  []string{"Berlin", "Zürich"},
	}

	decoded, err := UnmarshalLabels(MarshalLabels(l))
	require.NoError(t, err)
	assert.Equal(t, l, decoded)
}

func TestMarshalUnmarshalMeta(t *testing.T) {
	m := &Meta{
		Fingerprint:  "0123456789abcdef0123456789abcdef",
		LocationMode: "region",
		Investors:    3,
		Startups:     5,
		Interactions: 5,
		SavedAt:      time.Date(2025, 3, 1, 12, 30, 0, 123000, time.UTC),
	}

	decoded, err := UnmarshalMeta(MarshalMeta(m))
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}

func TestUnmarshal_TruncatedData(t *testing.T) {
	data := MarshalInvestor(testInvestor())

	for _, n := range []int{0, 1, len(data) / 2, len(data) - 1} {
		_, err := UnmarshalInvestor(data[:n])
		assert.ErrorIs(t, err, ErrSerializationFailed, "prefix of %d bytes", n)
	}
}

func TestUnmarshal_TrailingBytes(t *testing.T) {
	data := append(MarshalStartup(&core.Startup{Id: "0_0"}), 0)

	_, err := UnmarshalStartup(data)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestUnmarshal_UnsupportedVersion(t *testing.T) {
	data := MarshalLabels(&vocab.Labels{})
	data[0] = 0x7e

	_, err := UnmarshalLabels(data)
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
