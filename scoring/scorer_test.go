package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/similarity"
)

// bundle returns a bundle with every dimension two wide and all zeros.
func bundle() core.FeatureBundle {
	var b core.FeatureBundle
	for _, d := range core.Dimensions {
		b[d] = core.Vector{0, 0}
	}
	return b
}

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	require.NoError(t, w.Validate())
	assert.InDelta(t, 1.0, w.Sum(), 1e-12)
	assert.Equal(t, 0.35, w.Of(core.DimensionIndustry))
	assert.Equal(t, 0.0, w.Of(core.Dimension(-1)))
	assert.Len(t, w.ToMap(), core.DimensionCount)
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Weights)
		wantErr bool
	}{
		{"defaults", func(*Weights) {}, false},
		{"all zero", func(w *Weights) { *w = Weights{} }, false},
		{"negative", func(w *Weights) { w.Stage = -0.1 }, true},
		{"nan", func(w *Weights) { w.Year = math.NaN() }, true},
		{"inf", func(w *Weights) { w.Location = math.Inf(1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWeights()
			tt.mutate(&w)
			err := w.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWeight)
				_, err = New(w)
				assert.ErrorIs(t, err, ErrInvalidWeight)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScorer_IndustryOnlyRenormalization(t *testing.T) {
	s, err := New(DefaultWeights())
	require.NoError(t, err)

	q := bundle()
	q[core.DimensionIndustry] = core.Vector{1, 1}

	c := bundle()
	c[core.DimensionIndustry] = core.Vector{1, 0}
	c[core.DimensionStage] = core.Vector{1, 0}

	plan := s.Plan(&q)
	require.True(t, plan.Active())
	assert.Equal(t, 1.0, plan.Weight(core.DimensionIndustry))
	for _, d := range core.Dimensions[1:] {
		assert.Equal(t, 0.0, plan.Weight(d), d.String())
	}

	want := similarity.Cosine(q[core.DimensionIndustry], c[core.DimensionIndustry])
	assert.Equal(t, want, plan.Score(&c))
	assert.Equal(t, want, s.Score(&q, &c))
}

func TestScorer_PartialQuery(t *testing.T) {
	s, err := New(DefaultWeights())
	require.NoError(t, err)

	q := bundle()
	q[core.DimensionIndustry] = core.Vector{1, 0}
	q[core.DimensionStage] = core.Vector{0, 1}

	plan := s.Plan(&q)
	assert.InDelta(t, 0.7, plan.Weight(core.DimensionIndustry), 1e-12)
	assert.InDelta(t, 0.3, plan.Weight(core.DimensionStage), 1e-12)

	both := bundle()
	both[core.DimensionIndustry] = core.Vector{1, 0}
	both[core.DimensionStage] = core.Vector{0, 1}
	assert.InDelta(t, 1.0, plan.Score(&both), 1e-12)

	industryOnly := bundle()
	industryOnly[core.DimensionIndustry] = core.Vector{1, 0}
	industryOnly[core.DimensionLocation] = core.Vector{1, 1}
	assert.InDelta(t, 0.7, plan.Score(&industryOnly), 1e-12, "dimensions absent from the query do not penalize")
}

func TestScorer_EmptyQuery(t *testing.T) {
	s, err := New(DefaultWeights())
	require.NoError(t, err)

	q := bundle()
	c := bundle()
	c[core.DimensionIndustry] = core.Vector{1, 0}

	plan := s.Plan(&q)
	assert.False(t, plan.Active())
	assert.Equal(t, 0.0, plan.Score(&c))

	var empty core.FeatureBundle
	assert.Equal(t, 0.0, s.Score(&empty, &c))
}

func TestScorer_ZeroActiveWeight(t *testing.T) {
	w := DefaultWeights()
	w.Industry = 0
	s, err := New(w)
	require.NoError(t, err)

	q := bundle()
	q[core.DimensionIndustry] = core.Vector{1, 0}

	c := bundle()
	c[core.DimensionIndustry] = core.Vector{1, 0}

	plan := s.Plan(&q)
	assert.False(t, plan.Active())
	assert.Equal(t, 0.0, plan.Score(&c))
}

func TestScorer_ZeroCandidate(t *testing.T) {
	s, err := New(DefaultWeights())
	require.NoError(t, err)

	q := bundle()
	q[core.DimensionIndustry] = core.Vector{1, 0}
	q[core.DimensionLocation] = core.Vector{0, 1}

	c := bundle()
	assert.Equal(t, 0.0, s.Score(&q, &c))
}
