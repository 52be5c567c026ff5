package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/venturematch/core"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b core.Vector
		want float64
	}{
		{"empty vs non-empty", core.Vector{}, core.Vector{1, 0, 1}, 0},
		{"nil vs nil", nil, nil, 0},
		{"both zero", core.Vector{0, 0}, core.Vector{0, 0}, 0},
		{"one zero", core.Vector{1, 0}, core.Vector{0, 0}, 0},
		{"identical", core.Vector{1, 0}, core.Vector{1, 0}, 1},
		{"orthogonal", core.Vector{1, 0}, core.Vector{0, 1}, 0},
		{"opposite", core.Vector{1, 0}, core.Vector{-1, 0}, -1},
		{"length mismatch", core.Vector{1, 0}, core.Vector{1, 0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cosine(tt.a, tt.b))
		})
	}
}

func TestCosine_PartialOverlap(t *testing.T) {
	// Two of three shared labels against a single-label vector: 1/sqrt(2).
	got := Cosine(core.Vector{1, 1, 0}, core.Vector{1, 0, 0})
	assert.InDelta(t, 0.7071067811865475, got, 1e-12)

	assert.Equal(t, got, Cosine(core.Vector{1, 0, 0}, core.Vector{1, 1, 0}), "cosine is symmetric")
}

func TestCosine_ScaleInvariant(t *testing.T) {
	a := core.Vector{1, 0, 1}
	b := core.Vector{2, 0, 2}
	assert.InDelta(t, 1.0, Cosine(a, b), 1e-12)
}
