// Package similarity compares feature vectors.
package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/poiesic/venturematch/core"
)

// Cosine returns the cosine similarity of a and b in [-1, 1].
//
// It returns exactly 0 when either vector is empty or all-zero, and when the
// lengths differ. A zero result means "no signal", never an error.
func Cosine(a, b core.Vector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	cos := floats.Dot(a, b) / (normA * normB)
	if math.IsNaN(cos) {
		return 0
	}
	return math.Max(-1, math.Min(1, cos))
}
