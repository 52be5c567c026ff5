package scoring

import (
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/similarity"
)

// Scorer scores candidates against queries with a fixed weight table.
// It is safe for concurrent use.
type Scorer struct {
	weights Weights
}

// New creates a Scorer after validating w.
func New(w Weights) (*Scorer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{weights: w}, nil
}

// Weights returns the scorer's weight table.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Plan holds the renormalized weights for one query.
type Plan struct {
	query     *core.FeatureBundle
	active    [core.DimensionCount]float64
	hasActive bool
}

// Plan determines the active dimensions of q (non-empty, not all-zero) and
// renormalizes their weights to sum to 1. When no weight is active every
// score of the plan is 0.
func (s *Scorer) Plan(q *core.FeatureBundle) *Plan {
	p := &Plan{query: q}

	var total float64
	for _, d := range core.Dimensions {
		if q[d].IsZero() {
			continue
		}
		total += s.weights.Of(d)
	}
	if total <= 0 {
		return p
	}

	for _, d := range core.Dimensions {
		if q[d].IsZero() {
			continue
		}
		if w := s.weights.Of(d); w > 0 {
			p.active[d] = w / total
			p.hasActive = true
		}
	}
	return p
}

// Active reports whether the plan has any active dimension.
func (p *Plan) Active() bool {
	return p.hasActive
}

// Weight returns the renormalized weight of dimension d.
func (p *Plan) Weight(d core.Dimension) float64 {
	if !d.Valid() {
		return 0
	}
	return p.active[d]
}

// Score returns the weighted similarity of candidate c to the planned query.
func (p *Plan) Score(c *core.FeatureBundle) float64 {
	if !p.hasActive {
		return 0
	}
	var score float64
	for _, d := range core.Dimensions {
		if w := p.active[d]; w > 0 {
			score += w * similarity.Cosine(p.query[d], c[d])
		}
	}
	return score
}

// Score is a shorthand for s.Plan(q).Score(c).
func (s *Scorer) Score(q, c *core.FeatureBundle) float64 {
	return s.Plan(q).Score(c)
}
