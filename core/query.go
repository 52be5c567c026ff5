package core

import "fmt"

// RecommenderType selects the recommendation strategy for a query.
type RecommenderType string

const (
	RecommenderContent           RecommenderType = "content"
	RecommenderCollaborative     RecommenderType = "collaborative"
	RecommenderHybrid            RecommenderType = "hybrid"
	RecommenderStartupSimilarity RecommenderType = "startup_similarity"
)

// RecommenderTypes lists every supported strategy.
var RecommenderTypes = []RecommenderType{
	RecommenderContent,
	RecommenderCollaborative,
	RecommenderHybrid,
	RecommenderStartupSimilarity,
}

// ParseRecommenderType maps a selector string to a RecommenderType.
func ParseRecommenderType(s string) (RecommenderType, error) {
	for _, t := range RecommenderTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRecommender, s)
}

const (
	// DefaultLimit is the result count used when a query does not set one.
	DefaultLimit = 6

	// DefaultBlendWeight is the hybrid activity/investment weight used when unset.
	DefaultBlendWeight = 0.5
)

// Query is one recommendation request. It is discarded once answered.
type Query struct {
	Type       RecommenderType
	Attributes Attributes

	// ActivityWeight and InvestmentWeight blend content and collaborative
	// scores in hybrid mode. Nil means DefaultBlendWeight.
	ActivityWeight   *float64
	InvestmentWeight *float64

	// Limit caps the number of results. Zero or negative means DefaultLimit.
	Limit int
}

// EffectiveLimit returns the result count to produce.
func (q *Query) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	return q.Limit
}

// BlendWeights returns the hybrid activity and investment weights with defaults applied.
func (q *Query) BlendWeights() (activity, investment float64) {
	activity, investment = DefaultBlendWeight, DefaultBlendWeight
	if q.ActivityWeight != nil {
		activity = *q.ActivityWeight
	}
	if q.InvestmentWeight != nil {
		investment = *q.InvestmentWeight
	}
	return activity, investment
}
