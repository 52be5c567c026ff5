package recommend

import (
	"fmt"
	"math"

	"github.com/poiesic/venturematch/scoring"
)

const (
	// DefaultThreshold is the minimum score content and collaborative
	// candidates must reach.
	DefaultThreshold = 0.1

	// DefaultHybridExpansion multiplies K for the content and collaborative
	// candidate pools a hybrid recommendation blends.
	DefaultHybridExpansion = 2
)

// Config holds the tunables of a Recommender.
type Config struct {
	// Threshold is the inclusive minimum score for content and
	// collaborative results. Startup similarity ignores it.
	Threshold float64 `koanf:"threshold" json:"threshold"`

	// HybridExpansion is the candidate pool multiplier for hybrid mode.
	HybridExpansion int `koanf:"hybrid_expansion" json:"hybrid_expansion"`

	// Weights is the per-dimension weight table.
	Weights scoring.Weights `koanf:"weights" json:"weights"`
}

// DefaultConfig returns the standard recommender configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:       DefaultThreshold,
		HybridExpansion: DefaultHybridExpansion,
		Weights:         scoring.DefaultWeights(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("%w: threshold must be finite, got %v", ErrInvalidConfig, c.Threshold)
	}
	if c.HybridExpansion < 1 {
		return fmt.Errorf("%w: hybrid expansion must be at least 1, got %d", ErrInvalidConfig, c.HybridExpansion)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
