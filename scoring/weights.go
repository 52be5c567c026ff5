// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package scoring combines per-dimension similarities into a single score.
package scoring

import (
	"fmt"
	"math"

	"github.com/poiesic/venturematch/core"
)

// Weights is the per-dimension weight table. Weights need not sum to 1;
// they are renormalized over the dimensions a query actually populates.
type Weights struct {
	Industry        float64 `koanf:"industry" json:"industry"`
	Stage           float64 `koanf:"stage" json:"stage"`
	Location        float64 `koanf:"location" json:"location"`
	Team            float64 `koanf:"team" json:"team"`
	Year            float64 `koanf:"year" json:"year"`
	BusinessModel   float64 `koanf:"business_model" json:"business_model"`
	RevenueStage    float64 `koanf:"revenue_stage" json:"revenue_stage"`
	CustomerSegment float64 `koanf:"customer_segment" json:"customer_segment"`
}

// DefaultWeights returns the standard weight table, which sums to 1.
func DefaultWeights() Weights {
	return Weights{
		Industry:        0.35,
		Stage:           0.15,
		Location:        0.10,
		Team:            0.05,
		Year:            0.05,
		BusinessModel:   0.10,
		RevenueStage:    0.10,
		CustomerSegment: 0.10,
	}
}

// Of returns the weight of dimension d, or 0 for an invalid dimension.
func (w Weights) Of(d core.Dimension) float64 {
	switch d {
	case core.DimensionIndustry:
		return w.Industry
	case core.DimensionStage:
		return w.Stage
	case core.DimensionLocation:
		return w.Location
	case core.DimensionTeam:
		return w.Team
	case core.DimensionYear:
		return w.Year
	case core.DimensionBusinessModel:
		return w.BusinessModel
	case core.DimensionRevenueStage:
		return w.RevenueStage
	case core.DimensionCustomerSegment:
		return w.CustomerSegment
	default:
		return 0
	}
}

// Sum returns the total weight over all dimensions.
func (w Weights) Sum() float64 {
	var sum float64
	for _, d := range core.Dimensions {
		sum += w.Of(d)
	}
	return sum
}

// Validate checks that every weight is finite and non-negative.
func (w Weights) Validate() error {
	for _, d := range core.Dimensions {
		v := w.Of(d)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s weight %v", ErrInvalidWeight, d, v)
		}
	}
	return nil
}

// ToMap returns the weights keyed by dimension name.
func (w Weights) ToMap() map[string]float64 {
	m := make(map[string]float64, core.DimensionCount)
	for _, d := range core.Dimensions {
		m[d.String()] = w.Of(d)
	}
	return m
}
