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


// Package vocab holds the ordered label lists that assign vector positions
// to canonical category values, one list per feature dimension.
package vocab

import (
	"fmt"
	"slices"
	"strings"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/core"
)

// Labels is the serializable form of a Vocabulary. Team and year buckets are
// fixed and therefore not part of it.
type Labels struct {
	Industries       []string `json:"industries"`
	Stages           []string `json:"stages"`
	Locations        []string `json:"locations"`
	BusinessModels   []string `json:"business_models"`
	RevenueStages    []string `json:"revenue_stages"`
	CustomerSegments []string `json:"customer_segments"`
}

// Vocabulary is an immutable set of ordered labels per dimension.
type Vocabulary struct {
	labels [core.DimensionCount][]string
	index  [core.DimensionCount]map[string]int
}

// FromLabels creates a Vocabulary preserving the order of l.
// Empty and duplicate labels are rejected.
func FromLabels(l Labels) (*Vocabulary, error) {
	var lists [core.DimensionCount][]string
	lists[core.DimensionIndustry] = l.Industries
	lists[core.DimensionStage] = l.Stages
	lists[core.DimensionLocation] = l.Locations
	lists[core.DimensionTeam] = canon.TeamBuckets
	lists[core.DimensionYear] = canon.YearBuckets
	lists[core.DimensionBusinessModel] = l.BusinessModels
	lists[core.DimensionRevenueStage] = l.RevenueStages
	lists[core.DimensionCustomerSegment] = l.CustomerSegments

	v := &Vocabulary{}
	for _, d := range core.Dimensions {
		values := slices.Clone(lists[d])
		index := make(map[string]int, len(values))
		for i, value := range values {
			if strings.TrimSpace(value) == "" {
				return nil, fmt.Errorf("%w: %s[%d]", ErrEmptyLabel, d, i)
			}
			if _, exists := index[value]; exists {
				return nil, fmt.Errorf("%w: %s %q", ErrDuplicateLabel, d, value)
			}
			index[value] = i
		}
		v.labels[d] = values
		v.index[d] = index
	}
	return v, nil
}

// Index returns the vector position of value in dimension d.
func (v *Vocabulary) Index(d core.Dimension, value string) (int, bool) {
	if !d.Valid() {
		return 0, false
	}
	i, ok := v.index[d][value]
	return i, ok
}

// Size returns the number of labels in dimension d.
func (v *Vocabulary) Size(d core.Dimension) int {
	if !d.Valid() {
		return 0
	}
	return len(v.labels[d])
}

// Values returns a copy of the labels of dimension d in index order.
func (v *Vocabulary) Values(d core.Dimension) []string {
	if !d.Valid() {
		return nil
	}
	return slices.Clone(v.labels[d])
}

// Widths returns the vector width of every dimension.
func (v *Vocabulary) Widths() [core.DimensionCount]int {
	var widths [core.DimensionCount]int
	for _, d := range core.Dimensions {
		widths[d] = len(v.labels[d])
	}
	return widths
}

// Labels returns the serializable form of v.
func (v *Vocabulary) Labels() Labels {
	return Labels{
		Industries:       v.Values(core.DimensionIndustry),
		Stages:           v.Values(core.DimensionStage),
		Locations:        v.Values(core.DimensionLocation),
		BusinessModels:   v.Values(core.DimensionBusinessModel),
		RevenueStages:    v.Values(core.DimensionRevenueStage),
		CustomerSegments: v.Values(core.DimensionCustomerSegment),
	}
}
