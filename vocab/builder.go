package vocab

import (
	"slices"
	"strings"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/core"
)

// placeholders are dataset values that carry no category.
var placeholders = map[string]struct{}{
	"":        {},
	"n/a":     {},
	"na":      {},
	"none":    {},
	"unknown": {},
}

// Builder collects canonical labels from profiles. The zero value is ready to use.
// A Builder is not safe for concurrent use.
type Builder struct {
	seen [core.DimensionCount]map[string]struct{}
}

// Add records every usable label of p. Team and year values are ignored
// because their buckets are fixed.
func (b *Builder) Add(p core.Profile) {
	for _, d := range core.Dimensions {
		if d == core.DimensionTeam || d == core.DimensionYear {
			continue
		}
		for _, value := range p.Values(d) {
			b.add(d, value)
		}
	}
}

func (b *Builder) add(d core.Dimension, value string) {
	value = strings.TrimSpace(value)
	if IsPlaceholder(value) {
		return
	}
	if b.seen[d] == nil {
		b.seen[d] = make(map[string]struct{})
	}
	b.seen[d][value] = struct{}{}
}

// Build returns a Vocabulary with the collected labels sorted per dimension.
func (b *Builder) Build() (*Vocabulary, error) {
	sorted := func(d core.Dimension) []string {
		values := make([]string, 0, len(b.seen[d]))
		for value := range b.seen[d] {
			values = append(values, value)
		}
		slices.Sort(values)
		return values
	}

	return FromLabels(Labels{
		Industries:       sorted(core.DimensionIndustry),
		Stages:           sorted(core.DimensionStage),
		Locations:        sorted(core.DimensionLocation),
		BusinessModels:   sorted(core.DimensionBusinessModel),
		RevenueStages:    sorted(core.DimensionRevenueStage),
		CustomerSegments: sorted(core.DimensionCustomerSegment),
	})
}

// IsPlaceholder reports whether value is a dataset placeholder such as
// "N/A" or the Unknown sentinel.
func IsPlaceholder(value string) bool {
	if value == canon.Unknown {
		return true
	}
	_, ok := placeholders[strings.ToLower(strings.TrimSpace(value))]
	return ok
}
