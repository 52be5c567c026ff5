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


// Package canon maps free-text attribute values onto canonical labels.
//
// Every function in this package is total: unparseable or unrecognized input
// yields a well-defined value (the trimmed original, or the Unknown sentinel),
// never an error.
package canon

import (
	"fmt"
	"strings"

	"github.com/poiesic/venturematch/core"
)

const (
	// Unknown is the sentinel for absent or unparseable input.
	// It never appears in a vocabulary, so it encodes to a zero vector.
	Unknown = "Unknown"

	// Other is the region for non-empty locations matching no known region.
	Other = "Other"
)

// LocationMode selects how locations are canonicalized.
type LocationMode string

const (
	// LocationCity keeps the first comma-separated segment, e.g. "Berlin, Germany" -> "Berlin".
	LocationCity LocationMode = "city"

	// LocationRegion maps locations onto coarse geographic regions.
	LocationRegion LocationMode = "region"
)

// ParseLocationMode validates a location mode name.
func ParseLocationMode(s string) (LocationMode, error) {
	switch LocationMode(s) {
	case LocationCity, LocationRegion:
		return LocationMode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLocationMode, s)
}

// Canonicalizer maps raw attribute values onto canonical labels.
// It is safe for concurrent use once constructed.
type Canonicalizer struct {
	mode       LocationMode
	industries map[string]string
	stages     map[string]string
	regions    []Region
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer) error

// WithLocationMode sets the location canonicalization mode.
func WithLocationMode(mode LocationMode) Option {
	return func(c *Canonicalizer) error {
		if _, err := ParseLocationMode(string(mode)); err != nil {
			return err
		}
		c.mode = mode
		return nil
	}
}

// WithIndustryAliases replaces the industry alias table.
// Keys are normalized before use.
func WithIndustryAliases(aliases map[string]string) Option {
	return func(c *Canonicalizer) error {
		c.industries = normalizeKeys(aliases)
		return nil
	}
}

// WithStageAliases replaces the stage alias table.
// Keys are normalized before use.
func WithStageAliases(aliases map[string]string) Option {
	return func(c *Canonicalizer) error {
		c.stages = normalizeKeys(aliases)
		return nil
	}
}

// WithRegions replaces the region keyword table used in region mode.
func WithRegions(regions []Region) Option {
	return func(c *Canonicalizer) error {
		table := make([]Region, 0, len(regions))
		for _, r := range regions {
			if r.Name == "" {
				return fmt.Errorf("%w: region without name", ErrInvalidRegion)
			}
			keywords := make([]string, 0, len(r.Keywords))
			for _, k := range r.Keywords {
				if k = words(k); k != "" {
					keywords = append(keywords, k)
				}
			}
			table = append(table, Region{Name: r.Name, Keywords: keywords})
		}
		c.regions = table
		return nil
	}
}

// New creates a Canonicalizer. Without options it uses city mode and the
// default alias tables.
func New(opts ...Option) (*Canonicalizer, error) {
	c := &Canonicalizer{
		mode:       LocationCity,
		industries: DefaultIndustryAliases,
		stages:     DefaultStageAliases,
	}
	if err := WithRegions(DefaultRegions)(c); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LocationMode returns the configured location mode.
func (c *Canonicalizer) LocationMode() LocationMode {
	return c.mode
}

// Industry canonicalizes an industry label. Unaliased input is returned trimmed.
func (c *Canonicalizer) Industry(s string) string {
	return lookup(c.industries, s)
}

// Stage canonicalizes a funding stage label. Unaliased input is returned trimmed.
func (c *Canonicalizer) Stage(s string) string {
	return lookup(c.stages, s)
}

// Location canonicalizes a location according to the configured mode.
// Empty input yields Unknown.
func (c *Canonicalizer) Location(s string) string {
	normalized := Normalize(s)
	if normalized == "" {
		return Unknown
	}

	if c.mode == LocationRegion {
		text := words(normalized)
		for _, r := range c.regions {
			for _, k := range r.Keywords {
				if containsPhrase(text, k) {
					return r.Name
				}
			}
		}
		return Other
	}

	city, _, _ := strings.Cut(s, ",")
	if city = Normalize(city); city == "" {
		return Unknown
	}
	return titleCase(city)
}

// Attributes canonicalizes a raw attribute set into a Profile.
// Empty values are dropped; Unknown sentinels are kept and encode to zero.
func (c *Canonicalizer) Attributes(a core.Attributes) core.Profile {
	var p core.Profile

	for _, v := range a.Industries {
		if v = c.Industry(v); v != "" {
			p[core.DimensionIndustry] = append(p[core.DimensionIndustry], v)
		}
	}
	for _, v := range a.Stages {
		if v = c.Stage(v); v != "" {
			p[core.DimensionStage] = append(p[core.DimensionStage], v)
		}
	}
	if strings.TrimSpace(a.Location) != "" {
		p[core.DimensionLocation] = []string{c.Location(a.Location)}
	}
	if strings.TrimSpace(a.TeamSize) != "" {
		p[core.DimensionTeam] = []string{TeamBucket(a.TeamSize)}
	}
	if strings.TrimSpace(a.FoundedYear) != "" {
		p[core.DimensionYear] = []string{YearBucket(a.FoundedYear)}
	}
	p[core.DimensionBusinessModel] = single(Normalize(a.BusinessModel))
	p[core.DimensionRevenueStage] = single(Normalize(a.RevenueStage))
	p[core.DimensionCustomerSegment] = single(Normalize(a.CustomerSegment))

	return p
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func lookup(aliases map[string]string, s string) string {
	if canonical, ok := aliases[Normalize(s)]; ok {
		return canonical
	}
	return strings.TrimSpace(s)
}

func normalizeKeys(aliases map[string]string) map[string]string {
	out := make(map[string]string, len(aliases))
	for k, v := range aliases {
		out[Normalize(k)] = v
	}
	return out
}
