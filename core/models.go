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


package core

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// ID is a durable identifier for investors.
// It is derived from content, never from load order.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// String renders the ID as fixed-width hex.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// MarshalText encodes the ID as hex so JSON consumers never lose precision.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the hex form produced by MarshalText.
func (id *ID) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 16, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", text, err)
	}
	*id = ID(v)
	return nil
}

// StartupID identifies a startup as "<investor index>_<local index>".
type StartupID string

// NewStartupID builds the identifier for the local-th startup of the inv-th investor.
func NewStartupID(inv, local int) StartupID {
	return StartupID(strconv.Itoa(inv) + "_" + strconv.Itoa(local))
}

// Dimension names one feature dimension of an encoded bundle.
type Dimension int

const (
	DimensionIndustry Dimension = iota
	DimensionStage
	DimensionLocation
	DimensionTeam
	DimensionYear
	DimensionBusinessModel
	DimensionRevenueStage
	DimensionCustomerSegment

	// DimensionCount is the number of feature dimensions.
	DimensionCount int = iota
)

// Dimensions lists every dimension in encoding order.
// Scoring iterates in this order so float sums are reproducible.
var Dimensions = [DimensionCount]Dimension{
	DimensionIndustry,
	DimensionStage,
	DimensionLocation,
	DimensionTeam,
	DimensionYear,
	DimensionBusinessModel,
	DimensionRevenueStage,
	DimensionCustomerSegment,
}

// String returns the dimension name used in configuration and logs.
func (d Dimension) String() string {
	switch d {
	case DimensionIndustry:
		return "industry"
	case DimensionStage:
		return "stage"
	case DimensionLocation:
		return "location"
	case DimensionTeam:
		return "team"
	case DimensionYear:
		return "year"
	case DimensionBusinessModel:
		return "business_model"
	case DimensionRevenueStage:
		return "revenue_stage"
	case DimensionCustomerSegment:
		return "customer_segment"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the defined dimensions.
func (d Dimension) Valid() bool {
	return d >= 0 && int(d) < DimensionCount
}

// Vector is a fixed-width numeric encoding of one dimension.
type Vector []float64

// IsZero reports whether the vector is empty or has no non-zero component.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// FeatureBundle maps every dimension to its encoded vector.
// A bundle whose vectors are all zero is valid and carries no signal.
type FeatureBundle [DimensionCount]Vector

// Vector returns the vector encoded for d.
func (b *FeatureBundle) Vector(d Dimension) Vector {
	if !d.Valid() {
		return nil
	}
	return b[d]
}

// Attributes is a raw, uncanonicalized attribute set as supplied by a caller
// or read from the dataset.
type Attributes struct {
	Industries      []string
	Stages          []string
	Location        string
	TeamSize        string
	FoundedYear     string
	BusinessModel   string
	RevenueStage    string
	CustomerSegment string
}

// Profile is a canonicalized attribute set ready for encoding.
// Every dimension may hold several values; single-valued inputs carry one.
type Profile [DimensionCount][]string

// Values returns the canonical values recorded for d.
func (p *Profile) Values(d Dimension) []string {
	if !d.Valid() {
		return nil
	}
	return p[d]
}

// Investor is an investor profile with its precomputed encoding.
type Investor struct {
	Id                  ID
	Name                string
	Location            string
	TicketSize          string
	Industries          []string
	Stages              []string
	NumInvestments      int
	RecentActivityYear  int
	Bio                 string
	Role                string
	SuccessRate         string
	PastInvestmentTypes []string
	Features            FeatureBundle
}

// Startup is a historical investment of an investor with its precomputed encoding.
type Startup struct {
	Id              StartupID
	Name            string
	Industry        string
	Location        string
	FundingStage    string
	BusinessModel   string
	RevenueStage    string
	CustomerSegment string
	TeamSize        string
	FoundedYear     string
	InvestorId      ID
	InvestorName    string
	Features        FeatureBundle
}

// Interaction records the investors that backed one startup, in insertion order.
type Interaction struct {
	StartupId StartupID
	Investors []ID
}
