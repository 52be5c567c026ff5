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
	"fmt"
)

// ValidateInvestor validates an Investor according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Features must match the given per-dimension widths
//
// NOT validated:
//   - Descriptive fields (bio, ticket size, ...) may all be empty
func ValidateInvestor(investor *Investor, widths [DimensionCount]int) error {
	if investor == nil {
		return fmt.Errorf("%w: investor is nil", ErrInvalidInvestor)
	}

	if investor.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInvestor, ErrEmptyName)
	}

	if err := ValidateBundle(&investor.Features, widths); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidInvestor, investor.Name, err)
	}

	return nil
}

// ValidateStartup validates a Startup according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - Features must match the given per-dimension widths
//
// A startup without a name is accepted; the dataset does not guarantee one.
func ValidateStartup(startup *Startup, widths [DimensionCount]int) error {
	if startup == nil {
		return fmt.Errorf("%w: startup is nil", ErrInvalidStartup)
	}

	if startup.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStartup, ErrEmptyStartupID)
	}

	if err := ValidateBundle(&startup.Features, widths); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidStartup, startup.Id, err)
	}

	return nil
}

// ValidateBundle checks that every vector of b has the expected width.
func ValidateBundle(b *FeatureBundle, widths [DimensionCount]int) error {
	for _, d := range Dimensions {
		if got := len(b[d]); got != widths[d] {
			return fmt.Errorf("%w: %s has %d entries, want %d", ErrBundleWidth, d, got, widths[d])
		}
	}
	return nil
}
