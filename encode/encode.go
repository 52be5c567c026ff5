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


// Package encode turns canonical profiles into fixed-width binary vectors.
//
// Values missing from the vocabulary contribute nothing: encoding never fails
// and always yields vectors of the vocabulary's width.
package encode

import (
	"errors"

	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/vocab"
)

// ErrVocabularyRequired indicates an Encoder was created without a vocabulary.
var ErrVocabularyRequired = errors.New("vocabulary is required")

// Lookup resolves a label to its vector position.
type Lookup func(value string) (int, bool)

// OneHot returns a vector of length size with a single 1 at the position of
// value, or all zeros when value is unknown.
func OneHot(value string, size int, lookup Lookup) core.Vector {
	return MultiHot([]string{value}, size, lookup)
}

// MultiHot returns the union of the one-hot vectors of values.
// Duplicate and unknown values are no-ops.
func MultiHot(values []string, size int, lookup Lookup) core.Vector {
	v := make(core.Vector, size)
	for _, value := range values {
		if i, ok := lookup(value); ok && i >= 0 && i < size {
			v[i] = 1
		}
	}
	return v
}

// Encoder encodes profiles against a fixed vocabulary.
// It is safe for concurrent use.
type Encoder struct {
	vocab *vocab.Vocabulary
}

// New creates an Encoder for v.
func New(v *vocab.Vocabulary) (*Encoder, error) {
	if v == nil {
		return nil, ErrVocabularyRequired
	}
	return &Encoder{vocab: v}, nil
}

// Vocabulary returns the vocabulary the encoder assigns positions from.
func (e *Encoder) Vocabulary() *vocab.Vocabulary {
	return e.vocab
}

// Encode converts p into a bundle with one vector per dimension, in
// core.Dimensions order. Single-valued dimensions are multi-hot encoded too,
// so aggregated investor profiles and queries share one code path.
func (e *Encoder) Encode(p core.Profile) core.FeatureBundle {
	var b core.FeatureBundle
	for _, d := range core.Dimensions {
		b[d] = MultiHot(p.Values(d), e.vocab.Size(d), func(value string) (int, bool) {
			return e.vocab.Index(d, value)
		})
	}
	return b
}

// Widths returns the vector width of every dimension.
func (e *Encoder) Widths() [core.DimensionCount]int {
	return e.vocab.Widths()
}
