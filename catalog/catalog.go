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


package catalog

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"github.com/go-crypt/x/blake2b"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/encode"
	"github.com/poiesic/venturematch/vocab"
)

// Catalog is an immutable snapshot of everything recommendations read:
// the vocabulary, investors, startups and the interaction log.
//
// Slices returned by accessors are shared with the catalog and must not be
// modified. A Catalog is safe for concurrent use.
type Catalog struct {
	vocab        *vocab.Vocabulary
	encoder      *encode.Encoder
	canon        *canon.Canonicalizer
	investors    []core.Investor
	startups     []core.Startup
	interactions []core.Interaction

	investorIndex    map[core.ID]int
	startupIndex     map[core.StartupID]int
	interactionIndex map[core.StartupID]int

	fingerprint string
}

// Option configures a Catalog.
type Option func(*Catalog) error

// WithCanonicalizer sets the canonicalizer queries against this catalog
// must use. Default is canon.New() (city locations, default aliases).
func WithCanonicalizer(c *canon.Canonicalizer) Option {
	return func(cat *Catalog) error {
		if c != nil {
			cat.canon = c
		}
		return nil
	}
}

// New validates its inputs and assembles a Catalog. It fails on duplicate
// IDs, feature bundles whose widths disagree with the vocabulary, and
// interactions that reference unknown startups or investors.
//
// The catalog takes ownership of the given slices.
func New(v *vocab.Vocabulary, investors []core.Investor, startups []core.Startup, interactions []core.Interaction, opts ...Option) (*Catalog, error) {
	if v == nil {
		return nil, ErrVocabularyRequired
	}

	encoder, err := encode.New(v)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		vocab:            v,
		encoder:          encoder,
		investors:        investors,
		startups:         startups,
		interactions:     interactions,
		investorIndex:    make(map[core.ID]int, len(investors)),
		startupIndex:     make(map[core.StartupID]int, len(startups)),
		interactionIndex: make(map[core.StartupID]int, len(interactions)),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.canon == nil {
		if c.canon, err = canon.New(); err != nil {
			return nil, err
		}
	}

	widths := v.Widths()

	for i := range c.investors {
		inv := &c.investors[i]
		if err := core.ValidateInvestor(inv, widths); err != nil {
			return nil, err
		}
		if _, exists := c.investorIndex[inv.Id]; exists {
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateInvestor, inv.Name, inv.Id)
		}
		c.investorIndex[inv.Id] = i
	}

	for i := range c.startups {
		s := &c.startups[i]
		if err := core.ValidateStartup(s, widths); err != nil {
			return nil, err
		}
		if _, exists := c.startupIndex[s.Id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateStartup, s.Id)
		}
		if _, ok := c.investorIndex[s.InvestorId]; !ok {
			return nil, fmt.Errorf("%w: startup %s owned by unknown investor %s", ErrDanglingReference, s.Id, s.InvestorId)
		}
		c.startupIndex[s.Id] = i
	}

	for i, in := range c.interactions {
		if _, ok := c.startupIndex[in.StartupId]; !ok {
			return nil, fmt.Errorf("%w: interaction for unknown startup %s", ErrDanglingReference, in.StartupId)
		}
		if _, exists := c.interactionIndex[in.StartupId]; exists {
			return nil, fmt.Errorf("%w: startup %s", ErrDuplicateInteraction, in.StartupId)
		}
		seen := make(map[core.ID]struct{}, len(in.Investors))
		for _, id := range in.Investors {
			if _, ok := c.investorIndex[id]; !ok {
				return nil, fmt.Errorf("%w: startup %s backed by unknown investor %s", ErrDanglingReference, in.StartupId, id)
			}
			if _, dup := seen[id]; dup {
				return nil, fmt.Errorf("%w: investor %s listed twice for startup %s", ErrDuplicateInteraction, id, in.StartupId)
			}
			seen[id] = struct{}{}
		}
		c.interactionIndex[in.StartupId] = i
	}

	c.fingerprint = c.computeFingerprint()
	return c, nil
}

// Vocabulary returns the catalog's label vocabulary.
func (c *Catalog) Vocabulary() *vocab.Vocabulary {
	return c.vocab
}

// Encoder returns an encoder bound to the catalog's vocabulary.
func (c *Catalog) Encoder() *encode.Encoder {
	return c.encoder
}

// Canonicalizer returns the canonicalizer the catalog was built with.
func (c *Catalog) Canonicalizer() *canon.Canonicalizer {
	return c.canon
}

// Investors returns all investors in load order.
func (c *Catalog) Investors() []core.Investor {
	return c.investors
}

// Startups returns all startups in load order.
func (c *Catalog) Startups() []core.Startup {
	return c.startups
}

// Interactions returns the interaction log in load order.
func (c *Catalog) Interactions() []core.Interaction {
	return c.interactions
}

// Investor looks up an investor by ID.
func (c *Catalog) Investor(id core.ID) (*core.Investor, bool) {
	i, ok := c.investorIndex[id]
	if !ok {
		return nil, false
	}
	return &c.investors[i], true
}

// InvestorPosition returns the load-order position of an investor.
func (c *Catalog) InvestorPosition(id core.ID) (int, bool) {
	i, ok := c.investorIndex[id]
	return i, ok
}

// Startup looks up a startup by ID.
func (c *Catalog) Startup(id core.StartupID) (*core.Startup, bool) {
	i, ok := c.startupIndex[id]
	if !ok {
		return nil, false
	}
	return &c.startups[i], true
}

// Backers returns the investors that invested in a startup, in insertion order.
func (c *Catalog) Backers(id core.StartupID) []core.ID {
	i, ok := c.interactionIndex[id]
	if !ok {
		return nil
	}
	return c.interactions[i].Investors
}

// Fingerprint returns a content hash of the catalog for change detection.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

func (c *Catalog) computeFingerprint() string {
	h, _ := blake2b.New(16, nil)

	var buf [8]byte
	writeString := func(s string) {
		binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
		h.Write(buf[:])
		h.Write([]byte(s))
	}
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeBundle := func(b *core.FeatureBundle) {
		for _, d := range core.Dimensions {
			writeUint(uint64(len(b[d])))
			for _, x := range b[d] {
				writeUint(math.Float64bits(x))
			}
		}
	}

	writeString(string(c.canon.LocationMode()))
	for _, d := range core.Dimensions {
		values := c.vocab.Values(d)
		writeUint(uint64(len(values)))
		for _, v := range values {
			writeString(v)
		}
	}

	writeUint(uint64(len(c.investors)))
	for i := range c.investors {
		inv := &c.investors[i]
		writeUint(uint64(inv.Id))
		writeString(inv.Name)
		writeString(inv.Location)
		writeBundle(&inv.Features)
	}

	writeUint(uint64(len(c.startups)))
	for i := range c.startups {
		s := &c.startups[i]
		writeString(string(s.Id))
		writeString(s.Name)
		writeUint(uint64(s.InvestorId))
		writeBundle(&s.Features)
	}

	writeUint(uint64(len(c.interactions)))
	for _, in := range c.interactions {
		writeString(string(in.StartupId))
		writeUint(uint64(len(in.Investors)))
		for _, id := range in.Investors {
			writeUint(uint64(id))
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
