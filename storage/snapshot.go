package storage

import (
	"fmt"
	"time"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/catalog"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/vocab"
)

// Meta describes a persisted catalog snapshot.
type Meta struct {
	Fingerprint  string
	LocationMode string
	Investors    int
	Startups     int
	Interactions int
	SavedAt      time.Time
}

// Snapshot is the persisted form of a catalog.
type Snapshot struct {
	Meta         Meta
	Labels       vocab.Labels
	Investors    []core.Investor
	Startups     []core.Startup
	Interactions []core.Interaction
}

// NewSnapshot captures c for persistence. The snapshot shares slices with c.
func NewSnapshot(c *catalog.Catalog) *Snapshot {
	return &Snapshot{
		Meta: Meta{
			Fingerprint:  c.Fingerprint(),
			LocationMode: string(c.Canonicalizer().LocationMode()),
			Investors:    len(c.Investors()),
			Startups:     len(c.Startups()),
			Interactions: len(c.Interactions()),
			SavedAt:      time.Now().UTC(),
		},
		Labels:       c.Vocabulary().Labels(),
		Investors:    c.Investors(),
		Startups:     c.Startups(),
		Interactions: c.Interactions(),
	}
}

// Catalog reassembles a catalog from the snapshot. Canonicalizer options are
// applied after the stored location mode. The rebuilt catalog must reproduce
// the stored fingerprint, otherwise ErrCorruptSnapshot is returned.
func (s *Snapshot) Catalog(opts ...canon.Option) (*catalog.Catalog, error) {
	mode, err := canon.ParseLocationMode(s.Meta.LocationMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	cn, err := canon.New(append([]canon.Option{canon.WithLocationMode(mode)}, opts...)...)
	if err != nil {
		return nil, err
	}
	v, err := vocab.FromLabels(s.Labels)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	c, err := catalog.New(v, s.Investors, s.Startups, s.Interactions, catalog.WithCanonicalizer(cn))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}
	if c.Fingerprint() != s.Meta.Fingerprint {
		return nil, fmt.Errorf("%w: fingerprint %s, stored %s", ErrCorruptSnapshot, c.Fingerprint(), s.Meta.Fingerprint)
	}
	return c, nil
}
