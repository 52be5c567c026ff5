package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/venturematch/canon"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/encode"
	"github.com/poiesic/venturematch/vocab"
)

// Builder turns a raw dataset into a Catalog. Canonicalization and encoding
// run on a worker pool; results land in fixed slots, so the output does not
// depend on scheduling.
type Builder struct {
	pool   *ants.Pool
	canon  *canon.Canonicalizer
	logger *slog.Logger
}

// BuildOption configures a Builder.
type BuildOption func(*Builder) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) BuildOption {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if b.pool != nil {
			b.pool.Release()
		}
		b.pool = pool
		return nil
	}
}

// WithBuildCanonicalizer sets the canonicalizer used for every entity.
// Default is canon.New().
func WithBuildCanonicalizer(c *canon.Canonicalizer) BuildOption {
	return func(b *Builder) error {
		if c != nil {
			b.canon = c
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) BuildOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuildOption) (*Builder, error) {
	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	c, err := canon.New()
	if err != nil {
		pool.Release()
		return nil, err
	}

	b := &Builder{
		pool:   pool,
		canon:  c,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}
	return b, nil
}

// Release releases the worker pool. The builder must not be used afterwards.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// Build canonicalizes and encodes the dataset and returns a validated Catalog.
//
// Investor IDs are content hashes of investor names; two investors with the
// same name are rejected. Startup IDs are "<investor index>_<startup index>".
// Investor bundles combine declared industries, stages and location with the
// team, year, business model, revenue stage and customer segment values of
// the startups they backed.
func (b *Builder) Build(ctx context.Context, dataset []RawInvestor) (*Catalog, error) {
	investors := make([]core.Investor, len(dataset))
	investorProfiles := make([]core.Profile, len(dataset))
	startupOffsets := make([]int, len(dataset))

	seen := make(map[core.ID]string, len(dataset))
	numStartups := 0
	for i, raw := range dataset {
		name := strings.TrimSpace(raw.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: investor %d: %w", core.ErrInvalidInvestor, i, core.ErrEmptyName)
		}
		id := core.IDFromContent(name)
		if _, exists := seen[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateInvestor, name)
		}
		seen[id] = name
		startupOffsets[i] = numStartups
		numStartups += len(raw.Startups)
	}

	startups := make([]core.Startup, numStartups)
	startupProfiles := make([]core.Profile, numStartups)

	b.logger.Debug("canonicalizing dataset", "investors", len(dataset), "startups", numStartups)
	err := b.parallel(ctx, len(dataset), func(i int) {
		raw := &dataset[i]
		name := strings.TrimSpace(raw.Name)
		id := core.IDFromContent(name)

		for j, rs := range raw.Startups {
			k := startupOffsets[i] + j
			startups[k] = newStartup(rs, core.NewStartupID(i, j), id, name)
			startupProfiles[k] = b.canon.Attributes(startupAttributes(rs))
		}

		investors[i] = newInvestor(raw, id, name)
		investorProfiles[i] = b.investorProfile(raw, startupProfiles[startupOffsets[i]:startupOffsets[i]+len(raw.Startups)])
	})
	if err != nil {
		return nil, err
	}

	var vb vocab.Builder
	for _, p := range investorProfiles {
		vb.Add(p)
	}
	for _, p := range startupProfiles {
		vb.Add(p)
	}
	v, err := vb.Build()
	if err != nil {
		return nil, err
	}
	encoder, err := encode.New(v)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("encoding dataset", "widths", v.Widths())
	err = b.parallel(ctx, len(dataset), func(i int) {
		investors[i].Features = encoder.Encode(investorProfiles[i])
		for k := startupOffsets[i]; k < startupOffsets[i]+len(dataset[i].Startups); k++ {
			startups[k].Features = encoder.Encode(startupProfiles[k])
		}
	})
	if err != nil {
		return nil, err
	}

	interactions := make([]core.Interaction, len(startups))
	for k := range startups {
		interactions[k] = core.Interaction{
			StartupId: startups[k].Id,
			Investors: []core.ID{startups[k].InvestorId},
		}
	}

	c, err := New(v, investors, startups, interactions, WithCanonicalizer(b.canon))
	if err != nil {
		return nil, err
	}
	b.logger.Info("catalog built",
		"investors", len(investors),
		"startups", len(startups),
		"fingerprint", c.Fingerprint())
	return c, nil
}

// parallel runs fn for every index in [0, n) on the pool and waits.
func (b *Builder) parallel(ctx context.Context, n int, fn func(i int)) error {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		if err := b.pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			fn(i)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return ctx.Err()
}

func (b *Builder) investorProfile(raw *RawInvestor, backed []core.Profile) core.Profile {
	p := b.canon.Attributes(core.Attributes{
		Industries: raw.Industries,
		Stages:     raw.Stages,
		Location:   raw.Location,
	})
	for _, d := range []core.Dimension{
		core.DimensionTeam,
		core.DimensionYear,
		core.DimensionBusinessModel,
		core.DimensionRevenueStage,
		core.DimensionCustomerSegment,
	} {
		var values []string
		for i := range backed {
			for _, v := range backed[i].Values(d) {
				if !slices.Contains(values, v) {
					values = append(values, v)
				}
			}
		}
		p[d] = values
	}
	return p
}

func startupAttributes(rs RawStartup) core.Attributes {
	return core.Attributes{
		Industries:      []string{rs.Industry},
		Stages:          []string{rs.FundingStage},
		Location:        rs.Location,
		TeamSize:        string(rs.TeamSize),
		FoundedYear:     string(rs.FoundedYear),
		BusinessModel:   rs.BusinessModel,
		RevenueStage:    rs.RevenueStage,
		CustomerSegment: rs.CustomerSegment,
	}
}

func newInvestor(raw *RawInvestor, id core.ID, name string) core.Investor {
	return core.Investor{
		Id:                  id,
		Name:                name,
		Location:            strings.TrimSpace(raw.Location),
		TicketSize:          string(raw.TicketSize),
		Industries:          slices.Clone([]string(raw.Industries)),
		Stages:              slices.Clone([]string(raw.Stages)),
		NumInvestments:      int(raw.NumInvestments),
		RecentActivityYear:  int(raw.RecentActivityYear),
		Bio:                 strings.TrimSpace(raw.Bio),
		Role:                strings.TrimSpace(raw.Role),
		SuccessRate:         string(raw.SuccessRate),
		PastInvestmentTypes: slices.Clone([]string(raw.PastInvestmentTypes)),
	}
}

func newStartup(rs RawStartup, id core.StartupID, investor core.ID, investorName string) core.Startup {
	return core.Startup{
		Id:              id,
		Name:            strings.TrimSpace(rs.Name),
		Industry:        strings.TrimSpace(rs.Industry),
		Location:        strings.TrimSpace(rs.Location),
		FundingStage:    strings.TrimSpace(rs.FundingStage),
		BusinessModel:   strings.TrimSpace(rs.BusinessModel),
		RevenueStage:    strings.TrimSpace(rs.RevenueStage),
		CustomerSegment: strings.TrimSpace(rs.CustomerSegment),
		TeamSize:        string(rs.TeamSize),
		FoundedYear:     string(rs.FoundedYear),
		InvestorId:      investor,
		InvestorName:    investorName,
	}
}
