// Package recommend ranks investors and startups against a query.
//
// Four strategies are supported:
//   - content: investors scored directly against the query
//   - collaborative: investors credited with the scores of startups they backed
//   - hybrid: a weighted blend of the two, seeded by collaborative results
//   - startup_similarity: startups scored against the query, without threshold
//
// All rankings are stable: equal scores keep catalog load order (hybrid keeps
// collaborative order). Scores are rounded to three decimals only in the
// returned records.
package recommend

import (
	"context"
	"log/slog"
	"time"

	"github.com/poiesic/venturematch/catalog"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/scoring"
)

// Source supplies the catalog a recommendation reads. catalog.Holder
// implements it.
type Source interface {
	Load() (*catalog.Catalog, error)
}

// Recommender produces recommendations over the current catalog.
// It is safe for concurrent use.
type Recommender struct {
	source  Source
	config  Config
	scorer  *scoring.Scorer
	monitor Monitor
	logger  *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(r *Recommender) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.config = cfg
		return nil
	}
}

// WithMonitor sets the monitor notified on every recommendation.
// Default is a no-op monitor.
func WithMonitor(m Monitor) Option {
	return func(r *Recommender) error {
		if m == nil {
			m = &noopMonitor{}
		}
		r.monitor = m
		return nil
	}
}

// NewRecommender creates a Recommender reading catalogs from source.
func NewRecommender(source Source, opts ...Option) (*Recommender, error) {
	if source == nil {
		return nil, ErrCatalogRequired
	}

	r := &Recommender{
		source:  source,
		config:  DefaultConfig(),
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	scorer, err := scoring.New(r.config.Weights)
	if err != nil {
		return nil, err
	}
	r.scorer = scorer
	return r, nil
}

// Config returns the active configuration.
func (r *Recommender) Config() Config {
	return r.config
}

// Recommend ranks candidates for q using the configured monitor.
func (r *Recommender) Recommend(ctx context.Context, q *core.Query) (*core.Response, error) {
	return r.RecommendWithMonitor(ctx, q, r.monitor)
}

// RecommendWithMonitor ranks candidates for q, reporting progress to monitor.
//
// It fails only for an unknown recommender type, a missing catalog or a
// cancelled context. No matches is an empty response, not an error.
func (r *Recommender) RecommendWithMonitor(ctx context.Context, q *core.Query, monitor Monitor) (resp *core.Response, err error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if q == nil {
		q = &core.Query{}
	}

	started := time.Now()
	monitor.Start(q)
	defer func() {
		monitor.Finish(q, resp, time.Since(started), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kind, err := core.ParseRecommenderType(string(q.Type))
	if err != nil {
		return nil, err
	}

	cat, err := r.source.Load()
	if err != nil {
		r.logger.Error("error loading catalog", "err", err)
		return nil, err
	}

	bundle := cat.Encoder().Encode(cat.Canonicalizer().Attributes(q.Attributes))
	plan := r.scorer.Plan(&bundle)
	k := q.EffectiveLimit()

	r.logger.Debug("recommending",
		"type", kind,
		"limit", k,
		"activeQuery", plan.Active(),
		"catalog", cat.Fingerprint())

	resp = &core.Response{Type: kind}
	switch kind {
	case core.RecommenderContent:
		resp.Investors = investorMatches(cat, r.content(cat, plan, k, monitor))
	case core.RecommenderCollaborative:
		resp.Investors = investorMatches(cat, r.collaborative(cat, plan, k, monitor))
	case core.RecommenderHybrid:
		activity, investment := q.BlendWeights()
		resp.Investors = investorMatches(cat, r.hybrid(cat, plan, k, activity, investment, monitor))
	case core.RecommenderStartupSimilarity:
		resp.Startups = startupMatches(cat, r.startups(cat, plan, k, monitor))
	}
	return resp, nil
}

func (r *Recommender) content(cat *catalog.Catalog, plan *scoring.Plan, k int, monitor Monitor) []candidate {
	investors := cat.Investors()
	threshold := r.config.Threshold
	cands := scoreAll(len(investors),
		func(i int) float64 { return plan.Score(&investors[i].Features) },
		func(s float64) bool { return s >= threshold })
	monitor.AfterScoring(StageContent, len(investors), len(cands))
	return rank(cands, k)
}

func (r *Recommender) collaborative(cat *catalog.Catalog, plan *scoring.Plan, k int, monitor Monitor) []candidate {
	startups := cat.Startups()
	threshold := r.config.Threshold
	scored := scoreAll(len(startups),
		func(i int) float64 { return plan.Score(&startups[i].Features) },
		func(s float64) bool { return s >= threshold })

	cands := accumulate(scored,
		func(i int) []core.ID { return cat.Backers(startups[i].Id) },
		cat.InvestorPosition,
		len(cat.Investors()),
		threshold)
	monitor.AfterScoring(StageCollaborative, len(startups), len(cands))
	return rank(cands, k)
}

func (r *Recommender) hybrid(cat *catalog.Catalog, plan *scoring.Plan, k int, activity, investment float64, monitor Monitor) []candidate {
	pool := k * r.config.HybridExpansion
	content := r.content(cat, plan, pool, monitor)
	collab := r.collaborative(cat, plan, pool, monitor)

	cands := blend(content, collab, activity, investment)
	monitor.AfterScoring(StageHybrid, len(content)+len(collab), len(cands))
	return rank(cands, k)
}

func (r *Recommender) startups(cat *catalog.Catalog, plan *scoring.Plan, k int, monitor Monitor) []candidate {
	startups := cat.Startups()
	cands := scoreAll(len(startups),
		func(i int) float64 { return plan.Score(&startups[i].Features) },
		func(float64) bool { return true })
	monitor.AfterScoring(StageStartups, len(startups), len(cands))
	return rank(cands, k)
}

func investorMatches(cat *catalog.Catalog, cands []candidate) []core.InvestorMatch {
	investors := cat.Investors()
	out := make([]core.InvestorMatch, 0, len(cands))
	for _, c := range cands {
		inv := &investors[c.pos]
		out = append(out, core.InvestorMatch{
			Id:                  inv.Id,
			Name:                inv.Name,
			Location:            inv.Location,
			Score:               core.RoundScore(c.score),
			Bio:                 inv.Bio,
			PastInvestmentTypes: inv.PastInvestmentTypes,
			InvestmentStages:    inv.Stages,
			TicketSize:          inv.TicketSize,
			RecentActivityYear:  inv.RecentActivityYear,
			NumInvestments:      inv.NumInvestments,
		})
	}
	return out
}

func startupMatches(cat *catalog.Catalog, cands []candidate) []core.StartupMatch {
	startups := cat.Startups()
	out := make([]core.StartupMatch, 0, len(cands))
	for _, c := range cands {
		s := &startups[c.pos]
		out = append(out, core.StartupMatch{
			Id:           s.Id,
			Name:         s.Name,
			Industry:     s.Industry,
			Location:     s.Location,
			FundingStage: s.FundingStage,
			Score:        core.RoundScore(c.score),
			InvestorName: s.InvestorName,
		})
	}
	return out
}
