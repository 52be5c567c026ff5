package recommend

import (
	"time"

	"github.com/poiesic/venturematch/core"
)

// Stage identifies a scoring pass within a recommendation.
type Stage string

const (
	StageContent       Stage = "content"
	StageCollaborative Stage = "collaborative"
	StageHybrid        Stage = "hybrid"
	StageStartups      Stage = "startups"
)

// Monitor provides hooks to observe recommendations.
// Implementations must be safe for concurrent use.
type Monitor interface {
	Start(query *core.Query)
	AfterScoring(stage Stage, candidates, retained int)
	Finish(query *core.Query, response *core.Response, elapsed time.Duration, err error)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Query)                                              {}
func (n *noopMonitor) AfterScoring(_ Stage, _, _ int)                                   {}
func (n *noopMonitor) Finish(_ *core.Query, _ *core.Response, _ time.Duration, _ error) {}
