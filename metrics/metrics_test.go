package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/venturematch/catalog"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/recommend"
)

func TestObserver_RecordsRecommendation(t *testing.T) {
	o := NewObserver()
	q := &core.Query{Type: core.RecommenderContent}

	o.Start(q)
	assert.Equal(t, 1.0, testutil.ToFloat64(o.inFlight))

	o.AfterScoring(recommend.StageContent, 10, 4)
	o.Finish(q, &core.Response{
		Type:      core.RecommenderContent,
		Investors: make([]core.InvestorMatch, 4),
	}, 5*time.Millisecond, nil)

	assert.Equal(t, 0.0, testutil.ToFloat64(o.inFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.requests.WithLabelValues("content", outcomeSuccess)))
	assert.Equal(t, 10.0, testutil.ToFloat64(o.candidates.WithLabelValues("content")))
	assert.Equal(t, 4.0, testutil.ToFloat64(o.retained.WithLabelValues("content")))
	assert.Equal(t, 1, testutil.CollectAndCount(o.latency))
	assert.Equal(t, 1, testutil.CollectAndCount(o.results))
}

func TestObserver_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		query   *core.Query
		err     error
		typ     string
		outcome string
	}{
		{"success", &core.Query{Type: core.RecommenderHybrid}, nil, "hybrid", outcomeSuccess},
		{"canceled", &core.Query{Type: core.RecommenderHybrid}, context.Canceled, "hybrid", outcomeCanceled},
		{"deadline", &core.Query{Type: core.RecommenderContent}, context.DeadlineExceeded, "content", outcomeCanceled},
		{"unknown type", &core.Query{Type: "popularity"}, core.ErrUnknownRecommender, "invalid", outcomeError},
		{"nil query", nil, errors.New("boom"), "invalid", outcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewObserver()
			o.Start(tt.query)
			o.Finish(tt.query, nil, time.Millisecond, tt.err)

			assert.Equal(t, 1.0, testutil.ToFloat64(o.requests.WithLabelValues(tt.typ, tt.outcome)))
			assert.Equal(t, 0, testutil.CollectAndCount(o.results))
		})
	}
}

func TestObserver_Catalog(t *testing.T) {
	f, err := os.Open("../catalog/testdata/investors.json")
	require.NoError(t, err)
	defer f.Close()
	dataset, err := catalog.LoadDataset(f)
	require.NoError(t, err)

	b, err := catalog.NewBuilder()
	require.NoError(t, err)
	defer b.Release()
	c, err := b.Build(context.Background(), dataset)
	require.NoError(t, err)

	o := NewObserver()
	o.ObserveBuild("dataset", 20*time.Millisecond, nil)
	o.ObserveBuild("snapshot", 0, errors.New("corrupt"))
	o.ObserveCatalog(c)
	o.ObserveCatalog(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(o.builds.WithLabelValues("dataset", outcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(o.builds.WithLabelValues("snapshot", outcomeError)))
	assert.Equal(t, float64(len(c.Investors())), testutil.ToFloat64(o.catalogEntities.WithLabelValues("investors")))
	assert.Equal(t, float64(len(c.Startups())), testutil.ToFloat64(o.catalogEntities.WithLabelValues("startups")))
	assert.Equal(t, float64(c.Vocabulary().Size(core.DimensionTeam)), testutil.ToFloat64(o.catalogLabels.WithLabelValues("team")))
	assert.Greater(t, testutil.ToFloat64(o.catalogTimestamp), 0.0)
}

func TestObserver_WriteToTextfile(t *testing.T) {
	o := NewObserver()
	q := &core.Query{Type: core.RecommenderStartupSimilarity}
	o.Start(q)
	o.Finish(q, &core.Response{Type: core.RecommenderStartupSimilarity}, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "venturematch.prom")
	require.NoError(t, o.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `venturematch_recommendations_total{outcome="success",type="startup_similarity"} 1`), text)
	assert.Contains(t, text, "venturematch_recommendation_duration_seconds_bucket")
}

func TestObserver_ImplementsMonitor(t *testing.T) {
	var m recommend.Monitor = NewObserver()
	assert.NotNil(t, m)
}
