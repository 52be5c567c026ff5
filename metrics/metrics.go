// Package metrics exports recommendation and catalog metrics in the
// Prometheus format.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/poiesic/venturematch/catalog"
	"github.com/poiesic/venturematch/core"
	"github.com/poiesic/venturematch/recommend"
)

const namespace = "venturematch"

// Outcome label values.
const (
	outcomeSuccess  = "success"
	outcomeError    = "error"
	outcomeCanceled = "canceled"
)

// Observer implements recommend.Monitor on a dedicated Prometheus registry
// and also records catalog builds and reloads.
type Observer struct {
	registry *prometheus.Registry

	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	results    *prometheus.HistogramVec
	inFlight   prometheus.Gauge
	candidates *prometheus.CounterVec
	retained   *prometheus.CounterVec

	builds           *prometheus.CounterVec
	buildLatency     prometheus.Histogram
	catalogEntities  *prometheus.GaugeVec
	catalogLabels    *prometheus.GaugeVec
	catalogTimestamp prometheus.Gauge
}

var _ recommend.Monitor = (*Observer)(nil)

// NewObserver creates an Observer with its own registry.
func NewObserver() *Observer {
	o := &Observer{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Total recommendation requests by strategy and outcome",
		}, []string{"type", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Recommendation latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to ~26s
		}, []string{"type"}),
		results: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_results",
			Help:      "Number of records returned per recommendation",
			Buckets:   prometheus.LinearBuckets(0, 2, 11),
		}, []string{"type"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "recommendations_in_flight",
			Help:      "Recommendations currently being computed",
		}),
		candidates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scored_candidates_total",
			Help:      "Candidates scored per scoring stage",
		}, []string{"stage"}),
		retained: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retained_candidates_total",
			Help:      "Candidates kept after thresholding per scoring stage",
		}, []string{"stage"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_builds_total",
			Help:      "Catalog builds and loads by source and outcome",
		}, []string{"source", "outcome"}),
		buildLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_build_duration_seconds",
			Help:      "Catalog build or load latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		}),
		catalogEntities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_entities",
			Help:      "Entities in the active catalog",
		}, []string{"kind"}),
		catalogLabels: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_vocabulary_labels",
			Help:      "Vocabulary size of the active catalog per dimension",
		}, []string{"dimension"}),
		catalogTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_activated_timestamp_seconds",
			Help:      "Unix time the active catalog was installed",
		}),
	}

	o.registry.MustRegister(
		o.requests,
		o.latency,
		o.results,
		o.inFlight,
		o.candidates,
		o.retained,
		o.builds,
		o.buildLatency,
		o.catalogEntities,
		o.catalogLabels,
		o.catalogTimestamp,
	)
	return o
}

// Registry returns the registry holding every metric of o.
func (o *Observer) Registry() *prometheus.Registry {
	return o.registry
}

// Start implements recommend.Monitor.
func (o *Observer) Start(_ *core.Query) {
	o.inFlight.Inc()
}

// AfterScoring implements recommend.Monitor.
func (o *Observer) AfterScoring(stage recommend.Stage, candidates, retained int) {
	o.candidates.WithLabelValues(string(stage)).Add(float64(candidates))
	o.retained.WithLabelValues(string(stage)).Add(float64(retained))
}

// Finish implements recommend.Monitor.
func (o *Observer) Finish(query *core.Query, response *core.Response, elapsed time.Duration, err error) {
	o.inFlight.Dec()

	typ := "invalid"
	if query != nil {
		if _, perr := core.ParseRecommenderType(string(query.Type)); perr == nil {
			typ = string(query.Type)
		}
	}

	o.requests.WithLabelValues(typ, outcome(err)).Inc()
	o.latency.WithLabelValues(typ).Observe(elapsed.Seconds())
	if err == nil && response != nil {
		o.results.WithLabelValues(typ).Observe(float64(response.Len()))
	}
}

// ObserveBuild records a catalog build or load. Source names where the
// catalog came from, e.g. "dataset" or "snapshot".
func (o *Observer) ObserveBuild(source string, elapsed time.Duration, err error) {
	o.builds.WithLabelValues(source, outcome(err)).Inc()
	if err == nil {
		o.buildLatency.Observe(elapsed.Seconds())
	}
}

// ObserveCatalog records the shape of a newly installed catalog.
func (o *Observer) ObserveCatalog(c *catalog.Catalog) {
	if c == nil {
		return
	}
	o.catalogEntities.WithLabelValues("investors").Set(float64(len(c.Investors())))
	o.catalogEntities.WithLabelValues("startups").Set(float64(len(c.Startups())))
	o.catalogEntities.WithLabelValues("interactions").Set(float64(len(c.Interactions())))
	for _, d := range core.Dimensions {
		o.catalogLabels.WithLabelValues(d.String()).Set(float64(c.Vocabulary().Size(d)))
	}
	o.catalogTimestamp.SetToCurrentTime()
}

// WriteToTextfile writes every metric of o to path in the text exposition
// format, for collection by node_exporter's textfile collector.
func (o *Observer) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, o.registry)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeError
	}
}
