// Package metrics exposes Prometheus instrumentation for the planning
// pipeline. Metrics are registered once at package init via promauto and
// scraped from the /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	stageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderwise_stage_total",
			Help: "Count of pipeline stage executions by stage and outcome.",
		},
		[]string{"stage", "outcome"},
	)

	stageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wanderwise_stage_duration_seconds",
			Help:    "Latency of pipeline stage executions, including retries.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"stage"},
	)

	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wanderwise_plan_runs_total",
			Help: "Count of full planning runs by outcome.",
		},
		[]string{"outcome"},
	)
)

// Recorder observes stage and run outcomes. A nil *Recorder is a no-op so
// callers never need to guard their instrumentation sites.
type Recorder struct{}

// NewRecorder returns a Recorder backed by the package-level collectors.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// ObserveStage records one stage execution with its outcome and duration.
func (r *Recorder) ObserveStage(stage string, err error, started time.Time) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	stageTotal.WithLabelValues(stage, outcome).Inc()
	stageDuration.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

// ObserveRun records the outcome of a full planning run.
func (r *Recorder) ObserveRun(err error) {
	if r == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	runTotal.WithLabelValues(outcome).Inc()
}
