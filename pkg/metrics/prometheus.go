package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	setupsScored     *prometheus.CounterVec
	gateDecisions    *prometheus.CounterVec
	raterLatency     prometheus.Histogram
	errorsTotal      *prometheus.CounterVec
	releasesIngested *prometheus.CounterVec
	releasesDropped  *prometheus.CounterVec
	biasComputed     *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		setupsScored: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrater_setups_scored_total",
				Help: "Total number of setups scored, by side and confidence band",
			},
			[]string{"side", "band"},
		),
		gateDecisions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrater_gate_decisions_total",
				Help: "AI gate outcomes: consulted, skipped or disabled",
			},
			[]string{"decision"},
		),
		raterLatency: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "fxrater_rater_duration_seconds",
				Help:    "Duration of rater round-trips in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrater_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		releasesIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrater_releases_ingested_total",
				Help: "Economic releases accepted into the store",
			},
			[]string{"currency"},
		),
		releasesDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrater_releases_dropped_total",
				Help: "Economic releases rejected during normalization",
			},
			[]string{"reason"},
		),
		biasComputed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxrater_bias_computed_total",
				Help: "Fundamental bias results, by label",
			},
			[]string{"label"},
		),
	}
}

// RecordSetupScored records a completed scoring pass.
func (r *Recorder) RecordSetupScored(side, band string) {
	r.setupsScored.WithLabelValues(side, band).Inc()
}

// RecordGateDecision records whether the rater was consulted.
func (r *Recorder) RecordGateDecision(decision string) {
	r.gateDecisions.WithLabelValues(decision).Inc()
}

// RecordRaterLatency records a rater round-trip in seconds.
func (r *Recorder) RecordRaterLatency(seconds float64) {
	r.raterLatency.Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordReleaseIngested counts a stored calendar release.
func (r *Recorder) RecordReleaseIngested(currency string) {
	r.releasesIngested.WithLabelValues(currency).Inc()
}

// RecordReleaseDropped counts a rejected calendar release.
func (r *Recorder) RecordReleaseDropped(reason string) {
	r.releasesDropped.WithLabelValues(reason).Inc()
}

// RecordBiasComputed counts a fundamental bias result.
func (r *Recorder) RecordBiasComputed(label string) {
	r.biasComputed.WithLabelValues(label).Inc()
}
