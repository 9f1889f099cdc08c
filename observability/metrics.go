package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the calculator.
type Metrics struct {
	// Registry owns these metrics; the /metrics endpoint serves it.
	Registry *prometheus.Registry

	calcDuration  *prometheus.HistogramVec
	decisions     *prometheus.CounterVec
	storeErrors   *prometheus.CounterVec
	listingFields *prometheus.CounterVec
}

// NewMetrics registers every metric in a private registry, so it can be
// called more than once (tests build one per router).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		calcDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propcalc_calculation_duration_seconds",
				Help:    "Duration of engine calculations by operation.",
				Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025},
			},
			[]string{"operation"},
		),
		decisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propcalc_decisions_total",
				Help: "Keep-vs-sell recommendations by outcome.",
			},
			[]string{"decision"},
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propcalc_snapshot_store_errors_total",
				Help: "Snapshot store failures by operation.",
			},
			[]string{"op"},
		),
		listingFields: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propcalc_listing_fields_total",
				Help: "Fields extracted from listing markup by confidence.",
			},
			[]string{"confidence"},
		),
	}
}

// RecordCalculation records how long an engine call took.
func (m *Metrics) RecordCalculation(operation string, d time.Duration) {
	m.calcDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrDecision counts a recommendation.
func (m *Metrics) IncrDecision(decision string) {
	m.decisions.WithLabelValues(decision).Inc()
}

// IncrStoreError counts a snapshot store failure.
func (m *Metrics) IncrStoreError(op string) {
	m.storeErrors.WithLabelValues(op).Inc()
}

// IncrListingField counts an extracted listing field.
func (m *Metrics) IncrListingField(confidence string) {
	m.listingFields.WithLabelValues(confidence).Inc()
}
