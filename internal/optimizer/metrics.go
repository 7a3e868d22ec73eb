package optimizer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// optimizationDuration tracks the time taken for one optimizer run.
	optimizationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_optimize_duration_seconds",
		Help:    "Time taken for one job-batching optimization run",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	})

	// batchSize tracks the distribution of pending-pickup batch sizes.
	batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_optimize_pickups_count",
		Help:    "Number of pickups per optimization request",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	// suggestionCount tracks how many job suggestions each run produced.
	suggestionCount = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_optimize_suggestions_count",
		Help:    "Number of job suggestions per optimization run",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
	})

	// skippedPickups counts pickups excluded for missing coordinates.
	skippedPickups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_optimize_skipped_pickups_total",
		Help: "Total pickups skipped for missing coordinates",
	})

	// unplacedPickups counts pickups whose cluster was dropped (no farmer
	// or no rateable vehicle type).
	unplacedPickups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_optimize_unplaced_pickups_total",
		Help: "Total pickups in clusters dropped for lack of farmer or vehicle match",
	})
)

// MetricsRecorder provides methods to record optimizer metrics.
type MetricsRecorder struct{}

// NewMetricsRecorder creates a new metrics recorder.
func NewMetricsRecorder() *MetricsRecorder {
	return &MetricsRecorder{}
}

// RecordOptimizationDuration records the duration of an optimizer run.
func (m *MetricsRecorder) RecordOptimizationDuration(duration time.Duration) {
	optimizationDuration.Observe(duration.Seconds())
}

// RecordBatchSize records the number of pickups in a request.
func (m *MetricsRecorder) RecordBatchSize(size int) {
	batchSize.Observe(float64(size))
}

// RecordSuggestionCount records the number of suggestions produced.
func (m *MetricsRecorder) RecordSuggestionCount(count int) {
	suggestionCount.Observe(float64(count))
}

// RecordSkippedPickups records pickups skipped for missing coordinates.
func (m *MetricsRecorder) RecordSkippedPickups(count int) {
	skippedPickups.Add(float64(count))
}

// RecordUnplacedPickups records pickups lost to dropped clusters.
func (m *MetricsRecorder) RecordUnplacedPickups(count int) {
	unplacedPickups.Add(float64(count))
}
