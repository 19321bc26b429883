package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"balticwatch/pkg/config"
)

// Collector owns all Prometheus metrics for balticwatch.
type Collector struct {
	registry *prometheus.Registry

	// Collection metrics
	collectionCycles   *prometheus.CounterVec
	positionsCollected prometheus.Counter
	collectionDuration prometheus.Histogram

	// Retention metrics
	retentionRuns *prometheus.CounterVec
	verdicts      *prometheus.CounterVec
	rowsDeleted   prometheus.Counter
	runDuration   prometheus.Histogram

	// Boundary metrics
	boundaryFeatures prometheus.Gauge
	classifications  *prometheus.CounterVec
}

// NewCollector creates a metrics collector registered on registry. A nil
// registry creates a fresh one.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	namespace := "balticwatch"
	if cfg != nil && cfg.Namespace != "" {
		namespace = cfg.Namespace
	}

	c := &Collector{
		registry: registry,
		collectionCycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "cycles_total",
			Help:      "Collection cycles by status.",
		}, []string{"status"}),
		positionsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "positions_total",
			Help:      "Position records ingested.",
		}),
		collectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "collector",
			Name:      "cycle_duration_seconds",
			Help:      "Collection cycle duration.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		retentionRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retention",
			Name:      "runs_total",
			Help:      "Retention analysis runs by status.",
		}, []string{"status", "variant"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retention",
			Name:      "verdicts_total",
			Help:      "Vessel verdicts by disposition.",
		}, []string{"disposition"}),
		rowsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "retention",
			Name:      "rows_deleted_total",
			Help:      "Position rows removed by the executor.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "retention",
			Name:      "run_duration_seconds",
			Help:      "Retention run duration.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		boundaryFeatures: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "territory",
			Name:      "boundary_features",
			Help:      "Loaded boundary features.",
		}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "territory",
			Name:      "classifications_total",
			Help:      "Position classifications by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(
		c.collectionCycles,
		c.positionsCollected,
		c.collectionDuration,
		c.retentionRuns,
		c.verdicts,
		c.rowsDeleted,
		c.runDuration,
		c.boundaryFeatures,
		c.classifications,
	)
	return c
}

// RecordCollection records one collection cycle.
func (c *Collector) RecordCollection(positions int, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.collectionCycles.WithLabelValues(status).Inc()
	if err == nil {
		c.positionsCollected.Add(float64(positions))
	}
	c.collectionDuration.Observe(duration.Seconds())
}

// RecordRetentionRun records one retention analysis run.
func (c *Collector) RecordRetentionRun(variant string, kept, deleted int, rows int64, duration time.Duration, err error) {
	if c == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.retentionRuns.WithLabelValues(status, variant).Inc()
	c.verdicts.WithLabelValues("keep").Add(float64(kept))
	c.verdicts.WithLabelValues("delete").Add(float64(deleted))
	c.rowsDeleted.Add(float64(rows))
	c.runDuration.Observe(duration.Seconds())
}

// RecordClassification records one position classification.
func (c *Collector) RecordClassification(named bool) {
	if c == nil {
		return
	}
	result := "international"
	if named {
		result = "named"
	}
	c.classifications.WithLabelValues(result).Inc()
}

// SetBoundaryFeatures records the size of the loaded boundary set.
func (c *Collector) SetBoundaryFeatures(n int) {
	if c == nil {
		return
	}
	c.boundaryFeatures.Set(float64(n))
}

// Handler returns the /metrics HTTP handler for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
