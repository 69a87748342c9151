package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the compensation core.
type Metrics struct {
	RecordsCreated   prometheus.Counter
	RecordsGenerated prometheus.Counter
	QueriesServed    prometheus.Counter
	QueryDuration    prometheus.Histogram
	AggregationsRun  prometheus.Counter
	StatsCacheHits   prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payscope_records_created_total",
			Help: "Total number of compensation records submitted",
		}),
		RecordsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payscope_records_generated_total",
			Help: "Total number of synthetic compensation records generated",
		}),
		QueriesServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payscope_queries_served_total",
			Help: "Total number of record queries served",
		}),
		QueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "payscope_query_duration_seconds",
			Help:    "Record query latency",
			Buckets: prometheus.DefBuckets,
		}),
		AggregationsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payscope_aggregations_total",
			Help: "Total number of aggregation requests served",
		}),
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "payscope_stats_cache_hits_total",
			Help: "Aggregation requests answered from the cache",
		}),
	}
}

// IncrementRecordsCreated increments the submitted-records counter by 1.
func (m *Metrics) IncrementRecordsCreated() {
	m.RecordsCreated.Inc()
}

// AddRecordsGenerated adds n to the generated-records counter.
func (m *Metrics) AddRecordsGenerated(n int) {
	m.RecordsGenerated.Add(float64(n))
}

// ObserveQuery records one served query and its latency.
func (m *Metrics) ObserveQuery(d time.Duration) {
	m.QueriesServed.Inc()
	m.QueryDuration.Observe(d.Seconds())
}

// IncrementAggregations increments the aggregation counter by 1.
func (m *Metrics) IncrementAggregations() {
	m.AggregationsRun.Inc()
}

// IncrementStatsCacheHits increments the cache-hit counter by 1.
func (m *Metrics) IncrementStatsCacheHits() {
	m.StatsCacheHits.Inc()
}
