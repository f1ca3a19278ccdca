package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/quantities"
)

var _ quantities.MetricsCollector = (*PrometheusCollector)(nil)

type options struct {
	namespace string
	buckets   []float64
}

// Option configures a PrometheusCollector.
type Option func(*options)

// WithNamespace prefixes every metric name with ns.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithBuckets sets the histogram buckets of the operation latency, in
// seconds.
func WithBuckets(b []float64) Option {
	return func(o *options) {
		o.buckets = b
	}
}

// PrometheusCollector implements quantities.MetricsCollector with
// Prometheus counters and a latency histogram.
type PrometheusCollector struct {
	opLatency   *prometheus.HistogramVec
	cowCopies   prometheus.Counter
	cowCells    prometheus.Counter
	conversions *prometheus.CounterVec
}

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg selects prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer, optFns ...Option) (*PrometheusCollector, error) {
	o := options{
		namespace: "quantities",
		buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10), // 100ns .. ~26ms
	}
	for _, fn := range optFns {
		fn(&o)
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of container operations",
			Buckets:   o.buckets,
		}, []string{"op", "status"}),
		cowCopies: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "copy_on_write_total",
			Help:      "Storage duplications forced by a write to shared storage",
		}),
		cowCells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "copy_on_write_cells_total",
			Help:      "Cells copied by copy-on-write duplications",
		}),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "storage_conversions_total",
			Help:      "Changes of storage representation",
		}, []string{"from", "to"}),
	}

	for _, m := range []prometheus.Collector{c.opLatency, c.cowCopies, c.cowCells, c.conversions} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordOperation implements quantities.MetricsCollector.
func (c *PrometheusCollector) RecordOperation(op string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.opLatency.WithLabelValues(op, status).Observe(duration.Seconds())
}

// RecordCopyOnWrite implements quantities.MetricsCollector.
func (c *PrometheusCollector) RecordCopyOnWrite(length int) {
	c.cowCopies.Inc()
	c.cowCells.Add(float64(length))
}

// RecordConversion implements quantities.MetricsCollector.
func (c *PrometheusCollector) RecordConversion(from, to quantities.StorageType, _ int) {
	c.conversions.WithLabelValues(from.String(), to.String()).Inc()
}
