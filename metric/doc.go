// Package metric exports engine events of the quantities package to
// Prometheus.
//
//	reg := prometheus.NewRegistry()
//	collector, _ := metric.NewPrometheusCollector(reg, metric.WithNamespace("app"))
//	quantities.Configure(quantities.WithMetricsCollector(collector))
package metric
