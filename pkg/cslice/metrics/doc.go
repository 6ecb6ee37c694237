// Package metrics provides types.MetricsCollector implementations: a no-op
// collector (the default), a Prometheus collector, and in-process counters
// for callers that want numbers without a metrics backend.
package metrics
