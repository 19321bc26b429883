// Package metrics exposes Prometheus metrics for the collector and the
// retention pipeline.
//
// All Collector methods are safe on a nil receiver so components can run
// unmetered in tests and one-shot CLI invocations.
package metrics
