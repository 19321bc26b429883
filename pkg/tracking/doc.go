// Package tracking defines vessel position records and aggregates them into
// per-vessel jurisdiction-visit evidence over a lookback window.
//
// The aggregator is a pure function over an already-materialized position
// snapshot: no state is carried between runs, so repeated aggregation of the
// same input yields identical evidence.
package tracking
