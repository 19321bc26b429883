// Package snapshot exports the latest known position of every vessel as a
// JSON document for map frontends and downstream consumers.
package snapshot
