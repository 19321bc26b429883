// Package collector ingests vessel positions from the Digitraffic AIS API.
//
// A collection cycle fetches the current position snapshot and vessel
// metadata, filters positions to the configured bounding box, attributes
// each position to a jurisdiction, and stores the result in batches. Every
// cycle also writes a summary row so operators can audit feed coverage over
// time.
package collector
