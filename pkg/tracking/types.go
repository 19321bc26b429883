package tracking

import "time"

// PositionRecord is one reported vessel position. Records are produced by
// the collector, persisted by the position store, and never mutated.
type PositionRecord struct {
	// MMSI is the vessel's numeric identifier. Its leading three digits
	// encode a nationality code used by the flagged retention variant.
	MMSI int64 `json:"mmsi"`

	// Name is the vessel name from the metadata feed, when known.
	Name string `json:"name,omitempty"`

	// Lon and Lat are WGS84 degrees, used as planar coordinates.
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`

	// Timestamp is the report time in UTC. Input is not guaranteed sorted.
	Timestamp time.Time `json:"timestamp"`

	// Voyage data carried through from the AIS feed.
	SOG         float64 `json:"sog,omitempty"`
	COG         float64 `json:"cog,omitempty"`
	Heading     int     `json:"heading,omitempty"`
	NavStat     int     `json:"nav_stat,omitempty"`
	ShipType    int     `json:"ship_type,omitempty"`
	Destination string  `json:"destination,omitempty"`
	Draught     float64 `json:"draught,omitempty"`
	PosAcc      bool    `json:"pos_acc,omitempty"`

	// Jurisdiction is the precomputed jurisdiction code for this position,
	// or nil when it has not been classified. The aggregator classifies
	// nil records itself and uses stored codes as-is.
	Jurisdiction *string `json:"jurisdiction,omitempty"`
}

// VesselEvidence is the per-vessel jurisdiction-visit evidence for one
// analysis run. It is recomputed fresh every run and never persisted.
type VesselEvidence struct {
	// MMSI is the vessel identifier.
	MMSI int64

	// Records is the number of position records inside the full window.
	Records int

	// Visited holds the distinct named jurisdiction codes seen in the
	// full window.
	Visited map[string]struct{}

	// International is true when at least one position in the full window
	// was unclassified (international waters or unmapped area).
	International bool

	// RecentRecords, VisitedRecent, and InternationalRecent mirror the
	// fields above restricted to the recent sub-window. They are only
	// populated when the aggregation was given a recent window.
	RecentRecords       int
	VisitedRecent       map[string]struct{}
	InternationalRecent bool
}

// NamedCount returns the number of distinct named jurisdictions visited in
// the full window. International waters never count here.
func (e *VesselEvidence) NamedCount() int {
	return len(e.Visited)
}

// DistinctRecentCount returns the number of distinct jurisdiction values in
// the recent sub-window, counting international waters as one distinct
// value.
func (e *VesselEvidence) DistinctRecentCount() int {
	n := len(e.VisitedRecent)
	if e.InternationalRecent {
		n++
	}
	return n
}

// VisitedHas reports whether code appears in the full-window visited set.
func (e *VesselEvidence) VisitedHas(code string) bool {
	_, ok := e.Visited[code]
	return ok
}
