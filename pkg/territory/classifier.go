package territory

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// DefaultLineProximityDeg is the default planar proximity threshold for
// line boundaries, approximating 12 nautical miles at Baltic latitudes.
const DefaultLineProximityDeg = 0.2

// Classifier attributes a coordinate to the jurisdiction of the first
// matching boundary feature. Area boundaries match by containment; line
// boundaries match when the planar distance to the line is strictly below
// the proximity threshold (a point exactly at the threshold does not match).
type Classifier struct {
	store     *Store
	threshold float64
}

// NewClassifier creates a classifier over the given boundary store. A nil
// or empty store is a construction-time error so that callers can never
// mistake a missing geometry backend for "no match". A non-positive
// threshold falls back to DefaultLineProximityDeg.
func NewClassifier(store *Store, threshold float64) (*Classifier, error) {
	if store == nil {
		return nil, fmt.Errorf("territory: classifier requires a boundary store")
	}
	if store.Len() == 0 {
		return nil, fmt.Errorf("territory: boundary store is empty")
	}
	if threshold <= 0 {
		threshold = DefaultLineProximityDeg
	}
	return &Classifier{store: store, threshold: threshold}, nil
}

// Classify returns the jurisdiction label owning the coordinate and true,
// or ("", false) when the point lies in international waters, in an
// unmapped area, or is not a valid coordinate. A malformed coordinate never
// aborts processing; it degrades to unclassified.
func (c *Classifier) Classify(lon, lat float64) (string, bool) {
	if !validCoordinate(lon, lat) {
		return "", false
	}

	point := orb.Point{lon, lat}
	for _, feature := range c.store.Features() {
		switch feature.Kind {
		case KindArea:
			if !feature.Bound().Contains(point) {
				continue
			}
			if areaContains(feature.Geometry, point) {
				return feature.Label, true
			}
		case KindLine:
			if !feature.Bound().Pad(c.threshold).Contains(point) {
				continue
			}
			if planar.DistanceFrom(feature.Geometry, point) < c.threshold {
				return feature.Label, true
			}
		}
	}

	return "", false
}

// Threshold returns the line proximity threshold in planar degrees.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

func areaContains(g orb.Geometry, point orb.Point) bool {
	switch geom := g.(type) {
	case orb.Polygon:
		return planar.PolygonContains(geom, point)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(geom, point)
	default:
		return false
	}
}

func validCoordinate(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
