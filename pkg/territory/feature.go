package territory

import "github.com/paulmach/orb"

// GeometryKind distinguishes area boundaries from line boundaries.
type GeometryKind int

const (
	// KindArea is a polygon or multi-polygon that is itself a territory.
	KindArea GeometryKind = iota

	// KindLine is a linestring or multi-linestring marking a territorial
	// boundary; points near it are attributed to its jurisdiction.
	KindLine
)

// String returns a human-readable name for the geometry kind.
func (k GeometryKind) String() string {
	switch k {
	case KindArea:
		return "area"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// BoundaryFeature is one jurisdiction boundary. It is immutable after load.
type BoundaryFeature struct {
	// Label is the jurisdiction name, "Unknown" when the source feature
	// carries no recognized name property.
	Label string

	// Kind is the geometry kind.
	Kind GeometryKind

	// Geometry is the planar boundary shape.
	Geometry orb.Geometry

	// bound is the geometry's bounding box, precomputed at load time so
	// the classifier can reject most features without a full geometric
	// test.
	bound orb.Bound
}

// Bound returns the feature's precomputed bounding box.
func (f *BoundaryFeature) Bound() orb.Bound {
	return f.bound
}
