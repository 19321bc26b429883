package territory

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// labelKeys are the candidate property keys for a feature's jurisdiction
// name, in priority order. The first key with a non-empty string value wins.
var labelKeys = []string{
	"TERRITORY1",
	"territory1",
	"SOVEREIGN1",
	"sovereign1",
	"Country",
	"geoname",
	"NAME",
	"name",
}

// Store holds the ordered set of boundary features. The order is the file
// order of the source feature collection and is the classifier's tie-break:
// the first matching feature wins.
//
// The store is constructed once by the process entry point and passed by
// handle to the classifier and aggregator. Reload replaces the feature set
// atomically; readers always see a complete set.
type Store struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	features []*BoundaryFeature
}

// LoadFromFile reads a GeoJSON feature collection from path and materializes
// the full boundary set. It returns a *LoadError when the file is missing or
// malformed, or when it yields no usable boundary features.
func LoadFromFile(path string) (*Store, error) {
	s := &Store{
		path:   path,
		logger: slog.Default().With("component", "territory.store"),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the boundary file and atomically replaces the feature set.
// On failure the previous feature set is kept.
func (s *Store) Reload() error {
	features, err := loadFeatures(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.features = features
	s.mu.Unlock()

	s.logger.Info("territorial boundaries loaded",
		"path", s.path,
		"feature_count", len(features),
	)
	return nil
}

// Features returns the current ordered boundary set. The returned slice must
// not be mutated.
func (s *Store) Features() []*BoundaryFeature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.features
}

// Len returns the number of loaded boundary features.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}

// Path returns the boundary file path the store was loaded from.
func (s *Store) Path() string {
	return s.path
}

func loadFeatures(path string) ([]*BoundaryFeature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewLoadError(path, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, NewLoadError(path, fmt.Errorf("parsing feature collection: %w", err))
	}

	features := make([]*BoundaryFeature, 0, len(fc.Features))
	for _, feat := range fc.Features {
		if feat == nil || feat.Geometry == nil {
			continue
		}

		var kind GeometryKind
		switch feat.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			kind = KindArea
		case orb.LineString, orb.MultiLineString:
			kind = KindLine
		default:
			// Points, collections, and other kinds carry no territory.
			continue
		}

		features = append(features, &BoundaryFeature{
			Label:    resolveLabel(feat.Properties),
			Kind:     kind,
			Geometry: feat.Geometry,
			bound:    feat.Geometry.Bound(),
		})
	}

	if len(features) == 0 {
		return nil, NewLoadError(path, fmt.Errorf("no polygon or linestring features in collection"))
	}

	return features, nil
}

// resolveLabel picks the jurisdiction name from the feature properties,
// trying the candidate keys in priority order.
func resolveLabel(props geojson.Properties) string {
	for _, key := range labelKeys {
		if v, ok := props[key].(string); ok && v != "" {
			return v
		}
	}
	return "Unknown"
}
