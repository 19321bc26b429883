// Package territory loads territorial boundary geometries and classifies
// coordinates against them.
//
// Boundaries come from a GeoJSON feature collection holding a mix of area
// geometries (a polygon that IS the territorial waters of a jurisdiction)
// and line geometries (a line that marks the boundary of a jurisdiction,
// matched by proximity). The Store materializes the whole set at load time;
// the Classifier walks the set in file order and returns the first match.
package territory
