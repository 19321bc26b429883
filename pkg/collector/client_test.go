package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const locationsFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [24.95, 60.16]},
			"properties": {
				"mmsi": 230123456,
				"sog": 12.3,
				"cog": 181.5,
				"heading": 180,
				"navStat": 0,
				"posAcc": true,
				"timestampExternal": 1756382400000
			}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [18.07, 59.33]},
			"properties": {
				"mmsi": 265987000,
				"sog": 0.1,
				"cog": 0,
				"heading": 511,
				"navStat": 5,
				"posAcc": false,
				"timestampExternal": 1756382460000
			}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [25.0, 60.0]},
			"properties": {"sog": 1.0}
		}
	]
}`

const vesselsFixture = `[
	{"mmsi": 230123456, "name": "AURORA", "shipType": 70, "destination": "HELSINKI", "draught": 6.7},
	{"mmsi": 265987000, "name": "VEGA", "shipType": 60, "destination": "STOCKHOLM", "draught": 5.1}
]`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(locationsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write([]byte(locationsFixture))
	})
	mux.HandleFunc(vesselsPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(vesselsFixture))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchLocations(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, 5*time.Second)
	defer client.Close()

	positions, err := client.FetchLocations(context.Background())
	if err != nil {
		t.Fatalf("FetchLocations: %v", err)
	}
	// The feature without an MMSI is skipped.
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}

	first := positions[0]
	if first.MMSI != 230123456 {
		t.Errorf("MMSI = %d, want 230123456", first.MMSI)
	}
	if first.Lon != 24.95 || first.Lat != 60.16 {
		t.Errorf("coordinates = (%v, %v), want (24.95, 60.16)", first.Lon, first.Lat)
	}
	wantTS := time.UnixMilli(1756382400000).UTC()
	if !first.Timestamp.Equal(wantTS) {
		t.Errorf("timestamp = %v, want %v", first.Timestamp, wantTS)
	}
	if first.Timestamp.Location() != time.UTC {
		t.Error("timestamp not in UTC")
	}
	if first.SOG != 12.3 || first.Heading != 180 || first.NavStat != 0 || !first.PosAcc {
		t.Errorf("voyage fields = sog %v heading %d navstat %d posacc %v",
			first.SOG, first.Heading, first.NavStat, first.PosAcc)
	}
}

func TestFetchVesselMetadata(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, 5*time.Second)
	defer client.Close()

	meta, err := client.FetchVesselMetadata(context.Background())
	if err != nil {
		t.Fatalf("FetchVesselMetadata: %v", err)
	}
	if len(meta) != 2 {
		t.Fatalf("got %d vessels, want 2", len(meta))
	}
	aurora := meta[230123456]
	if aurora.Name != "AURORA" || aurora.ShipType != 70 || aurora.Destination != "HELSINKI" {
		t.Errorf("metadata = %+v", aurora)
	}
}

func TestFetchLocationsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	defer client.Close()

	_, err := client.FetchLocations(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not an APIError", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", apiErr.StatusCode)
	}
}

func TestFetchLocationsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not geojson"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	defer client.Close()

	_, err := client.FetchLocations(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error %T is not a ParseError", err)
	}
}
