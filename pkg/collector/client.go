package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"balticwatch/pkg/tracking"
)

const (
	locationsPath = "/api/ais/v1/locations"
	vesselsPath   = "/api/ais/v1/vessels"
)

// VesselMeta is static vessel metadata from the vessels endpoint.
type VesselMeta struct {
	MMSI        int64   `json:"mmsi"`
	Name        string  `json:"name"`
	ShipType    int     `json:"shipType"`
	Destination string  `json:"destination"`
	Draught     float64 `json:"draught"`
}

// Client talks to the Digitraffic AIS API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates an AIS API client with connection pooling.
func NewClient(baseURL string, timeout time.Duration) *Client {
	transport := &http.Transport{
		MaxIdleConns:      10,
		IdleConnTimeout:   90 * time.Second,
		ForceAttemptHTTP2: true,
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		logger: slog.Default().With("component", "collector.client"),
	}
}

// FetchLocations fetches the current position snapshot. The endpoint serves
// a GeoJSON feature collection of point features; features without a point
// geometry or an MMSI are skipped.
func (c *Client) FetchLocations(ctx context.Context) ([]*tracking.PositionRecord, error) {
	body, err := c.get(ctx, locationsPath)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, NewParseError(locationsPath, err)
	}

	positions := make([]*tracking.PositionRecord, 0, len(fc.Features))
	skipped := 0
	for _, feature := range fc.Features {
		point, ok := feature.Geometry.(orb.Point)
		if !ok {
			skipped++
			continue
		}
		mmsi := int64(feature.Properties.MustFloat64("mmsi", 0))
		if mmsi <= 0 {
			skipped++
			continue
		}

		ts := int64(feature.Properties.MustFloat64("timestampExternal", 0))
		if ts == 0 {
			ts = time.Now().UnixMilli()
		}

		positions = append(positions, &tracking.PositionRecord{
			MMSI:      mmsi,
			Lon:       point.Lon(),
			Lat:       point.Lat(),
			Timestamp: time.UnixMilli(ts).UTC(),
			SOG:       feature.Properties.MustFloat64("sog", 0),
			COG:       feature.Properties.MustFloat64("cog", 0),
			Heading:   feature.Properties.MustInt("heading", 0),
			NavStat:   feature.Properties.MustInt("navStat", 0),
			PosAcc:    feature.Properties.MustBool("posAcc", false),
		})
	}

	c.logger.Debug("fetched position snapshot",
		"features", len(fc.Features),
		"positions", len(positions),
		"skipped", skipped,
	)
	return positions, nil
}

// FetchVesselMetadata fetches static vessel metadata keyed by MMSI.
func (c *Client) FetchVesselMetadata(ctx context.Context) (map[int64]VesselMeta, error) {
	body, err := c.get(ctx, vesselsPath)
	if err != nil {
		return nil, err
	}

	var vessels []VesselMeta
	if err := json.Unmarshal(body, &vessels); err != nil {
		return nil, NewParseError(vesselsPath, err)
	}

	meta := make(map[int64]VesselMeta, len(vessels))
	for _, v := range vessels {
		meta[v.MMSI] = v
	}
	return meta, nil
}

// get performs a GET and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewParseError(path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, NewAPIError(path, resp.StatusCode, string(body))
	}
	return body, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.client.CloseIdleConnections()
}
