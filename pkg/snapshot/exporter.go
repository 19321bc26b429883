package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"balticwatch/pkg/storage"
)

// Vessel is one vessel's latest position in the exported document.
type Vessel struct {
	MMSI        int64   `json:"mmsi"`
	Name        string  `json:"name,omitempty"`
	Lon         float64 `json:"lon"`
	Lat         float64 `json:"lat"`
	Timestamp   string  `json:"timestamp"`
	SOG         float64 `json:"sog,omitempty"`
	COG         float64 `json:"cog,omitempty"`
	Heading     int     `json:"heading,omitempty"`
	ShipType    int     `json:"ship_type,omitempty"`
	Destination string  `json:"destination,omitempty"`
}

// Document is the exported snapshot.
type Document struct {
	Timestamp   string   `json:"timestamp"`
	VesselCount int      `json:"vessel_count"`
	Vessels     []Vessel `json:"vessels"`
}

// Exporter builds snapshot documents from the position store.
type Exporter struct {
	store  storage.Store
	path   string
	pretty bool
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewExporter creates an exporter writing to path.
func NewExporter(store storage.Store, path string, pretty bool) *Exporter {
	return &Exporter{
		store:  store,
		path:   path,
		pretty: pretty,
		logger: slog.Default().With("component", "snapshot"),
		now:    time.Now,
	}
}

// Export writes the current snapshot document to the configured path. The
// file is written to a temporary name and renamed so readers never observe a
// partial document.
func (e *Exporter) Export(ctx context.Context) error {
	doc, err := e.build(ctx)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	tmp := e.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	if err := e.Write(doc, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close snapshot file: %w", err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace snapshot file: %w", err)
	}

	e.logger.Info("snapshot exported", "path", e.path, "vessels", doc.VesselCount)
	return nil
}

// Write serializes a document to w.
func (e *Exporter) Write(doc *Document, w io.Writer) error {
	var data []byte
	var err error
	if e.pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// build assembles the document from the store's latest positions.
func (e *Exporter) build(ctx context.Context) (*Document, error) {
	latest, err := e.store.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read latest positions: %w", err)
	}

	doc := &Document{
		Timestamp:   e.now().UTC().Format(time.RFC3339),
		VesselCount: len(latest),
		Vessels:     make([]Vessel, 0, len(latest)),
	}
	for _, pos := range latest {
		doc.Vessels = append(doc.Vessels, Vessel{
			MMSI:        pos.MMSI,
			Name:        pos.Name,
			Lon:         pos.Lon,
			Lat:         pos.Lat,
			Timestamp:   pos.Timestamp.UTC().Format(time.RFC3339),
			SOG:         pos.SOG,
			COG:         pos.COG,
			Heading:     pos.Heading,
			ShipType:    pos.ShipType,
			Destination: pos.Destination,
		})
	}
	return doc, nil
}
