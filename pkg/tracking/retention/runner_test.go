package retention

import (
	"context"
	"errors"
	"testing"
	"time"

	"balticwatch/pkg/storage"
	"balticwatch/pkg/tracking"
)

// bandClassifier attributes positions by longitude band: west of 20 is
// Swedish waters, east of 25 Finnish, the strip between is international.
type bandClassifier struct{}

func (bandClassifier) Classify(lon, lat float64) (string, bool) {
	switch {
	case lon < 20:
		return "SE", true
	case lon >= 25:
		return "FI", true
	default:
		return "", false
	}
}

// fetchFailStore fails every read and records whether a delete was ever
// attempted.
type fetchFailStore struct {
	*storage.MemoryStore
	deleteCalled bool
}

func (s *fetchFailStore) QuerySince(ctx context.Context, since time.Time) ([]*tracking.PositionRecord, error) {
	return nil, errors.New("connection reset")
}

func (s *fetchFailStore) DeleteVessels(ctx context.Context, mmsis []int64, since *time.Time) (int64, error) {
	s.deleteCalled = true
	return s.MemoryStore.DeleteVessels(ctx, mmsis, since)
}

func pos(mmsi int64, lon, lat float64, ts time.Time) *tracking.PositionRecord {
	return &tracking.PositionRecord{MMSI: mmsi, Lon: lon, Lat: lat, Timestamp: ts}
}

func seedStore(t *testing.T, store storage.Store, positions []*tracking.PositionRecord) {
	t.Helper()
	if err := store.InsertPositions(context.Background(), positions); err != nil {
		t.Fatalf("InsertPositions: %v", err)
	}
}

func TestRunnerFetchFailureAbortsDeletion(t *testing.T) {
	store := &fetchFailStore{MemoryStore: storage.NewMemoryStore()}
	runner, err := NewRunner(store, bandClassifier{}, DefaultCrossingPolicy(), 100)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	_, err = runner.Run(context.Background())
	if err == nil {
		t.Fatal("expected error from failing fetch")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error %T is not a FetchError", err)
	}
	if store.deleteCalled {
		t.Fatal("deletion attempted after a fetch failure")
	}
}

func TestRunnerCrossingEndToEnd(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStore()

	seedStore(t, store, []*tracking.PositionRecord{
		// Vessel 100 crossed from Swedish to Finnish waters: kept.
		pos(100, 18.0, 59.0, now.Add(-10*time.Hour)),
		pos(100, 26.0, 60.0, now.Add(-2*time.Hour)),
		// Vessel 200 sat in international waters: deleted.
		pos(200, 22.0, 59.0, now.Add(-8*time.Hour)),
		pos(200, 22.1, 59.1, now.Add(-4*time.Hour)),
		// Vessel 200 also has history older than the window, which the
		// windowed delete must preserve.
		pos(200, 18.5, 58.9, now.Add(-30*time.Hour)),
		// Vessel 300 reported once: kept.
		pos(300, 26.5, 61.0, now.Add(-1*time.Hour)),
	})

	runner, err := NewRunner(store, bandClassifier{}, DefaultCrossingPolicy(), 100,
		WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Vessels != 3 {
		t.Errorf("vessels = %d, want 3", result.Vessels)
	}
	if result.Kept != 2 || result.Deleted != 1 {
		t.Errorf("kept/deleted = %d/%d, want 2/1", result.Kept, result.Deleted)
	}
	if result.RowsDeleted != 2 {
		t.Errorf("rows deleted = %d, want 2", result.RowsDeleted)
	}
	if result.RunID == "" {
		t.Error("run has no ID")
	}

	// Vessel 200's pre-window record survived the windowed delete.
	remaining, err := store.QuerySince(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("QuerySince: %v", err)
	}
	var vessel200 int
	for _, p := range remaining {
		if p.MMSI == 200 {
			vessel200++
			if !p.Timestamp.Before(now.Add(-24 * time.Hour)) {
				t.Errorf("in-window record for vessel 200 survived: %v", p.Timestamp)
			}
		}
	}
	if vessel200 != 1 {
		t.Errorf("vessel 200 has %d records left, want 1 pre-window record", vessel200)
	}
}

func TestRunnerFlaggedDeletesFullHistory(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStore()

	seedStore(t, store, []*tracking.PositionRecord{
		// Non-flagged vessel in Finnish waters only, including history far
		// older than the window. The flagged variant purges all of it.
		pos(231000000, 26.0, 60.0, now.Add(-200*time.Hour)),
		pos(231000000, 26.1, 60.1, now.Add(-40*time.Hour)),
		pos(231000000, 26.2, 60.2, now.Add(-10*time.Hour)),
		// Flagged-prefix vessel, kept in full.
		pos(273450000, 22.0, 59.0, now.Add(-50*time.Hour)),
		pos(273450000, 22.1, 59.0, now.Add(-5*time.Hour)),
	})

	runner, err := NewRunner(store, bandClassifier{}, DefaultFlaggedPolicy(), 100,
		WithClock(func() time.Time { return now }))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Kept != 1 || result.Deleted != 1 {
		t.Errorf("kept/deleted = %d/%d, want 1/1", result.Kept, result.Deleted)
	}
	if result.RowsDeleted != 3 {
		t.Errorf("rows deleted = %d, want full history of 3", result.RowsDeleted)
	}

	remaining, err := store.QuerySince(context.Background(), time.Time{})
	if err != nil {
		t.Fatalf("QuerySince: %v", err)
	}
	for _, p := range remaining {
		if p.MMSI == 231000000 {
			t.Errorf("record for deleted vessel survived: %v", p.Timestamp)
		}
	}
	if len(remaining) != 2 {
		t.Errorf("store holds %d records, want 2", len(remaining))
	}
}

func TestRunnerDryRunDeletesNothing(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store := storage.NewMemoryStore()

	seedStore(t, store, []*tracking.PositionRecord{
		pos(200, 22.0, 59.0, now.Add(-8*time.Hour)),
		pos(200, 22.1, 59.1, now.Add(-4*time.Hour)),
	})

	runner, err := NewRunner(store, bandClassifier{}, DefaultCrossingPolicy(), 100,
		WithClock(func() time.Time { return now }),
		WithDryRun(true))
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}

	result, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.DryRun {
		t.Error("result not marked dry run")
	}
	if result.Deleted != 1 {
		t.Errorf("deleted verdicts = %d, want 1", result.Deleted)
	}
	if result.RowsDeleted != 0 {
		t.Errorf("rows deleted = %d, want 0 in dry run", result.RowsDeleted)
	}

	count, err := store.CountPositions(context.Background())
	if err != nil {
		t.Fatalf("CountPositions: %v", err)
	}
	if count != 2 {
		t.Errorf("store holds %d records after dry run, want 2", count)
	}
}
