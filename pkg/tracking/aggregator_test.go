package tracking

import (
	"reflect"
	"testing"
	"time"
)

// gridClassifier attributes longitudes under 20 to "SE", 20-25 to nothing
// (open sea), and 25+ to "FI". It counts calls so tests can verify stored
// codes short-circuit classification.
type gridClassifier struct {
	calls int
}

func (g *gridClassifier) Classify(lon, lat float64) (string, bool) {
	g.calls++
	switch {
	case lon < 20:
		return "SE", true
	case lon < 25:
		return "", false
	default:
		return "FI", true
	}
}

func strPtr(s string) *string { return &s }

func pos(mmsi int64, lon float64, age time.Duration, now time.Time) *PositionRecord {
	return &PositionRecord{
		MMSI:      mmsi,
		Lon:       lon,
		Lat:       60,
		Timestamp: now.Add(-age),
	}
}

func TestNewAggregator_RequiresClassifier(t *testing.T) {
	if _, err := NewAggregator(nil); err == nil {
		t.Fatal("NewAggregator(nil) should fail")
	}
}

func TestAggregate_GroupsAndClassifies(t *testing.T) {
	clf := &gridClassifier{}
	agg, err := NewAggregator(clf)
	if err != nil {
		t.Fatalf("NewAggregator() failed: %v", err)
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	positions := []*PositionRecord{
		pos(100, 18, 2*time.Hour, now),  // SE
		pos(100, 26, 1*time.Hour, now),  // FI
		pos(200, 22, 3*time.Hour, now),  // open sea
		pos(200, 22, 2*time.Hour, now),  // open sea again
		pos(300, 26, 30*time.Hour, now), // outside the 24h window
	}

	evidence := agg.Aggregate(positions, now, 24*time.Hour, 0)

	if len(evidence) != 2 {
		t.Fatalf("vessel count = %d, want 2 (stale vessel excluded)", len(evidence))
	}

	ev100 := evidence[100]
	if ev100.Records != 2 || ev100.NamedCount() != 2 || ev100.International {
		t.Errorf("evidence[100] = %+v, want 2 records, 2 named, no international", ev100)
	}
	if !ev100.VisitedHas("SE") || !ev100.VisitedHas("FI") {
		t.Errorf("evidence[100].Visited = %v, want SE and FI", ev100.Visited)
	}

	ev200 := evidence[200]
	if ev200.Records != 2 || ev200.NamedCount() != 0 || !ev200.International {
		t.Errorf("evidence[200] = %+v, want 2 records, 0 named, international", ev200)
	}
}

func TestAggregate_PrefersStoredJurisdiction(t *testing.T) {
	clf := &gridClassifier{}
	agg, _ := NewAggregator(clf)

	now := time.Now().UTC()
	positions := []*PositionRecord{
		{MMSI: 100, Lon: 18, Lat: 60, Timestamp: now.Add(-time.Hour), Jurisdiction: strPtr("EE")},
		{MMSI: 100, Lon: 18, Lat: 60, Timestamp: now.Add(-time.Hour), Jurisdiction: strPtr("")},
	}

	evidence := agg.Aggregate(positions, now, 24*time.Hour, 0)

	if clf.calls != 0 {
		t.Errorf("classifier called %d times for pre-tagged records, want 0", clf.calls)
	}
	ev := evidence[100]
	if !ev.VisitedHas("EE") {
		t.Errorf("Visited = %v, want stored code EE", ev.Visited)
	}
	// The empty stored code means "classified as international".
	if !ev.International {
		t.Error("empty stored code should count as international")
	}
}

func TestAggregate_RecentSubWindow(t *testing.T) {
	clf := &gridClassifier{}
	agg, _ := NewAggregator(clf)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	positions := []*PositionRecord{
		pos(100, 18, 90*time.Hour, now), // SE, full window only
		pos(100, 26, 10*time.Hour, now), // FI, also in recent window
		pos(100, 22, 5*time.Hour, now),  // open sea, also recent
	}

	evidence := agg.Aggregate(positions, now, 96*time.Hour, 48*time.Hour)
	ev := evidence[100]

	if ev.Records != 3 || ev.RecentRecords != 2 {
		t.Errorf("Records = %d, RecentRecords = %d, want 3 and 2", ev.Records, ev.RecentRecords)
	}
	if !ev.VisitedHas("SE") || !ev.VisitedHas("FI") {
		t.Errorf("Visited = %v, want SE and FI", ev.Visited)
	}
	if _, ok := ev.VisitedRecent["SE"]; ok {
		t.Error("SE is outside the recent window and should not be in VisitedRecent")
	}
	if _, ok := ev.VisitedRecent["FI"]; !ok {
		t.Errorf("VisitedRecent = %v, want FI", ev.VisitedRecent)
	}
	if ev.DistinctRecentCount() != 2 {
		t.Errorf("DistinctRecentCount() = %d, want 2 (FI plus international)", ev.DistinctRecentCount())
	}

	// Recent evidence is a subset of full-window evidence.
	for code := range ev.VisitedRecent {
		if !ev.VisitedHas(code) {
			t.Errorf("recent code %q missing from full-window set", code)
		}
	}
	if ev.InternationalRecent && !ev.International {
		t.Error("InternationalRecent implies International")
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	positions := []*PositionRecord{
		pos(100, 18, 2*time.Hour, now),
		pos(100, 26, 1*time.Hour, now),
		pos(200, 22, 3*time.Hour, now),
	}

	agg, _ := NewAggregator(&gridClassifier{})
	first := agg.Aggregate(positions, now, 24*time.Hour, 12*time.Hour)
	second := agg.Aggregate(positions, now, 24*time.Hour, 12*time.Hour)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Aggregate() not idempotent:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestAggregate_WindowBoundaryInclusive(t *testing.T) {
	agg, _ := NewAggregator(&gridClassifier{})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// A record exactly at now-window is included.
	positions := []*PositionRecord{pos(100, 18, 24*time.Hour, now)}
	evidence := agg.Aggregate(positions, now, 24*time.Hour, 0)
	if len(evidence) != 1 {
		t.Fatalf("vessel count = %d, want 1 (boundary record included)", len(evidence))
	}
}
