package tracking

import (
	"fmt"
	"log/slog"
	"time"
)

// Classifier attributes a coordinate to a jurisdiction. territory.Classifier
// implements it; tests substitute their own.
type Classifier interface {
	// Classify returns the owning jurisdiction code and true, or
	// ("", false) for international waters and unclassifiable input.
	Classify(lon, lat float64) (string, bool)
}

// Aggregator groups position records by vessel and accumulates the distinct
// set of jurisdictions each vessel visited.
type Aggregator struct {
	classifier Classifier
	logger     *slog.Logger
}

// NewAggregator creates an aggregator. A nil classifier is a construction
// error; there is no silent no-classification mode.
func NewAggregator(classifier Classifier) (*Aggregator, error) {
	if classifier == nil {
		return nil, fmt.Errorf("tracking: aggregator requires a classifier")
	}
	return &Aggregator{
		classifier: classifier,
		logger:     slog.Default().With("component", "tracking.aggregator"),
	}, nil
}

// Aggregate builds per-vessel evidence from positions. Records with a
// timestamp before now-window are ignored. Records carrying a precomputed
// jurisdiction code are used as-is; the rest are classified. When
// recentWindow is positive, evidence restricted to now-recentWindow is
// accumulated alongside the full-window evidence.
//
// The result is a pure function of the arguments.
func (a *Aggregator) Aggregate(positions []*PositionRecord, now time.Time, window, recentWindow time.Duration) map[int64]*VesselEvidence {
	cutoff := now.Add(-window)
	var recentCutoff time.Time
	if recentWindow > 0 {
		recentCutoff = now.Add(-recentWindow)
	}

	evidence := make(map[int64]*VesselEvidence)
	for _, pos := range positions {
		if pos == nil || pos.Timestamp.Before(cutoff) {
			continue
		}

		ev, ok := evidence[pos.MMSI]
		if !ok {
			ev = &VesselEvidence{
				MMSI:    pos.MMSI,
				Visited: make(map[string]struct{}),
			}
			if recentWindow > 0 {
				ev.VisitedRecent = make(map[string]struct{})
			}
			evidence[pos.MMSI] = ev
		}
		ev.Records++

		code, classified := a.jurisdictionOf(pos)
		if classified {
			ev.Visited[code] = struct{}{}
		} else {
			ev.International = true
		}

		if recentWindow > 0 && !pos.Timestamp.Before(recentCutoff) {
			ev.RecentRecords++
			if classified {
				ev.VisitedRecent[code] = struct{}{}
			} else {
				ev.InternationalRecent = true
			}
		}
	}

	a.logger.Debug("aggregated vessel evidence",
		"position_count", len(positions),
		"vessel_count", len(evidence),
		"window", window,
	)
	return evidence
}

// jurisdictionOf returns the position's jurisdiction, preferring a stored
// code over redundant geometric work.
func (a *Aggregator) jurisdictionOf(pos *PositionRecord) (string, bool) {
	if pos.Jurisdiction != nil {
		if *pos.Jurisdiction == "" {
			return "", false
		}
		return *pos.Jurisdiction, true
	}
	return a.classifier.Classify(pos.Lon, pos.Lat)
}
