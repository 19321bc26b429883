package retention

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"balticwatch/pkg/tracking"
)

// Disposition is the retention decision for one vessel.
type Disposition int

const (
	// Keep retains the vessel's position history.
	Keep Disposition = iota

	// Delete purges the vessel's position history per the policy's
	// deletion scope.
	Delete
)

// String returns the disposition name.
func (d Disposition) String() string {
	if d == Delete {
		return "delete"
	}
	return "keep"
}

// Verdict is the decision for one vessel, with a human-readable reason. A
// wrong delete destroys data permanently, so every verdict is explainable.
type Verdict struct {
	MMSI        int64
	Disposition Disposition
	Reason      string
}

// Engine applies the retention policy to aggregated vessel evidence.
type Engine struct {
	policy Policy
	logger *slog.Logger
}

// NewEngine creates a decision engine for the given policy.
func NewEngine(policy Policy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		policy: policy,
		logger: slog.Default().With("component", "retention.engine"),
	}, nil
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Decide classifies every vessel in the evidence map. Verdicts are ordered
// by MMSI so a run's output is deterministic and diffable.
func (e *Engine) Decide(evidence map[int64]*tracking.VesselEvidence) []Verdict {
	verdicts := make([]Verdict, 0, len(evidence))
	for _, ev := range evidence {
		verdicts = append(verdicts, e.decide(ev))
	}
	sort.Slice(verdicts, func(i, j int) bool { return verdicts[i].MMSI < verdicts[j].MMSI })
	return verdicts
}

// decide applies the active variant to one vessel's evidence.
func (e *Engine) decide(ev *tracking.VesselEvidence) Verdict {
	// A vessel with fewer than two reports has no usable movement
	// evidence; both variants keep it rather than risk deleting a slow
	// reporter.
	if ev.Records < 2 {
		return Verdict{
			MMSI:        ev.MMSI,
			Disposition: Keep,
			Reason:      fmt.Sprintf("insufficient evidence (%d record)", ev.Records),
		}
	}

	switch e.policy.Variant {
	case VariantFlagged:
		return e.decideFlagged(ev)
	default:
		return e.decideCrossing(ev)
	}
}

// decideCrossing keeps vessels that visited two or more distinct named
// jurisdictions. Moving between international waters and a single
// jurisdiction is not a crossing here.
func (e *Engine) decideCrossing(ev *tracking.VesselEvidence) Verdict {
	if n := ev.NamedCount(); n >= 2 {
		return Verdict{
			MMSI:        ev.MMSI,
			Disposition: Keep,
			Reason:      fmt.Sprintf("crossed boundaries (%d jurisdictions)", n),
		}
	}
	return Verdict{
		MMSI:        ev.MMSI,
		Disposition: Delete,
		Reason:      "no boundary crossing in window",
	}
}

// decideFlagged applies the flagged-nationality overrides, then the
// recent-window crossing test. Unlike the crossing variant, a transition
// between international waters and a named jurisdiction counts.
func (e *Engine) decideFlagged(ev *tracking.VesselEvidence) Verdict {
	mmsi := strconv.FormatInt(ev.MMSI, 10)
	if len(mmsi) >= len(e.policy.FlaggedPrefix) && mmsi[:len(e.policy.FlaggedPrefix)] == e.policy.FlaggedPrefix {
		return Verdict{
			MMSI:        ev.MMSI,
			Disposition: Keep,
			Reason:      fmt.Sprintf("flagged nationality prefix %s", e.policy.FlaggedPrefix),
		}
	}
	if e.policy.FlaggedJurisdiction != "" && ev.VisitedHas(e.policy.FlaggedJurisdiction) {
		return Verdict{
			MMSI:        ev.MMSI,
			Disposition: Keep,
			Reason:      fmt.Sprintf("visited flagged jurisdiction %s", e.policy.FlaggedJurisdiction),
		}
	}

	if n := ev.DistinctRecentCount(); n >= 2 {
		return Verdict{
			MMSI:        ev.MMSI,
			Disposition: Keep,
			Reason:      fmt.Sprintf("crossing in recent window (%d distinct)", n),
		}
	}
	return Verdict{
		MMSI:        ev.MMSI,
		Disposition: Delete,
		Reason:      "no crossing in recent window",
	}
}

// DeleteSet extracts the MMSIs of all Delete verdicts, preserving order.
func DeleteSet(verdicts []Verdict) []int64 {
	var mmsis []int64
	for _, v := range verdicts {
		if v.Disposition == Delete {
			mmsis = append(mmsis, v.MMSI)
		}
	}
	return mmsis
}
