package retention

import (
	"fmt"
	"time"
)

// PolicyVariant selects between the two retention policies.
type PolicyVariant int

const (
	// VariantCrossing keeps vessels that visited two or more distinct
	// named jurisdictions inside the window. International waters never
	// count. Deletions are scoped to the window.
	VariantCrossing PolicyVariant = iota

	// VariantFlagged keeps flagged-nationality vessels unconditionally and
	// applies the crossing test over a shorter recent window to the rest,
	// counting international waters as a distinct value. Deletions remove
	// the vessel's entire history.
	VariantFlagged
)

// String returns the configuration name of the variant.
func (v PolicyVariant) String() string {
	switch v {
	case VariantCrossing:
		return "crossing"
	case VariantFlagged:
		return "flagged"
	default:
		return "unknown"
	}
}

// ParseVariant parses a configuration variant name.
func ParseVariant(name string) (PolicyVariant, error) {
	switch name {
	case "crossing":
		return VariantCrossing, nil
	case "flagged":
		return VariantFlagged, nil
	default:
		return 0, fmt.Errorf("unknown retention policy variant %q", name)
	}
}

// Policy is the full retention policy configuration. The two variants must
// never run against the same store: the crossing variant's windowed
// deletions assume history older than the window is preserved, which the
// flagged variant's unbounded deletions would destroy.
type Policy struct {
	// Variant selects the decision rule.
	Variant PolicyVariant

	// Window is the lookback window for evidence gathering.
	Window time.Duration

	// RecentWindow is the sub-window for non-flagged vessels under the
	// flagged variant. Unused by the crossing variant.
	RecentWindow time.Duration

	// FlaggedPrefix is the MMSI leading-digit prefix that marks a flagged
	// nationality (flagged variant only).
	FlaggedPrefix string

	// FlaggedJurisdiction is the jurisdiction code whose presence in a
	// vessel's full-window visited set marks it flagged (flagged variant
	// only).
	FlaggedJurisdiction string
}

// DefaultCrossingPolicy returns the crossing policy over a 24 hour window.
func DefaultCrossingPolicy() Policy {
	return Policy{
		Variant: VariantCrossing,
		Window:  24 * time.Hour,
	}
}

// DefaultFlaggedPolicy returns the flagged policy: 96 hour window, 48 hour
// recent window, Russian MMSI prefix and jurisdiction code.
func DefaultFlaggedPolicy() Policy {
	return Policy{
		Variant:             VariantFlagged,
		Window:              96 * time.Hour,
		RecentWindow:        48 * time.Hour,
		FlaggedPrefix:       "273",
		FlaggedJurisdiction: "RU",
	}
}

// Validate checks the policy for inconsistent values.
func (p Policy) Validate() error {
	if p.Window <= 0 {
		return fmt.Errorf("retention policy window must be positive, got %v", p.Window)
	}
	switch p.Variant {
	case VariantCrossing:
	case VariantFlagged:
		if p.RecentWindow <= 0 {
			return fmt.Errorf("flagged variant requires a positive recent window, got %v", p.RecentWindow)
		}
		if p.RecentWindow > p.Window {
			return fmt.Errorf("recent window %v exceeds full window %v", p.RecentWindow, p.Window)
		}
		if p.FlaggedPrefix == "" {
			return fmt.Errorf("flagged variant requires a flagged MMSI prefix")
		}
	default:
		return fmt.Errorf("unknown policy variant %d", p.Variant)
	}
	return nil
}

// aggregationRecentWindow returns the recent window to hand the aggregator:
// zero for the crossing variant, which has no sub-window.
func (p Policy) aggregationRecentWindow() time.Duration {
	if p.Variant == VariantFlagged {
		return p.RecentWindow
	}
	return 0
}

// DeleteSince returns the lower timestamp bound for deletions decided at
// now. The crossing variant deletes only inside the analysis window, since
// removing older records would destroy crossing evidence that predates the
// window. The flagged variant deletes unbounded (nil).
func (p Policy) DeleteSince(now time.Time) *time.Time {
	if p.Variant == VariantCrossing {
		since := now.Add(-p.Window)
		return &since
	}
	return nil
}
