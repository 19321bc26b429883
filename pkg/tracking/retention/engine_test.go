package retention

import (
	"errors"
	"math/rand"
	"strconv"
	"testing"
	"time"

	"balticwatch/pkg/tracking"
)

func evidence(mmsi int64, records int, visited []string, international bool) *tracking.VesselEvidence {
	ev := &tracking.VesselEvidence{
		MMSI:          mmsi,
		Records:       records,
		Visited:       make(map[string]struct{}),
		International: international,
	}
	for _, code := range visited {
		ev.Visited[code] = struct{}{}
	}
	return ev
}

func withRecent(ev *tracking.VesselEvidence, records int, visited []string, international bool) *tracking.VesselEvidence {
	ev.RecentRecords = records
	ev.VisitedRecent = make(map[string]struct{})
	for _, code := range visited {
		ev.VisitedRecent[code] = struct{}{}
	}
	ev.InternationalRecent = international
	return ev
}

func TestCrossingVariantVerdicts(t *testing.T) {
	engine, err := NewEngine(DefaultCrossingPolicy())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	tests := []struct {
		name string
		ev   *tracking.VesselEvidence
		want Disposition
	}{
		{
			name: "single record kept",
			ev:   evidence(100, 1, nil, true),
			want: Keep,
		},
		{
			name: "zero records kept",
			ev:   evidence(101, 0, nil, false),
			want: Keep,
		},
		{
			name: "two records all international deleted",
			ev:   evidence(102, 2, nil, true),
			want: Delete,
		},
		{
			name: "two jurisdictions kept",
			ev:   evidence(103, 2, []string{"FI", "SE"}, false),
			want: Keep,
		},
		{
			name: "one jurisdiction plus international deleted",
			ev:   evidence(104, 5, []string{"FI"}, true),
			want: Delete,
		},
		{
			name: "single jurisdiction deleted",
			ev:   evidence(105, 3, []string{"EE"}, false),
			want: Delete,
		},
		{
			name: "three jurisdictions kept",
			ev:   evidence(106, 10, []string{"FI", "SE", "EE"}, true),
			want: Keep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := engine.decide(tt.ev)
			if v.Disposition != tt.want {
				t.Errorf("disposition = %v, want %v (reason %q)", v.Disposition, tt.want, v.Reason)
			}
			if v.MMSI != tt.ev.MMSI {
				t.Errorf("MMSI = %d, want %d", v.MMSI, tt.ev.MMSI)
			}
			if v.Reason == "" {
				t.Error("verdict has no reason")
			}
		})
	}
}

func TestFlaggedVariantVerdicts(t *testing.T) {
	engine, err := NewEngine(DefaultFlaggedPolicy())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	tests := []struct {
		name string
		ev   *tracking.VesselEvidence
		want Disposition
	}{
		{
			name: "flagged prefix kept despite all international",
			ev:   withRecent(evidence(273450000, 40, nil, true), 20, nil, true),
			want: Keep,
		},
		{
			name: "flagged jurisdiction anywhere in window kept",
			ev:   withRecent(evidence(992200000, 6, []string{"RU"}, true), 3, nil, true),
			want: Keep,
		},
		{
			name: "single recent jurisdiction deleted",
			ev:   withRecent(evidence(231000000, 2, []string{"FI"}, true), 1, []string{"FI"}, false),
			want: Delete,
		},
		{
			name: "jurisdiction and international in recent window kept",
			ev:   withRecent(evidence(230000000, 4, []string{"FI"}, true), 2, []string{"FI"}, true),
			want: Keep,
		},
		{
			name: "two recent jurisdictions kept",
			ev:   withRecent(evidence(266000000, 8, []string{"FI", "SE"}, false), 4, []string{"FI", "SE"}, false),
			want: Keep,
		},
		{
			name: "crossing outside recent window deleted",
			ev:   withRecent(evidence(276000000, 8, []string{"FI", "SE"}, false), 2, []string{"SE"}, false),
			want: Delete,
		},
		{
			name: "single record kept",
			ev:   evidence(265000000, 1, []string{"SE"}, false),
			want: Keep,
		},
		{
			name: "all recent international deleted",
			ev:   withRecent(evidence(219000000, 5, nil, true), 5, nil, true),
			want: Delete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := engine.decide(tt.ev)
			if v.Disposition != tt.want {
				t.Errorf("disposition = %v, want %v (reason %q)", v.Disposition, tt.want, v.Reason)
			}
		})
	}
}

func TestDecideOrderedByMMSI(t *testing.T) {
	engine, err := NewEngine(DefaultCrossingPolicy())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	input := map[int64]*tracking.VesselEvidence{
		300: evidence(300, 2, []string{"FI"}, false),
		100: evidence(100, 2, []string{"FI", "SE"}, false),
		200: evidence(200, 1, nil, false),
	}
	verdicts := engine.Decide(input)
	if len(verdicts) != 3 {
		t.Fatalf("got %d verdicts, want 3", len(verdicts))
	}
	for i := 1; i < len(verdicts); i++ {
		if verdicts[i-1].MMSI >= verdicts[i].MMSI {
			t.Fatalf("verdicts not sorted: %d before %d", verdicts[i-1].MMSI, verdicts[i].MMSI)
		}
	}
}

func TestDeleteSet(t *testing.T) {
	verdicts := []Verdict{
		{MMSI: 1, Disposition: Keep},
		{MMSI: 2, Disposition: Delete},
		{MMSI: 3, Disposition: Delete},
		{MMSI: 4, Disposition: Keep},
	}
	got := DeleteSet(verdicts)
	if len(got) != 2 || got[0] != 2 || got[1] != 3 {
		t.Errorf("DeleteSet = %v, want [2 3]", got)
	}
	if DeleteSet(nil) != nil {
		t.Error("DeleteSet(nil) should be nil")
	}
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{"default crossing", DefaultCrossingPolicy(), false},
		{"default flagged", DefaultFlaggedPolicy(), false},
		{"zero window", Policy{Variant: VariantCrossing}, true},
		{"flagged without recent window", Policy{Variant: VariantFlagged, Window: 96 * time.Hour, FlaggedPrefix: "273"}, true},
		{"recent window exceeds window", Policy{Variant: VariantFlagged, Window: 10 * time.Hour, RecentWindow: 20 * time.Hour, FlaggedPrefix: "273"}, true},
		{"flagged without prefix", Policy{Variant: VariantFlagged, Window: 20 * time.Hour, RecentWindow: 10 * time.Hour}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	if v, err := ParseVariant("crossing"); err != nil || v != VariantCrossing {
		t.Errorf("ParseVariant(crossing) = %v, %v", v, err)
	}
	if v, err := ParseVariant("flagged"); err != nil || v != VariantFlagged {
		t.Errorf("ParseVariant(flagged) = %v, %v", v, err)
	}
	if _, err := ParseVariant("bogus"); err == nil {
		t.Error("ParseVariant(bogus) should fail")
	}
}

// TestFlaggedVerdictsAgainstNaiveRules cross-checks the engine against a
// direct restatement of the flagged rules over randomized evidence.
func TestFlaggedVerdictsAgainstNaiveRules(t *testing.T) {
	policy := DefaultFlaggedPolicy()
	engine, err := NewEngine(policy)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	codes := []string{"FI", "SE", "EE", "RU", "LV"}
	rng := rand.New(rand.NewSource(42))

	naive := func(ev *tracking.VesselEvidence) Disposition {
		if ev.Records < 2 {
			return Keep
		}
		mmsi := strconv.FormatInt(ev.MMSI, 10)
		if len(mmsi) >= 3 && mmsi[:3] == "273" {
			return Keep
		}
		if _, ok := ev.Visited["RU"]; ok {
			return Keep
		}
		distinct := len(ev.VisitedRecent)
		if ev.InternationalRecent {
			distinct++
		}
		if distinct >= 2 {
			return Keep
		}
		return Delete
	}

	for i := 0; i < 500; i++ {
		mmsi := int64(200000000 + rng.Intn(100000000))
		records := rng.Intn(6)
		ev := &tracking.VesselEvidence{
			MMSI:          mmsi,
			Records:       records,
			Visited:       make(map[string]struct{}),
			VisitedRecent: make(map[string]struct{}),
		}
		for _, code := range codes {
			if rng.Intn(4) == 0 {
				ev.Visited[code] = struct{}{}
				if rng.Intn(2) == 0 {
					ev.VisitedRecent[code] = struct{}{}
				}
			}
		}
		ev.International = rng.Intn(2) == 0
		ev.InternationalRecent = ev.International && rng.Intn(2) == 0
		ev.RecentRecords = rng.Intn(records + 1)

		got := engine.decide(ev).Disposition
		want := naive(ev)
		if got != want {
			t.Fatalf("mmsi %d records %d visited %v recent %v intl %v/%v: got %v, want %v",
				mmsi, records, ev.Visited, ev.VisitedRecent, ev.International, ev.InternationalRecent, got, want)
		}
	}
}

func TestNewEngineRejectsInvalidPolicy(t *testing.T) {
	_, err := NewEngine(Policy{Variant: VariantCrossing})
	if err == nil {
		t.Fatal("expected error for zero window")
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		t.Fatal("validation error should not be a FetchError")
	}
}
