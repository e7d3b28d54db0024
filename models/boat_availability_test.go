package models

import (
	"testing"
)

func TestRangesOverlapClosedInterval(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint before", "2024-06-01", "2024-06-05", "2024-06-10", "2024-06-15", false},
		{"disjoint after", "2024-06-10", "2024-06-15", "2024-06-01", "2024-06-05", false},
		{"identical", "2024-06-01", "2024-06-05", "2024-06-01", "2024-06-05", true},
		{"contained", "2024-06-02", "2024-06-04", "2024-06-01", "2024-06-05", true},
		{"containing", "2024-06-01", "2024-06-05", "2024-06-02", "2024-06-04", true},
		{"partial overlap", "2024-06-04", "2024-06-08", "2024-06-01", "2024-06-05", true},
		// Endpoints count: sharing a single day is a collision.
		{"touching at end", "2024-06-01", "2024-06-05", "2024-06-05", "2024-06-10", true},
		{"touching at start", "2024-06-05", "2024-06-10", "2024-06-01", "2024-06-05", true},
		{"single day inside", "2024-06-03", "2024-06-03", "2024-06-01", "2024-06-05", true},
		{"adjacent days", "2024-06-01", "2024-06-05", "2024-06-06", "2024-06-10", false},
	}

	for _, tc := range cases {
		got := RangesOverlap(date(tc.aStart), date(tc.aEnd), date(tc.bStart), date(tc.bEnd))
		if got != tc.want {
			t.Errorf("%s: RangesOverlap = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestOverlapsAgainstLedgerEntry(t *testing.T) {
	entry := BoatAvailability{
		StartDate: date("2024-06-01"),
		EndDate:   date("2024-06-05"),
		IsBooked:  true,
	}

	if !entry.Overlaps(date("2024-06-05"), date("2024-06-09")) {
		t.Error("candidate starting on the entry's last day should collide")
	}
	if entry.Overlaps(date("2024-06-06"), date("2024-06-09")) {
		t.Error("candidate starting the day after the entry should not collide")
	}
}
