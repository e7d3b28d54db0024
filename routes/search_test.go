package routes

import (
	"testing"
	"time"
)

func paramsFrom(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestParseSearchFiltersRangesNeedBothBounds(t *testing.T) {
	f := parseSearchFilters(paramsFrom(map[string]string{
		"price.min": "100",
		"price.max": "200",
		"power.min": "50", // no power.max -> inactive
	}))

	if !f.Price.Active {
		t.Fatal("price filter should be active when both bounds are present")
	}
	if f.Price.Min != 100 || f.Price.Max != 200 {
		t.Errorf("price bounds = [%v, %v], want [100, 200]", f.Price.Min, f.Price.Max)
	}
	if f.Power.Active {
		t.Error("power filter must stay inactive with only a min bound")
	}
	if f.Length.Active || f.Year.Active {
		t.Error("absent range params must not activate filters")
	}
}

func TestParseSearchFiltersMalformedNumbersDeactivate(t *testing.T) {
	f := parseSearchFilters(paramsFrom(map[string]string{
		"length.min": "ten",
		"length.max": "20",
	}))

	if f.Length.Active {
		t.Error("malformed bound must deactivate the filter, not fail the search")
	}
}

func TestParseSearchFiltersEqualityAndAvailability(t *testing.T) {
	f := parseSearchFilters(paramsFrom(map[string]string{
		"location":               "Split",
		"boatType":               "Sailboat",
		"engineType":             "Outboard",
		"availability.startDate": "2024-06-01",
		"availability.endDate":   "2024-06-05",
	}))

	if f.Location != "Split" || f.BoatType != "Sailboat" || f.EngineType != "Outboard" {
		t.Errorf("equality filters parsed wrong: %+v", f)
	}
	if !f.AvailabilitySet {
		t.Fatal("availability window should be set")
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !f.AvailabilityStart.Equal(want) {
		t.Errorf("availability start = %v, want %v", f.AvailabilityStart, want)
	}
}

func TestParseSearchFiltersAvailabilityNeedsValidWindow(t *testing.T) {
	// End before start is ignored rather than matching nothing.
	f := parseSearchFilters(paramsFrom(map[string]string{
		"availability.startDate": "2024-06-10",
		"availability.endDate":   "2024-06-01",
	}))
	if f.AvailabilitySet {
		t.Error("inverted availability window must not activate the filter")
	}

	// Only one bound present behaves like no availability constraint.
	f = parseSearchFilters(paramsFrom(map[string]string{
		"availability.startDate": "2024-06-10",
	}))
	if f.AvailabilitySet {
		t.Error("half-open availability window must not activate the filter")
	}
}

func TestParseSearchFiltersEmptyQueryIsOpen(t *testing.T) {
	f := parseSearchFilters(paramsFrom(map[string]string{}))

	if f.Price.Active || f.Length.Active || f.Power.Active || f.Year.Active ||
		f.Location != "" || f.BoatType != "" || f.EngineType != "" ||
		f.SkipperOption != "" || f.AvailabilitySet {
		t.Errorf("empty query must produce an open filter, got %+v", f)
	}
}
