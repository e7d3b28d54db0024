package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurrentStatusDerivation(t *testing.T) {
	booking := Booking{
		StartDate: date("2024-01-10"),
		EndDate:   date("2024-01-15"),
		Status:    BookingStatusPending,
	}

	cases := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before start", date("2024-01-05"), BookingStatusPending},
		{"on start date", date("2024-01-10"), BookingStatusActive},
		{"mid range", date("2024-01-12"), BookingStatusActive},
		{"on end date", date("2024-01-15"), BookingStatusActive},
		{"after end", date("2024-01-20"), BookingStatusCompleted},
	}

	for _, tc := range cases {
		if got := booking.CurrentStatus(tc.now); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCurrentStatusCancelledWinsRegardlessOfDates(t *testing.T) {
	booking := Booking{
		StartDate: date("2024-01-10"),
		EndDate:   date("2024-01-15"),
		Status:    BookingStatusCancelled,
	}

	for _, now := range []time.Time{date("2024-01-05"), date("2024-01-12"), date("2024-01-20")} {
		if got := booking.CurrentStatus(now); got != BookingStatusCancelled {
			t.Errorf("now=%s: got %q, want Cancelled", now.Format("2006-01-02"), got)
		}
	}
}

func TestBookingJSONCarriesCurrentStatus(t *testing.T) {
	booking := Booking{
		StartDate: date("2000-01-01"),
		EndDate:   date("2000-01-05"),
		Status:    BookingStatusPending,
	}

	body, err := json.Marshal(&booking)
	if err != nil {
		t.Fatal(err)
	}

	// The range lies far in the past, so the derived status must be Completed
	// while the stored status stays Pending.
	if !strings.Contains(string(body), `"currentStatus":"Completed"`) {
		t.Errorf("expected derived Completed status in %s", body)
	}
	if !strings.Contains(string(body), `"status":"Pending"`) {
		t.Errorf("expected stored Pending status in %s", body)
	}
}
