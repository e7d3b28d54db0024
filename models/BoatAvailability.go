package models

import (
	"time"

	"gorm.io/gorm"
)

// BoatAvailability is one entry of a boat's booked-dates ledger. Rows are appended
// when a booking is confirmed and only ever removed when a cancellation releases
// the range (see RELEASE_DATES_ON_CANCEL).
type BoatAvailability struct {
	gorm.Model
	BoatID    uint      `json:"boatID" gorm:"not null;index"`
	StartDate time.Time `json:"startDate" gorm:"not null;index"`
	EndDate   time.Time `json:"endDate" gorm:"not null;index"`
	IsBooked  bool      `json:"isBooked" gorm:"default:false"`
}

// RangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd] share at least
// one moment. Both ranges are inclusive on both ends.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Overlaps reports whether the candidate range collides with this ledger entry.
func (a *BoatAvailability) Overlaps(start, end time.Time) bool {
	return RangesOverlap(start, end, a.StartDate, a.EndDate)
}
