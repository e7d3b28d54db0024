package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stored booking statuses. Only Pending -> Cancelled is ever written; Completed and
// Active exist as derived values only (see CurrentStatus).
const (
	BookingStatusPending   = "Pending"
	BookingStatusCancelled = "Cancelled"
	BookingStatusCompleted = "Completed"
	BookingStatusActive    = "Active"
)

var CancellationPolicies = []string{"Flexible", "Moderate", "Strict"}

// BookingExtra is one optional add-on (skipper, fuel package, ...) priced on top
// of the base price.
type BookingExtra struct {
	Option string  `json:"option"`
	Price  float64 `json:"price"`
}

type Booking struct {
	gorm.Model
	RenterID  uint      `json:"renterID" gorm:"not null;index"`
	BoatID    uint      `json:"boatID" gorm:"not null;index"`
	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`

	BasePrice   float64        `json:"basePrice"`
	ExtrasPrice float64        `json:"extrasPrice"`
	TotalPrice  float64        `json:"totalPrice"`
	Extras      datatypes.JSON `json:"extras"`

	RenterEmail string `json:"renterEmail"`
	RenterPhone string `json:"renterPhone"`
	OwnerEmail  string `json:"ownerEmail"`
	OwnerPhone  string `json:"ownerPhone"`

	CancellationPolicy string `json:"cancellationPolicy" gorm:"type:varchar(10)"`
	CheckInTime        string `json:"checkInTime" gorm:"type:varchar(10)"`
	CheckOutTime       string `json:"checkOutTime" gorm:"type:varchar(10)"`

	Status string `json:"status" gorm:"type:varchar(10);default:Pending;index"`

	Renter User `json:"renter" gorm:"foreignKey:RenterID;references:ID"`
	Boat   Boat `json:"boat" gorm:"foreignKey:BoatID;references:ID"`
}

// CurrentStatus derives the display status from the stored status and the clock.
// It is recomputed on every read and never persisted: "now" keeps advancing while
// the stored status only ever records an explicit cancellation.
func (b *Booking) CurrentStatus(now time.Time) string {
	if b.Status == BookingStatusCancelled {
		return BookingStatusCancelled
	}
	if !now.Before(b.StartDate) && !now.After(b.EndDate) {
		return BookingStatusActive
	}
	if now.After(b.EndDate) {
		return BookingStatusCompleted
	}
	return BookingStatusPending
}

// Custom JSON marshaling: attaches the derived currentStatus and decodes Extras
// into a proper array.
func (b *Booking) MarshalJSON() ([]byte, error) {
	type Alias Booking
	aux := &struct {
		CurrentStatus string         `json:"currentStatus"`
		Extras        []BookingExtra `json:"extras"`
		*Alias
	}{
		CurrentStatus: b.CurrentStatus(time.Now()),
		Extras:        []BookingExtra{},
		Alias:         (*Alias)(b),
	}

	if b.Extras != nil {
		var extras []BookingExtra
		if err := json.Unmarshal(b.Extras, &extras); err == nil {
			aux.Extras = extras
		}
	}

	return json.Marshal(aux)
}
