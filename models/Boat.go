package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Enumerations validated at the API boundary; the columns themselves are plain strings.
var (
	BoatTypes      = []string{"Motorboat", "Sailboat", "RIB", "Catamaran", "Jet-Ski", "Yacht"}
	EngineTypes    = []string{"Inboard", "Outboard"}
	SkipperOptions = []string{"Yes", "No", "Both"}
)

type Boat struct {
	gorm.Model
	OwnerID        uint           `json:"ownerID" gorm:"not null;index"`
	Type           string         `json:"type" gorm:"type:varchar(20);not null"`
	Manufacturer   string         `json:"manufacturer" gorm:"not null"`
	BoatModel      string         `json:"model" gorm:"column:boat_model;not null"`
	Year           int            `json:"year" gorm:"index"`
	Description    string         `json:"description" gorm:"type:text"`
	CityHarbour    string         `json:"cityHarbour" gorm:"index;not null"`
	SkipperOption  string         `json:"skipperOption" gorm:"type:varchar(10);not null"`
	Capacity       int            `json:"capacity" gorm:"not null"`
	BoatLength     float64        `json:"length" gorm:"column:boat_length"`
	EngineType     string         `json:"engineType" gorm:"type:varchar(10)"`
	EnginePower    float64        `json:"enginePower"`
	ReferencePrice float64        `json:"referencePrice" gorm:"index"`
	Images         datatypes.JSON `json:"images"`

	// Denormalized review aggregate, recomputed on every review submission.
	AverageRating float64 `json:"averageRating" gorm:"default:0"`
	RatingsCount  int     `json:"ratingsCount" gorm:"default:0"`

	Availability []BoatAvailability `json:"availability" gorm:"foreignKey:BoatID"`
	Reviews      []Review           `json:"reviews,omitempty" gorm:"foreignKey:BoatID"`
	Owner        User               `json:"owner" gorm:"foreignKey:OwnerID;references:ID"`
}

// Custom JSON marshaling so Images is always an array, never a raw JSON string or null
func (b *Boat) MarshalJSON() ([]byte, error) {
	type Alias Boat
	aux := &struct {
		Images []string `json:"images"`
		*Alias
	}{
		Images: []string{},
		Alias:  (*Alias)(b),
	}

	if b.Images != nil {
		var images []string
		if err := json.Unmarshal(b.Images, &images); err == nil {
			aux.Images = images
		}
	}

	return json.Marshal(aux)
}
