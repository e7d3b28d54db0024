package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	Genders        = []string{"Male", "Female", "Other"}
	NauticalLevels = []string{"Beginner", "Intermediate", "Experienced", "Pro"}
)

type User struct {
	gorm.Model
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email" gorm:"uniqueIndex"`
	Password       string `json:"password"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"`
	AvatarURL      string `json:"avatarURL"`

	// Profile
	DateOfBirth        string `json:"dateOfBirth"`
	Gender             string `json:"gender" gorm:"type:varchar(10)"`
	Phone              string `json:"phone"`
	AddressCity        string `json:"addressCity"`
	AddressPostalCode  string `json:"addressPostalCode"`
	AddressStreet      string `json:"addressStreet"`
	NauticalLevel      string `json:"nauticalLevel" gorm:"type:varchar(20)"`
	YachtLicenseHolder *bool  `json:"yachtLicenseHolder"`

	SavedBoats datatypes.JSON `json:"savedBoats"`
	Boats      []Boat         `json:"boats,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
}

// Custom JSON marshaling to hide the password hash and keep SavedBoats an array
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Password   string `json:"password,omitempty"`
		SavedBoats []int  `json:"savedBoats"`
		*Alias
	}{
		SavedBoats: []int{},
		Alias:      (*Alias)(u),
	}

	if u.SavedBoats != nil {
		var savedBoats []int
		if err := json.Unmarshal(u.SavedBoats, &savedBoats); err == nil {
			aux.SavedBoats = savedBoats
		}
	}

	return json.Marshal(aux)
}
