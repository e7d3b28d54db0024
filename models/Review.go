package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	BoatID  uint   `json:"boatID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Rating  int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment string `json:"comment" gorm:"type:text;not null"`
	User    User   `json:"user" gorm:"foreignKey:UserID"`
	Boat    Boat   `json:"boat" gorm:"foreignKey:BoatID"`
}
