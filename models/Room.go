package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room types offered by the hotel.
const (
	RoomTypeStandard = "standard"
	RoomTypeSuperior = "superior"
	RoomTypeSuite    = "suite"
	RoomTypeDeluxe   = "deluxe"
)

type Room struct {
	gorm.Model
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Type          string         `json:"type" gorm:"type:varchar(20);index"` // standard, superior, suite, deluxe
	PricePerNight float64        `json:"pricePerNight" gorm:"not null;check:price_per_night >= 0"`
	Capacity      int            `json:"capacity" gorm:"not null;check:capacity > 0"`
	ImageURL      string         `json:"imageURL"`
	Amenities     datatypes.JSON `json:"amenities" gorm:"type:jsonb"`

	AvailabilityWindows []RoomAvailability `json:"availabilityWindows,omitempty" gorm:"foreignKey:RoomID"`
	Reservations        []Reservation      `json:"reservations,omitempty" gorm:"foreignKey:RoomID"`
}

// IsValidRoomType reports whether t is one of the offered room types.
func IsValidRoomType(t string) bool {
	switch t {
	case RoomTypeStandard, RoomTypeSuperior, RoomTypeSuite, RoomTypeDeluxe:
		return true
	}
	return false
}
