package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomAvailability is an admin-declared window during which a room may be
// offered for booking. Both endpoints are inclusive calendar dates. Windows
// are never edited in place: the admin deletes and recreates them.
type RoomAvailability struct {
	gorm.Model
	RoomID        uint      `json:"roomID" gorm:"not null;index"`
	AvailableFrom time.Time `json:"availableFrom" gorm:"type:date;not null"`
	AvailableTo   time.Time `json:"availableTo" gorm:"type:date;not null"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
}
