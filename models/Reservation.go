package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. A reservation in pending or confirmed holds the room;
// cancelled is terminal and frees the dates.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

type Reservation struct {
	gorm.Model
	RoomID    uint      `json:"roomID" gorm:"not null;index:idx_reservations_room_status"`
	UserID    uint      `json:"userID" gorm:"not null;index"`
	Reference string    `json:"reference" gorm:"type:varchar(36);uniqueIndex"`
	CheckIn   time.Time `json:"checkIn" gorm:"type:date;not null"`
	CheckOut  time.Time `json:"checkOut" gorm:"type:date;not null"` // exclusive: the stay covers [checkIn, checkOut)
	Status    string    `json:"status" gorm:"type:varchar(20);index:idx_reservations_room_status"`

	Room *Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// IsActive reports whether the reservation currently holds its room.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}
