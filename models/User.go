package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"type:varchar(20);default:user;index"` // user, admin

	Profile      *UserProfile  `json:"profile,omitempty" gorm:"foreignKey:UserID"`
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:UserID"`
}
