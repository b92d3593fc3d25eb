package models

import (
	"gorm.io/gorm"
)

// UserProfile holds the customer-facing identity shown on reservations.
// The booking engine only reads it.
type UserProfile struct {
	gorm.Model
	UserID   uint   `json:"userID" gorm:"uniqueIndex;not null"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
}
