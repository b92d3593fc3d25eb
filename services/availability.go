package services

import (
	"fmt"
	"time"

	"github.com/fulltechdev/kiame-hotel/models"

	"gorm.io/gorm"
)

// AvailabilityIndex answers whether a room's admin-declared windows cover a
// candidate stay. It is read-only and queries a fresh snapshot on every call;
// the reservation ledger, not this index, is the enforcement point of record
// for conflict-freedom.
type AvailabilityIndex struct {
	db *gorm.DB
}

func NewAvailabilityIndex(db *gorm.DB) *AvailabilityIndex {
	return &AvailabilityIndex{db: db}
}

// IsRoomOpen reports whether at least one availability window of the room
// fully covers the stay [start, end). Windows are inclusive on both ends, so
// the checkout date itself must fall inside the window.
func (idx *AvailabilityIndex) IsRoomOpen(roomID uint, start, end time.Time) (bool, error) {
	var count int64
	err := idx.db.Model(&models.RoomAvailability{}).
		Where("room_id = ? AND available_from <= ? AND available_to >= ?",
			roomID, DateOnly(start), DateOnly(end)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("query availability windows: %w", err)
	}
	return count > 0, nil
}

// OpenRooms narrows roomIDs to those with a window covering [start, end).
func (idx *AvailabilityIndex) OpenRooms(roomIDs []uint, start, end time.Time) ([]uint, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var open []uint
	err := idx.db.Model(&models.RoomAvailability{}).
		Distinct("room_id").
		Where("room_id IN ? AND available_from <= ? AND available_to >= ?",
			roomIDs, DateOnly(start), DateOnly(end)).
		Pluck("room_id", &open).Error
	if err != nil {
		return nil, fmt.Errorf("query availability windows: %w", err)
	}
	return open, nil
}
