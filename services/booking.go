package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fulltechdev/kiame-hotel/models"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// SearchFilter narrows the room search. Start and End are only honored when
// both are present; searching without dates is a permissive browsing mode.
type SearchFilter struct {
	Type     string
	MaxPrice float64
	Start    *time.Time
	End      *time.Time
}

// BookingResolver orchestrates the availability index and the reservation
// ledger. Both booking flows (self-service and admin-direct) go through Book,
// so the non-overlap invariant is enforced in exactly one place.
type BookingResolver struct {
	db     *gorm.DB
	index  *AvailabilityIndex
	ledger *ReservationLedger
}

func NewBookingResolver(db *gorm.DB) *BookingResolver {
	return &BookingResolver{
		db:     db,
		index:  NewAvailabilityIndex(db),
		ledger: NewReservationLedger(db),
	}
}

// Ledger exposes the reservation ledger for status transitions.
func (r *BookingResolver) Ledger() *ReservationLedger { return r.ledger }

// Search returns rooms matching the filter, cheapest first. When both dates
// are present the result is narrowed to rooms whose availability windows
// cover the stay and which hold no overlapping active reservation.
func (r *BookingResolver) Search(filter SearchFilter) ([]models.Room, error) {
	q := r.db.Model(&models.Room{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", filter.MaxPrice)
	}

	var rooms []models.Room
	if err := q.Order("price_per_night ASC").Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}

	if filter.Start == nil || filter.End == nil || len(rooms) == 0 {
		return rooms, nil
	}
	start, end := *filter.Start, *filter.End
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	ids := make([]uint, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}

	open, err := r.index.OpenRooms(ids, start, end)
	if err != nil {
		return nil, err
	}
	booked, err := r.ledger.ActiveReservationsOverlapping(ids, start, end)
	if err != nil {
		return nil, err
	}

	available := rooms[:0]
	for _, room := range rooms {
		if slices.Contains(open, room.ID) && !slices.Contains(booked, room.ID) {
			available = append(available, room)
		}
	}
	return available, nil
}

// Quote prices a candidate stay without reserving anything.
func (r *BookingResolver) Quote(roomID uint, start, end time.Time) (*Quote, error) {
	var room models.Room
	if err := r.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load room: %w", err)
	}
	nights, err := Nights(start, end)
	if err != nil {
		return nil, err
	}
	return &Quote{Nights: nights, TotalPrice: TotalPrice(room.PricePerNight, nights)}, nil
}

// Book validates openness and overlap immediately before delegating to the
// ledger, closing the check-then-act gap as far as the application layer can;
// the ledger's atomic check-and-insert remains the final authority.
func (r *BookingResolver) Book(userID, roomID uint, start, end time.Time, initialStatus string) (*models.Reservation, error) {
	if _, err := Nights(start, end); err != nil {
		return nil, err
	}

	open, err := r.index.IsRoomOpen(roomID, start, end)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, ErrConflict
	}

	booked, err := r.ledger.ActiveReservationsOverlapping([]uint{roomID}, start, end)
	if err != nil {
		return nil, err
	}
	if len(booked) > 0 {
		return nil, ErrConflict
	}

	return r.ledger.CreateReservation(userID, roomID, start, end, initialStatus)
}
