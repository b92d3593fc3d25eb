package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/fulltechdev/kiame-hotel/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Actor identifies the caller of a status transition. The identity provider
// is trusted verbatim.
type Actor struct {
	UserID  uint
	IsAdmin bool
}

// legalTransitions is the full status state machine: pending may be confirmed
// or cancelled, confirmed may only be cancelled, cancelled is terminal.
var legalTransitions = map[string][]string{
	models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed: {models.ReservationCancelled},
	models.ReservationCancelled: {},
}

// ReservationLedger owns every mutation of the reservation store and enforces
// the central invariant: per room, active (pending or confirmed) reservations
// never overlap. CreateReservation is the only entry point that introduces a
// new reservation.
type ReservationLedger struct {
	db *gorm.DB
}

func NewReservationLedger(db *gorm.DB) *ReservationLedger {
	return &ReservationLedger{db: db}
}

// ActiveReservationsOverlapping returns the ids among roomIDs holding a
// pending-or-confirmed reservation whose [check_in, check_out) interval
// overlaps [start, end). Used for search filtering and pre-commit validation.
func (l *ReservationLedger) ActiveReservationsOverlapping(roomIDs []uint, start, end time.Time) ([]uint, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}
	var booked []uint
	err := l.db.Model(&models.Reservation{}).
		Distinct("room_id").
		Where("room_id IN ? AND status IN ? AND check_in < ? AND check_out > ?",
			roomIDs,
			[]string{models.ReservationPending, models.ReservationConfirmed},
			DateOnly(end), DateOnly(start)).
		Pluck("room_id", &booked).Error
	if err != nil {
		return nil, fmt.Errorf("query overlapping reservations: %w", err)
	}
	return booked, nil
}

// CreateReservation inserts a reservation after an overlap check performed
// inside one transaction that holds a row lock on the room. The lock
// serializes concurrent attempts for the same room, so the check and the
// insert form one atomic unit; the database-side exclusion constraint
// (see storage migrations) backstops it, and a losing writer's constraint
// violation is translated to ErrConflict.
//
// Returns ErrInvalidRange when end is not after start, ErrNotFound for an
// unknown room, ErrConflict when an active reservation already overlaps.
func (l *ReservationLedger) CreateReservation(userID, roomID uint, start, end time.Time, initialStatus string) (*models.Reservation, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}
	if initialStatus != models.ReservationPending && initialStatus != models.ReservationConfirmed {
		return nil, fmt.Errorf("initial status %q is not bookable", initialStatus)
	}

	checkIn, checkOut := DateOnly(start), DateOnly(end)
	reservation := models.Reservation{
		RoomID:    roomID,
		UserID:    userID,
		Reference: uuid.NewString(),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Status:    initialStatus,
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		var room models.Room
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lock room row: %w", err)
		}

		var overlapping int64
		if err := tx.Model(&models.Reservation{}).
			Where("room_id = ? AND status IN ? AND check_in < ? AND check_out > ?",
				roomID,
				[]string{models.ReservationPending, models.ReservationConfirmed},
				checkOut, checkIn).
			Count(&overlapping).Error; err != nil {
			return fmt.Errorf("recheck overlap: %w", err)
		}
		if overlapping > 0 {
			return ErrConflict
		}

		if err := tx.Create(&reservation).Error; err != nil {
			return translateConstraintViolation(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// SetStatus applies a status transition on behalf of actor. The owning
// customer may only cancel; an admin may perform any legal transition.
// Returns ErrNotFound, ErrForbidden or ErrIllegalTransition accordingly.
func (l *ReservationLedger) SetStatus(reservationID uint, newStatus string, actor Actor) (*models.Reservation, error) {
	var reservation models.Reservation
	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lock reservation row: %w", err)
		}

		if !actor.IsAdmin {
			if actor.UserID != reservation.UserID || newStatus != models.ReservationCancelled {
				return ErrForbidden
			}
		}

		allowed, ok := legalTransitions[reservation.Status]
		if !ok || !slices.Contains(allowed, newStatus) {
			return ErrIllegalTransition
		}

		reservation.Status = newStatus
		if err := tx.Save(&reservation).Error; err != nil {
			return fmt.Errorf("save reservation: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// translateConstraintViolation maps the Postgres exclusion/unique violation a
// losing concurrent writer receives into ErrConflict. Anything else is an
// infrastructure failure and is passed through.
func translateConstraintViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23P01 exclusion_violation, 23505 unique_violation
		if pgErr.Code == "23P01" || pgErr.Code == "23505" {
			return ErrConflict
		}
	}
	return fmt.Errorf("insert reservation: %w", err)
}
