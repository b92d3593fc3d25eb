package services

import (
	"sync"
	"testing"
	"time"

	"github.com/fulltechdev/kiame-hotel/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReservationConflict(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	room := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := ledger.CreateReservation(alice.ID, room.ID, date(2024, 6, 1), date(2024, 6, 5), models.ReservationPending)
	require.NoError(t, err)

	// A pending reservation holds the room just like a confirmed one.
	_, err = ledger.CreateReservation(bob.ID, room.ID, date(2024, 6, 3), date(2024, 6, 7), models.ReservationPending)
	assert.ErrorIs(t, err, ErrConflict)

	// A different room is unaffected.
	other := createTestRoom(t, db, "102", models.RoomTypeStandard, 15000)
	_, err = ledger.CreateReservation(bob.ID, other.ID, date(2024, 6, 3), date(2024, 6, 7), models.ReservationPending)
	assert.NoError(t, err)
}

func TestTouchingIntervalsAllowed(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	room := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	_, err := ledger.CreateReservation(alice.ID, room.ID, date(2024, 6, 1), date(2024, 6, 5), models.ReservationConfirmed)
	require.NoError(t, err)

	// Checkout day equals the next check-in day: no shared night.
	_, err = ledger.CreateReservation(bob.ID, room.ID, date(2024, 6, 5), date(2024, 6, 8), models.ReservationPending)
	assert.NoError(t, err)
}

func TestCancellationFreesCapacity(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	room := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	first, err := ledger.CreateReservation(alice.ID, room.ID, date(2024, 7, 1), date(2024, 7, 4), models.ReservationPending)
	require.NoError(t, err)

	_, err = ledger.SetStatus(first.ID, models.ReservationCancelled, Actor{UserID: alice.ID})
	require.NoError(t, err)

	// The exact same interval is bookable again.
	_, err = ledger.CreateReservation(bob.ID, room.ID, date(2024, 7, 1), date(2024, 7, 4), models.ReservationPending)
	assert.NoError(t, err)
}

func TestCreateReservationValidation(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	room := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	alice := createTestUser(t, db, "alice@example.com")

	_, err := ledger.CreateReservation(alice.ID, room.ID, date(2024, 6, 5), date(2024, 6, 5), models.ReservationPending)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ledger.CreateReservation(alice.ID, room.ID, date(2024, 6, 5), date(2024, 6, 1), models.ReservationPending)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ledger.CreateReservation(alice.ID, 9999, date(2024, 6, 1), date(2024, 6, 5), models.ReservationPending)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = ledger.CreateReservation(alice.ID, room.ID, date(2024, 6, 1), date(2024, 6, 5), models.ReservationCancelled)
	assert.Error(t, err)
}

func TestConcurrentBookingRace(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	room := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	type attempt struct {
		userID uint
		start  time.Time
		end    time.Time
	}
	attempts := []attempt{
		{alice.ID, date(2024, 6, 1), date(2024, 6, 5)},
		{bob.ID, date(2024, 6, 3), date(2024, 6, 7)},
	}

	errs := make([]error, len(attempts))
	var wg sync.WaitGroup
	for i, a := range attempts {
		wg.Add(1)
		go func(i int, a attempt) {
			defer wg.Done()
			_, errs[i] = ledger.CreateReservation(a.userID, room.ID, a.start, a.end, models.ReservationPending)
		}(i, a)
	}
	wg.Wait()

	successes, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrConflict):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent booking must win")
	assert.Equal(t, 1, conflicts, "the loser must receive a conflict")
}

func TestSetStatusTransitions(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	room := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	alice := createTestUser(t, db, "alice@example.com")
	admin := Actor{UserID: 1, IsAdmin: true}

	res, err := ledger.CreateReservation(alice.ID, room.ID, date(2024, 6, 1), date(2024, 6, 5), models.ReservationPending)
	require.NoError(t, err)

	// pending -> confirmed (admin)
	updated, err := ledger.SetStatus(res.ID, models.ReservationConfirmed, admin)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, updated.Status)

	// confirmed -> pending is never legal, even for an admin
	_, err = ledger.SetStatus(res.ID, models.ReservationPending, admin)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// confirmed -> cancelled (owner)
	updated, err = ledger.SetStatus(res.ID, models.ReservationCancelled, Actor{UserID: alice.ID})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationCancelled, updated.Status)

	// cancelled is terminal
	_, err = ledger.SetStatus(res.ID, models.ReservationConfirmed, admin)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	_, err = ledger.SetStatus(res.ID, models.ReservationCancelled, admin)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestSetStatusActorRules(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	room := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	res, err := ledger.CreateReservation(alice.ID, room.ID, date(2024, 6, 1), date(2024, 6, 5), models.ReservationPending)
	require.NoError(t, err)

	// The owner may not confirm their own reservation.
	_, err = ledger.SetStatus(res.ID, models.ReservationConfirmed, Actor{UserID: alice.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	// A stranger may not touch it at all.
	_, err = ledger.SetStatus(res.ID, models.ReservationCancelled, Actor{UserID: bob.ID})
	assert.ErrorIs(t, err, ErrForbidden)

	// Unknown reservation.
	_, err = ledger.SetStatus(9999, models.ReservationCancelled, Actor{UserID: alice.ID, IsAdmin: true})
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestNonOverlapInvariant drives a mixed sequence of bookings and status
// changes, then asserts the ledger's central property: per room, active
// reservations are pairwise non-overlapping.
func TestNonOverlapInvariant(t *testing.T) {
	db := testDB(t)
	ledger := NewReservationLedger(db)
	roomA := createTestRoom(t, db, "101", models.RoomTypeStandard, 15000)
	roomB := createTestRoom(t, db, "201", models.RoomTypeSuite, 40000)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	admin := Actor{UserID: 1, IsAdmin: true}

	type op struct {
		roomID uint
		userID uint
		start  time.Time
		end    time.Time
		status string
		cancel bool
	}
	ops := []op{
		{roomA.ID, alice.ID, date(2024, 6, 1), date(2024, 6, 5), models.ReservationPending, false},
		{roomA.ID, bob.ID, date(2024, 6, 3), date(2024, 6, 7), models.ReservationPending, false},  // conflicts
		{roomA.ID, bob.ID, date(2024, 6, 5), date(2024, 6, 8), models.ReservationConfirmed, false}, // touches, fine
		{roomB.ID, bob.ID, date(2024, 6, 1), date(2024, 6, 5), models.ReservationConfirmed, false},
		{roomA.ID, alice.ID, date(2024, 6, 10), date(2024, 6, 12), models.ReservationPending, true},
		{roomA.ID, bob.ID, date(2024, 6, 10), date(2024, 6, 12), models.ReservationPending, false}, // rebook after cancel
	}
	for _, o := range ops {
		res, err := ledger.CreateReservation(o.userID, o.roomID, o.start, o.end, o.status)
		if err != nil {
			assert.ErrorIs(t, err, ErrConflict)
			continue
		}
		if o.cancel {
			_, err := ledger.SetStatus(res.ID, models.ReservationCancelled, admin)
			require.NoError(t, err)
		}
	}

	var active []models.Reservation
	require.NoError(t, db.
		Where("status IN ?", []string{models.ReservationPending, models.ReservationConfirmed}).
		Order("room_id, check_in").
		Find(&active).Error)

	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			a, b := active[i], active[j]
			if a.RoomID != b.RoomID {
				continue
			}
			assert.False(t,
				Overlaps(a.CheckIn, a.CheckOut, b.CheckIn, b.CheckOut),
				"reservations %d and %d overlap on room %d", a.ID, b.ID, a.RoomID)
		}
	}
}
