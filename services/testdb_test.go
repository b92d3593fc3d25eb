package services

import (
	"os"
	"testing"
	"time"

	"github.com/fulltechdev/kiame-hotel/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens a clean database for a ledger/resolver test. These tests need
// a real Postgres (the conflict protocol relies on row locks and an exclusion
// constraint) and skip when TEST_DB_CONNECTION_STRING is not set.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("TEST_DB_CONNECTION_STRING not set; skipping database-backed test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Room{},
		&models.RoomAvailability{},
		&models.Reservation{},
		&models.AuditLog{},
	))
	db.Exec("CREATE EXTENSION IF NOT EXISTS btree_gist;")
	db.Exec(`
		DO $$ BEGIN
			ALTER TABLE reservations
				ADD CONSTRAINT reservations_no_active_overlap
				EXCLUDE USING gist (
					room_id WITH =,
					daterange(check_in::date, check_out::date) WITH &&
				) WHERE (status IN ('pending', 'confirmed') AND deleted_at IS NULL);
		EXCEPTION
			WHEN duplicate_table THEN NULL;
			WHEN duplicate_object THEN NULL;
		END $$;
	`)

	db.Exec("TRUNCATE reservations, room_availabilities, rooms, user_profiles, users, audit_logs RESTART IDENTITY CASCADE")
	return db
}

func createTestRoom(t *testing.T, db *gorm.DB, name, roomType string, price float64) models.Room {
	t.Helper()
	room := models.Room{
		Name:          name,
		Type:          roomType,
		PricePerNight: price,
		Capacity:      2,
	}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func createTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", Role: "user"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestWindow(t *testing.T, db *gorm.DB, roomID uint, from, to string) models.RoomAvailability {
	t.Helper()
	fromDate, err := parseTestDate(from)
	require.NoError(t, err)
	toDate, err := parseTestDate(to)
	require.NoError(t, err)
	window := models.RoomAvailability{RoomID: roomID, AvailableFrom: fromDate, AvailableTo: toDate}
	require.NoError(t, db.Create(&window).Error)
	return window
}

func parseTestDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
