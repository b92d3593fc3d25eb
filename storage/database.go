package storage

import (
	"log"
	"os"

	"github.com/fulltechdev/kiame-hotel/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

func performMigrations(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Room{},
		&models.RoomAvailability{},
		&models.Reservation{},
		&models.AuditLog{},
	)

	// Storage-level backstop for the booking invariant: active reservations
	// on the same room must never overlap. A losing concurrent writer gets an
	// exclusion violation which the ledger translates into a conflict.
	// AutoMigrate cannot express this, so it is applied raw.
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
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	performMigrations(db)
	return db
}
