package database

import (
	"log"

	"github.com/venuebook/venue-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Venue{},
		&models.AvailableDay{},
		&models.Rental{},
		&models.Event{},
		&models.Invitation{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One row per venue per day; OpenDay relies on this for idempotence
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_available_day
		ON available_days (venue_id, date)
	`)

	// One invitation per user per event
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_invitation_user_event
		ON invitations (event_id, user_id)
	`)

	return db
}
