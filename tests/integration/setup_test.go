//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/venuebook/venue-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "venue_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	// Drop and recreate tables for clean state
	dropTables()

	if err := testDB.AutoMigrate(
		&models.Venue{},
		&models.AvailableDay{},
		&models.Rental{},
		&models.Event{},
		&models.Invitation{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_available_day
		ON available_days (venue_id, date)
	`)
	testDB.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_invitation_user_event
		ON invitations (event_id, user_id)
	`)

	code := m.Run()

	dropTables()

	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS invitations")
	testDB.Exec("DROP TABLE IF EXISTS events")
	testDB.Exec("DROP TABLE IF EXISTS rentals")
	testDB.Exec("DROP TABLE IF EXISTS available_days")
	testDB.Exec("DROP TABLE IF EXISTS venues")
}

func cleanTables() {
	testDB.Exec("DELETE FROM invitations")
	testDB.Exec("DELETE FROM events")
	testDB.Exec("DELETE FROM rentals")
	testDB.Exec("DELETE FROM available_days")
	testDB.Exec("DELETE FROM venues")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
