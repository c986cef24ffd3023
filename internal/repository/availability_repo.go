package repository

import (
	"context"
	"time"

	"github.com/venuebook/venue-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AvailabilityRepository interface {
	OpenDay(ctx context.Context, venueID uint, day time.Time) error
	CloseDay(ctx context.Context, venueID uint, day time.Time) error
	FindDays(ctx context.Context, tx *gorm.DB, venueID uint, days []time.Time) ([]models.AvailableDay, error)
	ListByVenue(ctx context.Context, venueID uint) ([]models.AvailableDay, error)
}

type availabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &availabilityRepository{db: db}
}

// OpenDay marks one calendar day bookable. Re-opening an already-open day
// is a no-op, handled by the (venue_id, date) unique index.
func (r *availabilityRepository) OpenDay(ctx context.Context, venueID uint, day time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "venue_id"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(&models.AvailableDay{VenueID: venueID, Date: day}).Error
}

// CloseDay removes a day from the ledger; closing a day that was never open
// is a no-op.
func (r *availabilityRepository) CloseDay(ctx context.Context, venueID uint, day time.Time) error {
	return r.db.WithContext(ctx).
		Where("venue_id = ? AND date = ?", venueID, day).
		Delete(&models.AvailableDay{}).Error
}

// FindDays returns the subset of the requested days that are present in the
// venue's ledger. Callers diff against the request to find missing days.
func (r *availabilityRepository) FindDays(ctx context.Context, tx *gorm.DB, venueID uint, days []time.Time) ([]models.AvailableDay, error) {
	var found []models.AvailableDay
	err := tx.WithContext(ctx).
		Where("venue_id = ? AND date IN ?", venueID, days).
		Order("date ASC").
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *availabilityRepository) ListByVenue(ctx context.Context, venueID uint) ([]models.AvailableDay, error) {
	var days []models.AvailableDay
	err := r.db.WithContext(ctx).
		Where("venue_id = ?", venueID).
		Order("date ASC").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}
