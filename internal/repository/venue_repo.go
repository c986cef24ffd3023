package repository

import (
	"context"

	"github.com/venuebook/venue-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *models.Venue) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error)
	GetDB() *gorm.DB
}

type venueRepository struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepository{db: db}
}

func (r *venueRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *venueRepository) Create(ctx context.Context, venue *models.Venue) error {
	return r.db.WithContext(ctx).Create(venue).Error
}

// FindByID reads through the given handle so callers inside a transaction
// see transaction-consistent state; callers outside one pass GetDB().
func (r *venueRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := tx.WithContext(ctx).First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}

// FindByIDForUpdate acquires a row-level lock on the venue within the given
// transaction. Every rental mutation for a venue goes through this lock, so
// concurrent bookings of the same venue serialize.
func (r *venueRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Venue, error) {
	var venue models.Venue
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&venue, id).Error; err != nil {
		return nil, err
	}
	return &venue, nil
}
