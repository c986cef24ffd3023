package repository

import (
	"context"

	"github.com/venuebook/venue-service/internal/models"
	"gorm.io/gorm"
)

type RentalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, rental *models.Rental) error
	UpdateDates(ctx context.Context, tx *gorm.DB, rental *models.Rental) error
	Delete(ctx context.Context, tx *gorm.DB, rentalID uint) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Rental, error)
	FindByVenue(ctx context.Context, tx *gorm.DB, venueID uint, excludeRentalID uint) ([]models.Rental, error)
	GetDB() *gorm.DB
}

type rentalRepository struct {
	db *gorm.DB
}

func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *rentalRepository) Create(ctx context.Context, tx *gorm.DB, rental *models.Rental) error {
	return tx.WithContext(ctx).Create(rental).Error
}

// UpdateDates rewrites the rental's range. A zero-row update means the
// rental vanished between the read and the write (concurrent cancel), which
// must not pass for success.
func (r *rentalRepository) UpdateDates(ctx context.Context, tx *gorm.DB, rental *models.Rental) error {
	result := tx.WithContext(ctx).
		Model(&models.Rental{}).
		Where("id = ?", rental.ID).
		Updates(map[string]any{
			"start_date": rental.StartDate,
			"end_date":   rental.EndDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, tx *gorm.DB, rentalID uint) error {
	result := tx.WithContext(ctx).Delete(&models.Rental{}, rentalID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID reads through the given handle so callers inside a transaction
// see transaction-consistent state; callers outside one pass GetDB().
func (r *rentalRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Rental, error) {
	var rental models.Rental
	if err := tx.WithContext(ctx).First(&rental, id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

// FindByVenue returns the venue's rentals ordered by start date. On a date
// change the rental being modified passes its own ID as excludeRentalID so
// it does not collide with itself.
func (r *rentalRepository) FindByVenue(ctx context.Context, tx *gorm.DB, venueID uint, excludeRentalID uint) ([]models.Rental, error) {
	var rentals []models.Rental
	q := tx.WithContext(ctx).Where("venue_id = ?", venueID)
	if excludeRentalID != 0 {
		q = q.Where("id <> ?", excludeRentalID)
	}
	if err := q.Order("start_date ASC, id ASC").Find(&rentals).Error; err != nil {
		return nil, err
	}
	return rentals, nil
}
