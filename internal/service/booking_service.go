package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/repository"
	"github.com/venuebook/venue-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrVenueNotFound  = errors.New("venue not found")
	ErrRentalNotFound = errors.New("rental not found")
)

// txTimeout bounds every admission transaction so a stuck client cannot
// starve other bookers waiting on the venue lock.
const txTimeout = 5 * time.Second

// DatesUnavailableError lists every requested day missing from the venue's
// availability ledger.
type DatesUnavailableError struct {
	MissingDays []time.Time
}

func (e *DatesUnavailableError) Error() string {
	days := make([]string, len(e.MissingDays))
	for i, d := range e.MissingDays {
		days[i] = d.Format(daterange.Layout)
	}
	return "dates not available: " + strings.Join(days, ", ")
}

type BookingService interface {
	CreateRental(ctx context.Context, venueID uint, userID, startDate, endDate string) (*models.Rental, error)
	UpdateRental(ctx context.Context, rentalID uint, startDate, endDate string) (*models.Rental, error)
	CancelRental(ctx context.Context, rentalID uint) error
	GetRental(ctx context.Context, id uint) (*models.Rental, error)
	ListRentals(ctx context.Context, venueID uint) ([]models.Rental, error)
}

type bookingService struct {
	rentalRepo repository.RentalRepository
	venueRepo  repository.VenueRepository
	availRepo  repository.AvailabilityRepository
	publisher  *rabbitmq.Publisher
	now        func() time.Time
}

func NewBookingService(
	rentalRepo repository.RentalRepository,
	venueRepo repository.VenueRepository,
	availRepo repository.AvailabilityRepository,
	publisher *rabbitmq.Publisher,
) BookingService {
	return &bookingService{
		rentalRepo: rentalRepo,
		venueRepo:  venueRepo,
		availRepo:  availRepo,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *bookingService) CreateRental(ctx context.Context, venueID uint, userID, startDate, endDate string) (*models.Rental, error) {
	rng, err := s.validateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var result *models.Rental

	err = s.rentalRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the venue row — serializes all rental mutations per venue
		if _, err := s.venueRepo.FindByIDForUpdate(ctx, tx, venueID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("lock venue: %w", err)
		}

		// 2. Every day in range must be open, 3. no collision with rentals
		if err := s.checkAdmission(ctx, tx, venueID, rng, 0); err != nil {
			return err
		}

		// 4. Persist
		rental := &models.Rental{
			UserID:    userID,
			VenueID:   venueID,
			StartDate: rng.Start,
			EndDate:   rng.End,
		}
		if err := s.rentalRepo.Create(ctx, tx, rental); err != nil {
			return fmt.Errorf("insert rental: %w", err)
		}
		result = rental
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("rental.created", result)
	return result, nil
}

func (s *bookingService) UpdateRental(ctx context.Context, rentalID uint, startDate, endDate string) (*models.Rental, error) {
	rng, err := s.validateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var result *models.Rental

	err = s.rentalRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rental, err := s.rentalRepo.FindByID(ctx, tx, rentalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRentalNotFound
			}
			return fmt.Errorf("find rental: %w", err)
		}

		if _, err := s.venueRepo.FindByIDForUpdate(ctx, tx, rental.VenueID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("lock venue: %w", err)
		}

		// Same checks as create, but the rental must not collide with its
		// own previous range.
		if err := s.checkAdmission(ctx, tx, rental.VenueID, rng, rental.ID); err != nil {
			return err
		}

		rental.StartDate = rng.Start
		rental.EndDate = rng.End
		if err := s.rentalRepo.UpdateDates(ctx, tx, rental); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRentalNotFound
			}
			return fmt.Errorf("update rental: %w", err)
		}
		result = rental
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("rental.updated", result)
	return result, nil
}

// CancelRental removes the rental. The underlying days are not returned to
// the availability ledger; availability and rentals are independent and the
// owner re-opens days explicitly.
func (s *bookingService) CancelRental(ctx context.Context, rentalID uint) error {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var cancelled *models.Rental

	err := s.rentalRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rental, err := s.rentalRepo.FindByID(ctx, tx, rentalID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRentalNotFound
			}
			return fmt.Errorf("find rental: %w", err)
		}

		if err := s.rentalRepo.Delete(ctx, tx, rental.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRentalNotFound
			}
			return fmt.Errorf("delete rental: %w", err)
		}
		cancelled = rental
		return nil
	})
	if err != nil {
		return err
	}

	s.publish("rental.cancelled", cancelled)
	return nil
}

func (s *bookingService) GetRental(ctx context.Context, id uint) (*models.Rental, error) {
	rental, err := s.rentalRepo.FindByID(ctx, s.rentalRepo.GetDB(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return rental, nil
}

func (s *bookingService) ListRentals(ctx context.Context, venueID uint) ([]models.Rental, error) {
	return s.rentalRepo.FindByVenue(ctx, s.rentalRepo.GetDB(), venueID, 0)
}

func (s *bookingService) validateRange(startDate, endDate string) (daterange.DateRange, error) {
	rng, err := daterange.Parse(startDate, endDate)
	if err != nil {
		return daterange.DateRange{}, err
	}
	if err := rng.ValidateNotPast(s.now()); err != nil {
		return daterange.DateRange{}, err
	}
	if err := rng.ValidateLength(); err != nil {
		return daterange.DateRange{}, err
	}
	return rng, nil
}

// checkAdmission runs the two admission checks under the caller's venue
// lock: full availability coverage, then no overlap with existing rentals.
func (s *bookingService) checkAdmission(ctx context.Context, tx *gorm.DB, venueID uint, rng daterange.DateRange, excludeRentalID uint) error {
	wanted := rng.Days()
	open, err := s.availRepo.FindDays(ctx, tx, venueID, wanted)
	if err != nil {
		return fmt.Errorf("read availability: %w", err)
	}

	present := make(map[string]struct{}, len(open))
	for _, d := range open {
		present[daterange.Day(d.Date).Format(daterange.Layout)] = struct{}{}
	}
	var missing []time.Time
	for _, d := range wanted {
		if _, ok := present[d.Format(daterange.Layout)]; !ok {
			missing = append(missing, d)
		}
	}
	if len(missing) > 0 {
		return &DatesUnavailableError{MissingDays: missing}
	}

	rentals, err := s.rentalRepo.FindByVenue(ctx, tx, venueID, excludeRentalID)
	if err != nil {
		return fmt.Errorf("read rentals: %w", err)
	}
	existing := make([]daterange.DateRange, len(rentals))
	for i := range rentals {
		existing[i] = rentals[i].Range()
	}
	return daterange.ValidateNoOverlap(rng, existing)
}

func (s *bookingService) publish(routingKey string, rental *models.Rental) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, rental); err != nil {
		// Notifications are best-effort; the booking itself is committed.
		log.Printf("publish %s failed: %v", routingKey, err)
	}
}
