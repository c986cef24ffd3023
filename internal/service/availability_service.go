package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/repository"
	"gorm.io/gorm"
)

// AvailabilityService maintains the per-venue ledger of bookable days.
type AvailabilityService interface {
	OpenDay(ctx context.Context, venueID uint, date string) error
	CloseDay(ctx context.Context, venueID uint, date string) error
	ListDays(ctx context.Context, venueID uint) ([]models.AvailableDay, error)
}

type availabilityService struct {
	availRepo repository.AvailabilityRepository
	venueRepo repository.VenueRepository
}

func NewAvailabilityService(availRepo repository.AvailabilityRepository, venueRepo repository.VenueRepository) AvailabilityService {
	return &availabilityService{availRepo: availRepo, venueRepo: venueRepo}
}

// OpenDay marks one day bookable. Idempotent: re-opening an open day
// succeeds without effect.
func (s *availabilityService) OpenDay(ctx context.Context, venueID uint, date string) error {
	day, err := s.resolve(ctx, venueID, date)
	if err != nil {
		return err
	}
	if err := s.availRepo.OpenDay(ctx, venueID, day); err != nil {
		return fmt.Errorf("open day: %w", err)
	}
	return nil
}

// CloseDay removes one day from the ledger. Idempotent; existing rentals
// over that day are untouched.
func (s *availabilityService) CloseDay(ctx context.Context, venueID uint, date string) error {
	day, err := s.resolve(ctx, venueID, date)
	if err != nil {
		return err
	}
	if err := s.availRepo.CloseDay(ctx, venueID, day); err != nil {
		return fmt.Errorf("close day: %w", err)
	}
	return nil
}

func (s *availabilityService) ListDays(ctx context.Context, venueID uint) ([]models.AvailableDay, error) {
	if _, err := s.venueRepo.FindByID(ctx, s.venueRepo.GetDB(), venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return s.availRepo.ListByVenue(ctx, venueID)
}

func (s *availabilityService) resolve(ctx context.Context, venueID uint, date string) (day time.Time, err error) {
	day, err = daterange.ParseDay(date)
	if err != nil {
		return day, err
	}
	if _, err := s.venueRepo.FindByID(ctx, s.venueRepo.GetDB(), venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return day, ErrVenueNotFound
		}
		return day, err
	}
	return day, nil
}
