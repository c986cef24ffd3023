package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/repository"
	"gorm.io/gorm"
)

// VenueService manages venue records.
type VenueService interface {
	CreateVenue(ctx context.Context, venue *models.Venue) error
	GetVenue(ctx context.Context, id uint) (*models.Venue, error)
}

type venueService struct {
	venueRepo repository.VenueRepository
}

func NewVenueService(venueRepo repository.VenueRepository) VenueService {
	return &venueService{venueRepo: venueRepo}
}

func (s *venueService) CreateVenue(ctx context.Context, venue *models.Venue) error {
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

func (s *venueService) GetVenue(ctx context.Context, id uint) (*models.Venue, error) {
	venue, err := s.venueRepo.FindByID(ctx, s.venueRepo.GetDB(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return venue, nil
}
