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

type EventService interface {
	CreateEvent(ctx context.Context, venueID uint, organizerID, name, startDate, endDate string, inviteOnly bool) (*models.Event, error)
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	venueRepo repository.VenueRepository
	now       func() time.Time
}

func NewEventService(eventRepo repository.EventRepository, venueRepo repository.VenueRepository) EventService {
	return &eventService{eventRepo: eventRepo, venueRepo: venueRepo, now: time.Now}
}

func (s *eventService) CreateEvent(ctx context.Context, venueID uint, organizerID, name, startDate, endDate string, inviteOnly bool) (*models.Event, error) {
	rng, err := daterange.Parse(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if err := rng.ValidateNotPast(s.now()); err != nil {
		return nil, err
	}
	if err := rng.ValidateLength(); err != nil {
		return nil, err
	}

	if _, err := s.venueRepo.FindByID(ctx, s.venueRepo.GetDB(), venueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}

	event := &models.Event{
		VenueID:     venueID,
		OrganizerID: organizerID,
		Name:        name,
		StartDate:   rng.Start,
		EndDate:     rng.End,
		InviteOnly:  inviteOnly,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}
