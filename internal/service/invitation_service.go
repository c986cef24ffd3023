package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/repository"
	"github.com/venuebook/venue-service/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrCapacityExceeded   = errors.New("event venue is at capacity")
	ErrInvalidTransition  = errors.New("invitation status transition not permitted")
	ErrAlreadyInvited     = errors.New("user already has an invitation for this event")
)

type InvitationService interface {
	SendInvitation(ctx context.Context, eventID uint, userID string) (*models.Invitation, error)
	AcceptInvitation(ctx context.Context, invitationID uint) (*models.Invitation, error)
	DeclineInvitation(ctx context.Context, invitationID uint) (*models.Invitation, error)
	GetInvitation(ctx context.Context, id uint) (*models.Invitation, error)
	ListInvitations(ctx context.Context, eventID uint, status *models.InvitationStatus) ([]models.Invitation, error)
}

type invitationService struct {
	inviteRepo repository.InvitationRepository
	eventRepo  repository.EventRepository
	venueRepo  repository.VenueRepository
	publisher  *rabbitmq.Publisher
}

func NewInvitationService(
	inviteRepo repository.InvitationRepository,
	eventRepo repository.EventRepository,
	venueRepo repository.VenueRepository,
	publisher *rabbitmq.Publisher,
) InvitationService {
	return &invitationService{
		inviteRepo: inviteRepo,
		eventRepo:  eventRepo,
		venueRepo:  venueRepo,
		publisher:  publisher,
	}
}

func (s *invitationService) SendInvitation(ctx context.Context, eventID uint, userID string) (*models.Invitation, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	invitation := &models.Invitation{
		EventID: eventID,
		UserID:  userID,
		Status:  models.StatusSent,
	}
	if err := s.inviteRepo.Create(ctx, invitation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInvited
		}
		return nil, fmt.Errorf("insert invitation: %w", err)
	}
	return invitation, nil
}

// AcceptInvitation transitions an invitation to accepted, gated by the
// venue's capacity. The count of accepted invitations is recomputed inside
// the transaction, after locking the event row, so two concurrent accepts
// cannot both read a stale count and slip past the ceiling together.
func (s *invitationService) AcceptInvitation(ctx context.Context, invitationID uint) (*models.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var result *models.Invitation

	err := s.inviteRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the invitation row first, then the event row. The transition
		// check must see the committed status, not a snapshot from before a
		// concurrent accept or decline landed.
		invitation, err := s.inviteRepo.FindByIDForUpdate(ctx, tx, invitationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("lock invitation: %w", err)
		}

		if !invitation.CanTransitionTo(models.StatusAccepted) {
			return ErrInvalidTransition
		}

		// Lock the event row — serializes concurrent acceptances
		event, err := s.eventRepo.FindByIDForUpdate(ctx, tx, invitation.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}

		venue, err := s.venueRepo.FindByID(ctx, tx, event.VenueID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return fmt.Errorf("find venue: %w", err)
		}

		accepted, err := s.inviteRepo.CountByStatus(ctx, tx, event.ID, models.StatusAccepted)
		if err != nil {
			return fmt.Errorf("count accepted: %w", err)
		}
		if accepted >= int64(venue.Capacity) {
			return ErrCapacityExceeded
		}

		if err := s.inviteRepo.UpdateStatus(ctx, tx, invitation.ID, models.StatusAccepted); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		invitation.Status = models.StatusAccepted
		result = invitation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("invitation.accepted", result)
	return result, nil
}

// DeclineInvitation needs no capacity check; it still validates the
// transition inside the transaction so a concurrent status change cannot
// be overwritten blindly.
func (s *invitationService) DeclineInvitation(ctx context.Context, invitationID uint) (*models.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	var result *models.Invitation

	err := s.inviteRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		invitation, err := s.inviteRepo.FindByIDForUpdate(ctx, tx, invitationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}
			return fmt.Errorf("lock invitation: %w", err)
		}

		if !invitation.CanTransitionTo(models.StatusDeclined) {
			return ErrInvalidTransition
		}

		if err := s.inviteRepo.UpdateStatus(ctx, tx, invitation.ID, models.StatusDeclined); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		invitation.Status = models.StatusDeclined
		result = invitation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("invitation.declined", result)
	return result, nil
}

func (s *invitationService) GetInvitation(ctx context.Context, id uint) (*models.Invitation, error) {
	invitation, err := s.inviteRepo.FindByID(ctx, s.inviteRepo.GetDB(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return invitation, nil
}

func (s *invitationService) ListInvitations(ctx context.Context, eventID uint, status *models.InvitationStatus) ([]models.Invitation, error) {
	return s.inviteRepo.FindByEventID(ctx, eventID, status)
}

func (s *invitationService) publish(routingKey string, invitation *models.Invitation) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, invitation); err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
}
