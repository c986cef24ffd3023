package repository

import (
	"context"

	"github.com/venuebook/venue-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InvitationRepository interface {
	Create(ctx context.Context, invitation *models.Invitation) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Invitation, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Invitation, error)
	FindByEventID(ctx context.Context, eventID uint, status *models.InvitationStatus) ([]models.Invitation, error)
	CountByStatus(ctx context.Context, tx *gorm.DB, eventID uint, status models.InvitationStatus) (int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, invitationID uint, status models.InvitationStatus) error
	GetDB() *gorm.DB
}

type invitationRepository struct {
	db *gorm.DB
}

func NewInvitationRepository(db *gorm.DB) InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *invitationRepository) Create(ctx context.Context, invitation *models.Invitation) error {
	return r.db.WithContext(ctx).Create(invitation).Error
}

func (r *invitationRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := tx.WithContext(ctx).First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindByIDForUpdate acquires a row-level lock on the invitation within the
// given transaction. Status transitions validate against the locked row, so
// two concurrent moves on one invitation serialize here and the loser sees
// the committed status, not the stale one. Lock order is always invitation
// first, then event.
func (r *invitationRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invitation, id).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

func (r *invitationRepository) FindByEventID(ctx context.Context, eventID uint, status *models.InvitationStatus) ([]models.Invitation, error) {
	var invitations []models.Invitation
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&invitations).Error; err != nil {
		return nil, err
	}
	return invitations, nil
}

// CountByStatus recomputes the live count inside the caller's transaction.
// The capacity gate depends on this running after the event row lock is
// held, never on a count read before the transaction began.
func (r *invitationRepository) CountByStatus(ctx context.Context, tx *gorm.DB, eventID uint, status models.InvitationStatus) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("event_id = ? AND status = ?", eventID, status).
		Count(&count).Error
	return count, err
}

func (r *invitationRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, invitationID uint, status models.InvitationStatus) error {
	return tx.WithContext(ctx).
		Model(&models.Invitation{}).
		Where("id = ?", invitationID).
		Update("status", status).Error
}
