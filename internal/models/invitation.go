package models

import "time"

type InvitationStatus string

const (
	StatusSent     InvitationStatus = "sent"
	StatusAccepted InvitationStatus = "accepted"
	StatusDeclined InvitationStatus = "declined"
)

// Invitation admits one user to one event. Acceptance is gated by the
// venue's capacity; an invitation holds exactly one status at a time.
type Invitation struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	EventID   uint             `gorm:"not null;index" json:"event_id"`
	UserID    string           `gorm:"not null" json:"user_id"`
	Status    InvitationStatus `gorm:"type:varchar(20);not null;default:'sent'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// CanTransitionTo enumerates the permitted status moves. Declined->Accepted
// is allowed here but the capacity gate still applies at accept time.
func (i *Invitation) CanTransitionTo(next InvitationStatus) bool {
	switch i.Status {
	case StatusSent:
		return next == StatusAccepted || next == StatusDeclined
	case StatusAccepted:
		return next == StatusDeclined
	case StatusDeclined:
		return next == StatusAccepted
	}
	return false
}
