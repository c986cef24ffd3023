package models

import "time"

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	VenueID     uint      `gorm:"not null;index" json:"venue_id"`
	OrganizerID string    `gorm:"not null" json:"organizer_id"`
	Name        string    `gorm:"not null" json:"name"`
	StartDate   time.Time `gorm:"not null;type:date" json:"start_date"`
	EndDate     time.Time `gorm:"not null;type:date" json:"end_date"`
	InviteOnly  bool      `gorm:"not null;default:false" json:"invite_only"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Venue *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
}
