package models

import (
	"time"

	"github.com/venuebook/venue-service/internal/daterange"
)

// Rental is a confirmed reservation of a contiguous date range at a venue.
// StartDate and EndDate are inclusive calendar days.
type Rental struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"not null" json:"user_id"`
	VenueID   uint      `gorm:"not null;index" json:"venue_id"`
	StartDate time.Time `gorm:"not null;type:date" json:"start_date"`
	EndDate   time.Time `gorm:"not null;type:date" json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Venue *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
}

// Range rebuilds the rental's DateRange from its persisted columns. The
// driver may return date columns in a non-UTC location, so both endpoints
// are re-truncated.
func (r *Rental) Range() daterange.DateRange {
	return daterange.DateRange{
		Start: daterange.Day(r.StartDate),
		End:   daterange.Day(r.EndDate),
	}
}
