package models

import "time"

type Venue struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   string    `gorm:"not null" json:"owner_id"`
	Name      string    `gorm:"not null" json:"name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailableDay is one calendar day a venue owner has opened for rental.
// Unique per (venue, date); independent of rentals: booking a day does not
// remove it and cancelling a rental does not restore anything here.
type AvailableDay struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VenueID   uint      `gorm:"not null;index" json:"venue_id"`
	Date      time.Time `gorm:"not null;type:date" json:"date"`
	CreatedAt time.Time `json:"created_at"`
}
