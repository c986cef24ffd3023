package dto

import (
	"time"

	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/models"
)

type VenueResponse struct {
	ID        uint      `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type RentalResponse struct {
	ID        uint      `json:"id"`
	VenueID   uint      `json:"venue_id"`
	UserID    string    `json:"user_id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
}

type EventResponse struct {
	ID          uint      `json:"id"`
	VenueID     uint      `json:"venue_id"`
	OrganizerID string    `json:"organizer_id"`
	Name        string    `json:"name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	InviteOnly  bool      `json:"invite_only"`
	CreatedAt   time.Time `json:"created_at"`
}

type InvitationResponse struct {
	ID        uint                    `json:"id"`
	EventID   uint                    `json:"event_id"`
	UserID    string                  `json:"user_id"`
	Status    models.InvitationStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}

type AvailabilityResponse struct {
	VenueID uint     `json:"venue_id"`
	Days    []string `json:"days"`
}

type ErrorResponse struct {
	Message     string   `json:"message"`
	MissingDays []string `json:"missing_days,omitempty"`
}

func ToVenueResponse(v *models.Venue) VenueResponse {
	return VenueResponse{
		ID:        v.ID,
		OwnerID:   v.OwnerID,
		Name:      v.Name,
		Capacity:  v.Capacity,
		Price:     v.Price,
		CreatedAt: v.CreatedAt,
	}
}

func ToRentalResponse(r *models.Rental) RentalResponse {
	return RentalResponse{
		ID:        r.ID,
		VenueID:   r.VenueID,
		UserID:    r.UserID,
		StartDate: daterange.Day(r.StartDate).Format(daterange.Layout),
		EndDate:   daterange.Day(r.EndDate).Format(daterange.Layout),
		CreatedAt: r.CreatedAt,
	}
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		VenueID:     e.VenueID,
		OrganizerID: e.OrganizerID,
		Name:        e.Name,
		StartDate:   daterange.Day(e.StartDate).Format(daterange.Layout),
		EndDate:     daterange.Day(e.EndDate).Format(daterange.Layout),
		InviteOnly:  e.InviteOnly,
		CreatedAt:   e.CreatedAt,
	}
}

func ToInvitationResponse(i *models.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:        i.ID,
		EventID:   i.EventID,
		UserID:    i.UserID,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
	}
}

func ToAvailabilityResponse(venueID uint, days []models.AvailableDay) AvailabilityResponse {
	out := AvailabilityResponse{VenueID: venueID, Days: make([]string, len(days))}
	for i, d := range days {
		out.Days[i] = daterange.Day(d.Date).Format(daterange.Layout)
	}
	return out
}
