package dto

type CreateVenueRequest struct {
	OwnerID  string  `json:"owner_id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Capacity int     `json:"capacity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

type AvailabilityDayRequest struct {
	Date string `json:"date" validate:"required"`
}

type CreateRentalRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type UpdateRentalRequest struct {
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type CreateEventRequest struct {
	VenueID     uint   `json:"venue_id" validate:"required"`
	OrganizerID string `json:"organizer_id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	StartDate   string `json:"start_date" validate:"required"`
	EndDate     string `json:"end_date" validate:"required"`
	InviteOnly  bool   `json:"invite_only"`
}

type SendInvitationRequest struct {
	UserID string `json:"user_id" validate:"required"`
}
