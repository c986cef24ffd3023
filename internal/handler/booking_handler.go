package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/dto"
	"github.com/venuebook/venue-service/internal/service"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	venues := e.Group("/api/v1/venues")
	venues.POST("/:id/rentals", h.CreateRental)
	venues.GET("/:id/rentals", h.ListRentals)

	e.GET("/api/v1/rentals/:id", h.GetRental)
	e.PUT("/api/v1/rentals/:id", h.UpdateRental)
	e.DELETE("/api/v1/rentals/:id", h.CancelRental)
}

func (h *BookingHandler) CreateRental(c echo.Context) error {
	venueID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	var req dto.CreateRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	rental, err := h.svc.CreateRental(c.Request().Context(), venueID, req.UserID, req.StartDate, req.EndDate)
	if err != nil {
		return bookingHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToRentalResponse(rental))
}

func (h *BookingHandler) UpdateRental(c echo.Context) error {
	rentalID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rental id")
	}

	var req dto.UpdateRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	rental, err := h.svc.UpdateRental(c.Request().Context(), rentalID, req.StartDate, req.EndDate)
	if err != nil {
		return bookingHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToRentalResponse(rental))
}

func (h *BookingHandler) CancelRental(c echo.Context) error {
	rentalID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rental id")
	}

	if err := h.svc.CancelRental(c.Request().Context(), rentalID); err != nil {
		return bookingHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *BookingHandler) GetRental(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rental id")
	}

	rental, err := h.svc.GetRental(c.Request().Context(), id)
	if err != nil {
		return bookingHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToRentalResponse(rental))
}

func (h *BookingHandler) ListRentals(c echo.Context) error {
	venueID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	rentals, err := h.svc.ListRentals(c.Request().Context(), venueID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.RentalResponse, len(rentals))
	for i := range rentals {
		resp[i] = dto.ToRentalResponse(&rentals[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// bookingHTTPError maps service failures to status codes: bad input 400,
// admission conflicts 409, unknown resources 404, everything else 500. The
// original error rides along as the HTTPError internal so the central error
// handler can surface conflict detail.
func bookingHTTPError(err error) error {
	var unavailable *service.DatesUnavailableError
	var overlap *daterange.OverlapError

	switch {
	case errors.Is(err, daterange.ErrInvalidFormat),
		errors.Is(err, daterange.ErrStartAfterEnd),
		errors.Is(err, daterange.ErrDateInPast),
		errors.Is(err, daterange.ErrRangeTooLong):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &unavailable), errors.As(err, &overlap):
		return echo.NewHTTPError(http.StatusConflict, err.Error()).SetInternal(err)
	case errors.Is(err, service.ErrVenueNotFound),
		errors.Is(err, service.ErrRentalNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
