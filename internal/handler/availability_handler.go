package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/dto"
	"github.com/venuebook/venue-service/internal/service"
)

type AvailabilityHandler struct {
	svc service.AvailabilityService
}

func NewAvailabilityHandler(svc service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{svc: svc}
}

func (h *AvailabilityHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/venues/:id/availability")
	g.POST("", h.OpenDay)
	g.DELETE("", h.CloseDay)
	g.GET("", h.ListDays)
}

func (h *AvailabilityHandler) OpenDay(c echo.Context) error {
	venueID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	var req dto.AvailabilityDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.OpenDay(c.Request().Context(), venueID, req.Date); err != nil {
		return availabilityHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AvailabilityHandler) CloseDay(c echo.Context) error {
	venueID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	var req dto.AvailabilityDayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.CloseDay(c.Request().Context(), venueID, req.Date); err != nil {
		return availabilityHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AvailabilityHandler) ListDays(c echo.Context) error {
	venueID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	days, err := h.svc.ListDays(c.Request().Context(), venueID)
	if err != nil {
		return availabilityHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToAvailabilityResponse(venueID, days))
}

func availabilityHTTPError(err error) error {
	switch {
	case errors.Is(err, daterange.ErrInvalidFormat):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrVenueNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
