package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/dto"
	"github.com/venuebook/venue-service/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/events")
	g.POST("", h.CreateEvent)
	g.GET("/:id", h.GetEvent)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.VenueID == 0 || req.OrganizerID == "" || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "venue_id, organizer_id and name are required")
	}

	event, err := h.svc.CreateEvent(c.Request().Context(), req.VenueID, req.OrganizerID, req.Name, req.StartDate, req.EndDate, req.InviteOnly)
	if err != nil {
		switch {
		case errors.Is(err, daterange.ErrInvalidFormat),
			errors.Is(err, daterange.ErrStartAfterEnd),
			errors.Is(err, daterange.ErrDateInPast),
			errors.Is(err, daterange.ErrRangeTooLong):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrVenueNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}
