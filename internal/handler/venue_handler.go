package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/venuebook/venue-service/internal/dto"
	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/service"
)

type VenueHandler struct {
	venueService service.VenueService
}

func NewVenueHandler(venueService service.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

func (h *VenueHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/venues")
	g.POST("", h.CreateVenue)
	g.GET("/:id", h.GetVenue)
}

func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var req dto.CreateVenueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.OwnerID == "" || req.Name == "" || req.Capacity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "owner_id, name and capacity (>0) are required")
	}

	venue := &models.Venue{
		OwnerID:  req.OwnerID,
		Name:     req.Name,
		Capacity: req.Capacity,
		Price:    req.Price,
	}
	if err := h.venueService.CreateVenue(c.Request().Context(), venue); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToVenueResponse(venue))
}

func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid venue id")
	}

	venue, err := h.venueService.GetVenue(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "venue not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToVenueResponse(venue))
}
