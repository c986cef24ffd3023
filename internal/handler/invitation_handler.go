package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/venuebook/venue-service/internal/dto"
	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/service"
)

type InvitationHandler struct {
	svc service.InvitationService
}

func NewInvitationHandler(svc service.InvitationService) *InvitationHandler {
	return &InvitationHandler{svc: svc}
}

func (h *InvitationHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("/:id/invitations", h.SendInvitation)
	events.GET("/:id/invitations", h.ListInvitations)

	e.GET("/api/v1/invitations/:id", h.GetInvitation)
	e.PUT("/api/v1/invitations/:id/accept", h.AcceptInvitation)
	e.PUT("/api/v1/invitations/:id/decline", h.DeclineInvitation)
}

func (h *InvitationHandler) SendInvitation(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.SendInvitationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	invitation, err := h.svc.SendInvitation(c.Request().Context(), eventID, req.UserID)
	if err != nil {
		return invitationHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToInvitationResponse(invitation))
}

func (h *InvitationHandler) AcceptInvitation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid invitation id")
	}

	invitation, err := h.svc.AcceptInvitation(c.Request().Context(), id)
	if err != nil {
		return invitationHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToInvitationResponse(invitation))
}

func (h *InvitationHandler) DeclineInvitation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid invitation id")
	}

	invitation, err := h.svc.DeclineInvitation(c.Request().Context(), id)
	if err != nil {
		return invitationHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToInvitationResponse(invitation))
}

func (h *InvitationHandler) GetInvitation(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid invitation id")
	}

	invitation, err := h.svc.GetInvitation(c.Request().Context(), id)
	if err != nil {
		return invitationHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToInvitationResponse(invitation))
}

func (h *InvitationHandler) ListInvitations(c echo.Context) error {
	eventID, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var status *models.InvitationStatus
	if s := c.QueryParam("status"); s != "" {
		st := models.InvitationStatus(s)
		status = &st
	}

	invitations, err := h.svc.ListInvitations(c.Request().Context(), eventID, status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.InvitationResponse, len(invitations))
	for i := range invitations {
		resp[i] = dto.ToInvitationResponse(&invitations[i])
	}

	return c.JSON(http.StatusOK, resp)
}

func invitationHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrInvitationNotFound),
		errors.Is(err, service.ErrVenueNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyInvited):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
