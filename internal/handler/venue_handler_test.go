package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuebook/venue-service/internal/dto"
	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/service"
)

// --- Mock VenueService ---

type mockVenueService struct {
	createFn func(ctx context.Context, venue *models.Venue) error
	getFn    func(ctx context.Context, id uint) (*models.Venue, error)
}

func (m *mockVenueService) CreateVenue(ctx context.Context, venue *models.Venue) error {
	return m.createFn(ctx, venue)
}
func (m *mockVenueService) GetVenue(ctx context.Context, id uint) (*models.Venue, error) {
	return m.getFn(ctx, id)
}

func newVenueContext(method, body, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/api/v1/venues", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

// --- Tests ---

func TestCreateVenue_Handler_Success(t *testing.T) {
	svc := &mockVenueService{
		createFn: func(ctx context.Context, venue *models.Venue) error {
			venue.ID = 7
			return nil
		},
	}
	body := `{"owner_id":"owner-1","name":"Grand Hall","capacity":120,"price":500}`
	c, rec := newVenueContext(http.MethodPost, body, "")

	require.NoError(t, NewVenueHandler(svc).CreateVenue(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.VenueResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(7), resp.ID)
	assert.Equal(t, "Grand Hall", resp.Name)
	assert.Equal(t, 120, resp.Capacity)
}

func TestCreateVenue_Handler_MissingFields(t *testing.T) {
	c, _ := newVenueContext(http.MethodPost, `{"name":"Grand Hall"}`, "")

	err := NewVenueHandler(&mockVenueService{}).CreateVenue(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestGetVenue_Handler_NotFound(t *testing.T) {
	svc := &mockVenueService{
		getFn: func(ctx context.Context, id uint) (*models.Venue, error) {
			return nil, service.ErrVenueNotFound
		},
	}
	c, _ := newVenueContext(http.MethodGet, "", "42")

	err := NewVenueHandler(svc).GetVenue(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
