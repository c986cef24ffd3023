package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/dto"
	"github.com/venuebook/venue-service/internal/service"
)

// ErrorHandler renders every error as a JSON body. Admission conflicts that
// carry detail (missing days) keep it in the response so the caller can show
// which days to fix.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		err = he.Internal
	}

	resp := dto.ErrorResponse{Message: msg}

	var unavailable *service.DatesUnavailableError
	if errors.As(err, &unavailable) {
		resp.MissingDays = make([]string, len(unavailable.MissingDays))
		for i, d := range unavailable.MissingDays {
			resp.MissingDays[i] = d.Format(daterange.Layout)
		}
	}

	_ = c.JSON(code, resp)
}
