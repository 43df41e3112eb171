package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/shayari-hub/backend/internal/middleware"
	"github.com/anonto42/shayari-hub/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// fail maps a service error onto an HTTP error. Unauthorized failures become
// 401 for guests and 403 for signed-in callers.
func fail(c echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var failure *services.Failure
	if !errors.As(err, &failure) {
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(failure, services.ErrUnauthorized):
		status = http.StatusUnauthorized
		if middleware.Identity(c) != nil {
			status = http.StatusForbidden
		}
	case errors.Is(failure, services.ErrInvalid):
		status = http.StatusBadRequest
	case errors.Is(failure, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(failure, services.ErrConflict):
		status = http.StatusConflict
	}
	return echo.NewHTTPError(status, failure.Message).SetInternal(err)
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
