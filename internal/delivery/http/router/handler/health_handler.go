// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"crm/internal/delivery/http/response"
	domainerrors "crm/internal/domain/errors"
)

// HealthCheck reports liveness. No authentication, no dependencies.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service healthy")
}

// pathID parses the numeric :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("id must be a positive integer"), "bad path id")
	}

	return id, nil
}
