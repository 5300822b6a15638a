package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"crm/internal/delivery/http/response"
	"crm/internal/usecase"
)

// StaffHandler holds dependencies for staff account handlers.
type StaffHandler struct {
	uc     usecase.StaffUsecase
	logger *slog.Logger
}

// NewStaffHandler is the constructor for StaffHandler, injected by Fx.
func NewStaffHandler(uc usecase.StaffUsecase, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{uc: uc, logger: logger}
}

// List handles the staff listing.
func (h *StaffHandler) List(c echo.Context) error {
	staff, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, staff, "")
}

// Get handles a single staff lookup.
func (h *StaffHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	staff, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, staff, "")
}

// Create handles staff account creation.
func (h *StaffHandler) Create(c echo.Context) error {
	var input usecase.CreateStaffInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid staff input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	staff, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, staff, "Staff created successfully")
}

// Update handles a partial staff account update.
func (h *StaffHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateStaffInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid staff input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	staff, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, staff, "Staff updated successfully")
}

// Delete handles staff account removal.
func (h *StaffHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Staff deleted successfully")
}
