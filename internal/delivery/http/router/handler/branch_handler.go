package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"crm/internal/delivery/http/response"
	"crm/internal/usecase"
)

// BranchHandler holds dependencies for branch handlers.
type BranchHandler struct {
	uc     usecase.BranchUsecase
	logger *slog.Logger
}

// NewBranchHandler is the constructor for BranchHandler, injected by Fx.
func NewBranchHandler(uc usecase.BranchUsecase, logger *slog.Logger) *BranchHandler {
	return &BranchHandler{uc: uc, logger: logger}
}

// List handles the branch listing.
func (h *BranchHandler) List(c echo.Context) error {
	branches, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, branches, "")
}

// Get handles a single branch lookup.
func (h *BranchHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	branch, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, branch, "")
}

// Create handles opening a new branch.
func (h *BranchHandler) Create(c echo.Context) error {
	var input usecase.CreateBranchInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid branch input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	branch, err := h.uc.Create(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, branch, "Branch created successfully")
}

// Update handles a partial branch update.
func (h *BranchHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateBranchInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid branch input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	branch, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, branch, "Branch updated successfully")
}

// Delete handles branch removal. Refused while staff or customers remain.
func (h *BranchHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Branch deleted successfully")
}
