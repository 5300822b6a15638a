package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/delivery/http/response"
	"crm/internal/usecase"
)

// CustomerHandler holds dependencies for customer handlers.
type CustomerHandler struct {
	uc     usecase.CustomerUsecase
	logger *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.CustomerUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, logger: logger}
}

// List handles the filtered, paginated customer listing.
func (h *CustomerHandler) List(c echo.Context) error {
	input := usecase.ListCustomersInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	}

	// Malformed numbers fall back to defaults rather than erroring; the
	// usecase clamps the final values.
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		input.Limit = limit
	}
	if branchID, err := strconv.ParseInt(c.QueryParam("branch_id"), 10, 64); err == nil && branchID > 0 {
		input.BranchID = &branchID
	}

	page, err := h.uc.List(c.Request().Context(), deliverycontext.GetPrincipal(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// Get handles a single customer lookup.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	customer, err := h.uc.Get(c.Request().Context(), deliverycontext.GetPrincipal(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}

// Create handles customer registration.
func (h *CustomerHandler) Create(c echo.Context) error {
	var input usecase.CreateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	customer, err := h.uc.Create(c.Request().Context(), deliverycontext.GetPrincipal(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, customer, "Customer created successfully")
}

// Update handles a partial customer update.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	customer, err := h.uc.Update(c.Request().Context(), deliverycontext.GetPrincipal(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "Customer updated successfully")
}

// Delete handles customer removal.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), deliverycontext.GetPrincipal(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Customer deleted successfully")
}
