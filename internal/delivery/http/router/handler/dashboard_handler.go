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

// DashboardHandler holds dependencies for dashboard handlers.
type DashboardHandler struct {
	uc     usecase.DashboardUsecase
	logger *slog.Logger
}

// NewDashboardHandler is the constructor for DashboardHandler, injected by Fx.
func NewDashboardHandler(uc usecase.DashboardUsecase, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, logger: logger}
}

// Stats handles the headline dashboard aggregates.
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.uc.Stats(c.Request().Context(), deliverycontext.GetPrincipal(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// BranchStats handles the per-branch aggregate listing.
func (h *DashboardHandler) BranchStats(c echo.Context) error {
	stats, err := h.uc.BranchStats(c.Request().Context(), deliverycontext.GetPrincipal(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// CustomerTrends handles the monthly registration trend listing.
func (h *DashboardHandler) CustomerTrends(c echo.Context) error {
	trends, err := h.uc.CustomerTrends(c.Request().Context(), deliverycontext.GetPrincipal(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, trends, "")
}

// RecentCustomers handles the latest registrations listing.
func (h *DashboardHandler) RecentCustomers(c echo.Context) error {
	limit := 0
	if parsed, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = parsed
	}

	customers, err := h.uc.RecentCustomers(c.Request().Context(), deliverycontext.GetPrincipal(c), limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customers, "")
}
