package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// DashboardStats is the headline aggregate for the landing dashboard. Staff
// callers see numbers scoped to their own branch.
type DashboardStats struct {
	TotalCustomers    int64 `json:"total_customers"`
	ActiveCustomers   int64 `json:"active_customers"`
	InactiveCustomers int64 `json:"inactive_customers"`
	TotalBranches     int64 `json:"total_branches"`
	TotalStaff        int64 `json:"total_staff"`

	// TotalUsers counts management accounts; present for management
	// callers only.
	TotalUsers *int64 `json:"total_users,omitempty"`
}

// DashboardUsecase defines the interface for dashboard aggregates.
type DashboardUsecase interface {
	Stats(ctx context.Context, principal *entity.Principal) (*DashboardStats, error)

	// BranchStats returns per-branch aggregates; management only.
	BranchStats(ctx context.Context, principal *entity.Principal) ([]*entity.BranchStats, error)

	// CustomerTrends returns monthly registration counts over the last
	// twelve months; management only.
	CustomerTrends(ctx context.Context, principal *entity.Principal) ([]*entity.RegistrationTrend, error)

	// RecentCustomers returns the latest registrations within the
	// caller's scope.
	RecentCustomers(ctx context.Context, principal *entity.Principal, limit int) ([]*entity.Customer, error)
}
