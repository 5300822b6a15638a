package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/usecase"
)

const (
	defaultRecentCustomers = 5
	maxRecentCustomers     = 50
	trendWindowMonths      = 12
)

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	staffRepo    repository.StaffRepository
	userRepo     repository.UserRepository
	logger       *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	staffRepo repository.StaffRepository,
	userRepo repository.UserRepository,
	logger *slog.Logger,
) usecase.DashboardUsecase {
	return &dashboardService{
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		staffRepo:    staffRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

func (srv *dashboardService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Stats returns the headline aggregates. Staff callers see their own branch
// only; management sees the whole network.
func (srv *dashboardService) Stats(ctx context.Context, principal *entity.Principal) (*usecase.DashboardStats, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	scope := principal.HomeBranch()
	if !principal.IsManagement() && scope == nil {
		return nil, domainerrors.ErrMissingBranch
	}

	total, err := srv.customerRepo.Count(ctx, repository.CustomerFilter{BranchID: scope})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count customers")
	}

	active := entity.CustomerActive
	activeCount, err := srv.customerRepo.Count(ctx, repository.CustomerFilter{BranchID: scope, Status: &active})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count active customers")
	}

	branchCount, err := srv.branchRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count branches")
	}
	if scope != nil {
		branchCount = 1
	}

	staffCount, err := srv.staffRepo.Count(ctx, scope)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count staff")
	}

	stats := &usecase.DashboardStats{
		TotalCustomers:    total,
		ActiveCustomers:   activeCount,
		InactiveCustomers: total - activeCount,
		TotalBranches:     branchCount,
		TotalStaff:        staffCount,
	}

	// Management account counts are management-facing only.
	if principal.IsManagement() {
		userCount, err := srv.userRepo.Count(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to count users")
		}
		stats.TotalUsers = &userCount
	}

	return stats, nil
}

// BranchStats returns per-branch aggregates. Management only; the role gate
// sits in the routing layer, this is the backstop.
func (srv *dashboardService) BranchStats(ctx context.Context, principal *entity.Principal) ([]*entity.BranchStats, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !principal.IsManagement() {
		return nil, domainerrors.ErrForbidden
	}

	stats, err := srv.branchRepo.Stats(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate branch stats")
	}

	return stats, nil
}

// CustomerTrends returns monthly registration counts over the last twelve
// months. Management only, same gate as BranchStats.
func (srv *dashboardService) CustomerTrends(ctx context.Context, principal *entity.Principal) ([]*entity.RegistrationTrend, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}
	if !principal.IsManagement() {
		return nil, domainerrors.ErrForbidden
	}

	trends, err := srv.customerRepo.RegistrationTrends(ctx, trendWindowMonths)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate registration trends")
	}

	return trends, nil
}

// RecentCustomers returns the latest registrations within the caller's scope.
func (srv *dashboardService) RecentCustomers(ctx context.Context, principal *entity.Principal, limit int) ([]*entity.Customer, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	scope := principal.HomeBranch()
	if !principal.IsManagement() && scope == nil {
		return nil, domainerrors.ErrMissingBranch
	}

	if limit < 1 {
		limit = defaultRecentCustomers
	}
	if limit > maxRecentCustomers {
		limit = maxRecentCustomers
	}

	customers, err := srv.customerRepo.Recent(ctx, scope, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent customers")
	}

	return customers, nil
}
