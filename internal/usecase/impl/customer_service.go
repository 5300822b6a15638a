package impl

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/authz"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/usecase"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	// Shorter search terms are ignored rather than rejected, so incremental
	// typing in the UI degrades to an unfiltered listing.
	minSearchLength = 3

	registrationDateLayout = "2006-01-02"
)

// customerService implements the CustomerUsecase interface.
type customerService struct {
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	logger *slog.Logger,
) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		logger:       logger,
	}
}

func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List returns one page of customers visible to the principal. Staff callers
// are always pinned to their own branch regardless of the requested filter;
// management callers may filter by any branch or none.
func (srv *customerService) List(ctx context.Context, principal *entity.Principal, input usecase.ListCustomersInput) (*entity.CustomerPage, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	filter, err := srv.buildFilter(principal, input)
	if err != nil {
		return nil, err
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	total, err := srv.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count customers")
	}

	items, err := srv.customerRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	return &entity.CustomerPage{
		Items:      items,
		Pagination: entity.NewPagination(total, page, limit),
	}, nil
}

// Get retrieves one customer. For staff callers the lookup is branch-scoped,
// so records in other branches are reported as not found.
func (srv *customerService) Get(ctx context.Context, principal *entity.Principal, id int64) (*entity.Customer, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	customer, err := srv.customerRepo.FindByID(ctx, id, principal.HomeBranch())
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer")
	}

	return customer, nil
}

// Create registers a customer. Staff may only create within their own branch.
func (srv *customerService) Create(ctx context.Context, principal *entity.Principal, input usecase.CreateCustomerInput) (*entity.Customer, error) {
	if err := authz.AuthorizeBranch(principal, &input.BranchID); err != nil {
		return nil, err
	}

	if _, err := srv.branchRepo.FindByID(ctx, input.BranchID); err != nil {
		if errors.Is(err, repository.ErrBranchNotFound) {
			return nil, domainerrors.ErrBranchNotFound
		}

		return nil, errors.Wrap(err, "failed to verify branch")
	}

	status := entity.CustomerStatus(input.Status)
	if input.Status == "" {
		status = entity.CustomerActive
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("status must be Active or Inactive")
	}

	registrationDate, err := parseRegistrationDate(input.RegistrationDate)
	if err != nil {
		return nil, err
	}

	if err := srv.ensureEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		BranchID:         input.BranchID,
		FullName:         sanitize(input.FullName),
		Email:            strings.ToLower(strings.TrimSpace(input.Email)),
		PhoneNumber:      sanitize(input.PhoneNumber),
		Code:             sanitize(input.Code),
		Address:          sanitize(input.Address),
		RegistrationDate: registrationDate,
		Status:           status,
	}

	if err := srv.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Customer created",
		slog.Int64("customer_id", customer.ID),
		slog.Int64("branch_id", customer.BranchID),
	)

	return srv.Get(ctx, principal, customer.ID)
}

// Update modifies a customer within the principal's scope. Nil input fields
// are left unchanged.
func (srv *customerService) Update(ctx context.Context, principal *entity.Principal, id int64, input usecase.UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := srv.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.BranchID != nil {
		// Moving a customer to another branch is a cross-branch write for
		// staff callers.
		if err := authz.AuthorizeBranch(principal, input.BranchID); err != nil {
			return nil, err
		}
		if _, err := srv.branchRepo.FindByID(ctx, *input.BranchID); err != nil {
			if errors.Is(err, repository.ErrBranchNotFound) {
				return nil, domainerrors.ErrBranchNotFound
			}

			return nil, errors.Wrap(err, "failed to verify branch")
		}
		customer.BranchID = *input.BranchID
	}
	if input.FullName != nil {
		customer.FullName = sanitize(*input.FullName)
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != customer.Email {
			if err := srv.ensureEmailFree(ctx, email, customer.ID); err != nil {
				return nil, err
			}
		}
		customer.Email = email
	}
	if input.PhoneNumber != nil {
		customer.PhoneNumber = sanitize(*input.PhoneNumber)
	}
	if input.Code != nil {
		customer.Code = sanitize(*input.Code)
	}
	if input.Address != nil {
		customer.Address = sanitize(*input.Address)
	}
	if input.RegistrationDate != nil {
		registrationDate, err := parseRegistrationDate(*input.RegistrationDate)
		if err != nil {
			return nil, err
		}
		customer.RegistrationDate = registrationDate
	}
	if input.Status != nil {
		status := entity.CustomerStatus(*input.Status)
		if !status.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("status must be Active or Inactive")
		}
		customer.Status = status
	}

	if err := srv.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return srv.Get(ctx, principal, id)
}

// Delete removes a customer within the principal's scope.
func (srv *customerService) Delete(ctx context.Context, principal *entity.Principal, id int64) error {
	// Scoped read first: staff deleting an out-of-branch record must see a
	// not-found, not a successful delete.
	if _, err := srv.Get(ctx, principal, id); err != nil {
		return err
	}

	if err := srv.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	srv.log(ctx).Info("Customer deleted", slog.Int64("customer_id", id))

	return nil
}

// buildFilter translates the request parameters into the repository filter,
// enforcing the principal's branch scope server-side.
func (srv *customerService) buildFilter(principal *entity.Principal, input usecase.ListCustomersInput) (repository.CustomerFilter, error) {
	filter := repository.CustomerFilter{}

	if principal.IsManagement() {
		filter.BranchID = input.BranchID
	} else {
		// The client-supplied branch filter is ignored for staff; their
		// home branch wins.
		home := principal.HomeBranch()
		if home == nil {
			return filter, domainerrors.ErrMissingBranch
		}
		filter.BranchID = home
	}

	if input.Status != "" {
		status := entity.CustomerStatus(input.Status)
		if !status.IsValid() {
			return filter, domainerrors.ErrValidationFailed.WithDetails("status must be Active or Inactive")
		}
		filter.Status = &status
	}

	if search := strings.TrimSpace(input.Search); len(search) >= minSearchLength {
		filter.Search = search
	}

	return filter, nil
}

// ensureEmailFree rejects an email already registered to another customer.
func (srv *customerService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := srv.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to check email uniqueness")
	}
	if existing.ID != selfID {
		return domainerrors.ErrEmailExists
	}

	return nil
}

// sanitize trims and HTML-escapes free-text input before storage.
func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// parseRegistrationDate parses the YYYY-MM-DD registration date, defaulting
// to today when absent.
func parseRegistrationDate(value string) (time.Time, error) {
	if value == "" {
		now := time.Now()

		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	parsed, err := time.Parse(registrationDateLayout, value)
	if err != nil {
		return time.Time{}, domainerrors.ErrValidationFailed.WithDetails("registration_date must be YYYY-MM-DD")
	}

	return parsed, nil
}
