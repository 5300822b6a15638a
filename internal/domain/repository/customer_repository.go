package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
)

// ErrCustomerNotFound is a domain-specific error returned when a customer is
// not found or falls outside the caller's branch scope.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerFilter is the shared predicate set for the customer listing and its
// count query. Using one filter type for both keeps totals consistent with
// page contents.
type CustomerFilter struct {
	// BranchID scopes the query to one branch when non-nil. The usecase
	// layer computes this from the principal; it is never taken directly
	// from client input for staff callers.
	BranchID *int64

	// Status applies an equality predicate when non-nil.
	Status *entity.CustomerStatus

	// Search applies a case-insensitive substring match over full_name,
	// phone_number, code, address and email. The usecase layer only sets
	// it once the trimmed input reaches the minimum length.
	Search string
}

// CustomerRepository defines the operations for customer persistence,
// including the filtered, paginated search.
type CustomerRepository interface {
	// FindByID retrieves a customer by ID. A non-nil branchScope restricts
	// the lookup so out-of-branch records are indistinguishable from
	// missing ones.
	FindByID(ctx context.Context, id int64, branchScope *int64) (*entity.Customer, error)

	// FindByEmail retrieves a customer by their unique email address.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// List returns one page of customers matching the filter, newest first.
	List(ctx context.Context, filter CustomerFilter, offset, limit int) ([]*entity.Customer, error)

	// Count returns the number of customers matching the filter,
	// independent of pagination.
	Count(ctx context.Context, filter CustomerFilter) (int64, error)

	// Recent returns the most recently created customers within the scope.
	Recent(ctx context.Context, branchScope *int64, limit int) ([]*entity.Customer, error)

	// RegistrationTrends returns monthly registration counts covering the
	// last N months, newest month first.
	RegistrationTrends(ctx context.Context, months int) ([]*entity.RegistrationTrend, error)

	// Create persists a new customer entity to the storage.
	Create(ctx context.Context, customer *entity.Customer) error

	// Update modifies an existing customer entity in the storage.
	Update(ctx context.Context, customer *entity.Customer) error

	// Delete removes a customer by ID.
	Delete(ctx context.Context, id int64) error
}
