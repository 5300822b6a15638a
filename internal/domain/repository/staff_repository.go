package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
)

// ErrStaffNotFound is a domain-specific error returned when a staff account is
// not found.
var ErrStaffNotFound = errors.New("staff not found")

// StaffRepository defines the standard operations for branch employee
// persistence.
type StaffRepository interface {
	// FindByID retrieves a single staff member by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Staff, error)

	// FindByUsername retrieves a single staff member by their login name.
	FindByUsername(ctx context.Context, username string) (*entity.Staff, error)

	// List retrieves all staff, newest first, with branch names resolved.
	List(ctx context.Context) ([]*entity.Staff, error)

	// Create persists a new staff entity to the storage.
	Create(ctx context.Context, staff *entity.Staff) error

	// Update modifies an existing staff entity in the storage.
	Update(ctx context.Context, staff *entity.Staff) error

	// Delete removes a staff member by ID.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of staff, optionally scoped to one branch.
	Count(ctx context.Context, branchID *int64) (int64, error)
}
