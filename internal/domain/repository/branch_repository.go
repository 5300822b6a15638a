package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
)

// ErrBranchNotFound is a domain-specific error returned when a branch is not
// found.
var ErrBranchNotFound = errors.New("branch not found")

// BranchRepository defines the standard operations for branch persistence.
type BranchRepository interface {
	// FindByID retrieves a single branch by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Branch, error)

	// List retrieves all branches, newest first.
	List(ctx context.Context) ([]*entity.Branch, error)

	// Create persists a new branch entity to the storage.
	Create(ctx context.Context, branch *entity.Branch) error

	// Update modifies an existing branch entity in the storage.
	Update(ctx context.Context, branch *entity.Branch) error

	// Delete removes a branch by ID. Callers must verify the branch has no
	// dependents first; the schema's foreign keys are the backstop.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of branches.
	Count(ctx context.Context) (int64, error)

	// Stats returns per-branch customer and staff aggregates.
	Stats(ctx context.Context) ([]*entity.BranchStats, error)
}
