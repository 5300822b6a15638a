package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// CreateBranchInput defines the data required to open a new branch.
type CreateBranchInput struct {
	Name    string `json:"branch_name" validate:"required,min=1,max=255"`
	Address string `json:"address" validate:"omitempty,max=1000"`
	Phone   string `json:"phone_number" validate:"omitempty,max=50"`
}

// UpdateBranchInput defines the data for a branch update. Nil fields are left
// unchanged.
type UpdateBranchInput struct {
	Name    *string `json:"branch_name" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address" validate:"omitempty,max=1000"`
	Phone   *string `json:"phone_number" validate:"omitempty,max=50"`
}

// BranchUsecase defines the interface for branch management operations.
type BranchUsecase interface {
	List(ctx context.Context) ([]*entity.Branch, error)
	Get(ctx context.Context, id int64) (*entity.Branch, error)
	Create(ctx context.Context, input CreateBranchInput) (*entity.Branch, error)
	Update(ctx context.Context, id int64, input UpdateBranchInput) (*entity.Branch, error)

	// Delete removes an empty branch. It refuses while the branch still
	// has staff or customers; the check and the delete run in one
	// transaction.
	Delete(ctx context.Context, id int64) error
}
