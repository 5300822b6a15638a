package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// CreateStaffInput defines the data required to create a branch employee
// account.
type CreateStaffInput struct {
	BranchID int64  `json:"branch_id" validate:"required,gt=0"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateStaffInput defines the data for a staff update. Nil fields are left
// unchanged; an empty Password keeps the current one.
type UpdateStaffInput struct {
	BranchID *int64  `json:"branch_id" validate:"omitempty,gt=0"`
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Role     *string `json:"role" validate:"omitempty"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// StaffUsecase defines the interface for branch employee account management.
type StaffUsecase interface {
	List(ctx context.Context) ([]*entity.Staff, error)
	Get(ctx context.Context, id int64) (*entity.Staff, error)
	Create(ctx context.Context, input CreateStaffInput) (*entity.Staff, error)
	Update(ctx context.Context, id int64, input UpdateStaffInput) (*entity.Staff, error)
	Delete(ctx context.Context, id int64) error
}
