package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// CreateUserInput defines the data required to create a management account.
type CreateUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	FullName string `json:"full_name" validate:"required,min=1,max=255"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserInput defines the data for a management account update. Nil
// fields are left unchanged; an empty Password keeps the current one.
type UpdateUserInput struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=100"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Role     *string `json:"role" validate:"omitempty"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// UserUsecase defines the interface for management account administration.
type UserUsecase interface {
	List(ctx context.Context) ([]*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	Create(ctx context.Context, input CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}
