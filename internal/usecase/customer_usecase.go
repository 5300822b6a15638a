package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// --- Input DTOs ---

// ListCustomersInput defines the filter and pagination parameters for the
// customer listing. All fields come from query parameters; the branch filter
// is only honored for management principals.
type ListCustomersInput struct {
	Page     int
	Limit    int
	Status   string
	Search   string
	BranchID *int64
}

// CreateCustomerInput defines the data required to register a customer.
type CreateCustomerInput struct {
	BranchID         int64  `json:"branch_id" validate:"required,gt=0"`
	FullName         string `json:"full_name" validate:"required,min=1,max=255"`
	Email            string `json:"email" validate:"required,email"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,max=50"`
	Code             string `json:"code" validate:"omitempty,max=100"`
	Address          string `json:"address" validate:"omitempty,max=1000"`
	RegistrationDate string `json:"registration_date" validate:"omitempty,datetime=2006-01-02"`
	Status           string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// UpdateCustomerInput defines the data for a customer update. Nil fields are
// left unchanged.
type UpdateCustomerInput struct {
	BranchID         *int64  `json:"branch_id" validate:"omitempty,gt=0"`
	FullName         *string `json:"full_name" validate:"omitempty,min=1,max=255"`
	Email            *string `json:"email" validate:"omitempty,email"`
	PhoneNumber      *string `json:"phone_number" validate:"omitempty,max=50"`
	Code             *string `json:"code" validate:"omitempty,max=100"`
	Address          *string `json:"address" validate:"omitempty,max=1000"`
	RegistrationDate *string `json:"registration_date" validate:"omitempty,datetime=2006-01-02"`
	Status           *string `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// CustomerUsecase defines the interface for customer management operations.
// Every operation takes the authenticated principal; branch scoping for staff
// callers is computed here, never from client input.
type CustomerUsecase interface {
	List(ctx context.Context, principal *entity.Principal, input ListCustomersInput) (*entity.CustomerPage, error)
	Get(ctx context.Context, principal *entity.Principal, id int64) (*entity.Customer, error)
	Create(ctx context.Context, principal *entity.Principal, input CreateCustomerInput) (*entity.Customer, error)
	Update(ctx context.Context, principal *entity.Principal, id int64, input UpdateCustomerInput) (*entity.Customer, error)
	Delete(ctx context.Context, principal *entity.Principal, id int64) error
}
