package entity

import "time"

// CustomerStatus is the lifecycle state of a customer record.
type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "Active"
	CustomerInactive CustomerStatus = "Inactive"
)

// String returns the string representation of the CustomerStatus.
func (s CustomerStatus) String() string {
	return string(s)
}

// IsValid checks if the CustomerStatus is a valid value.
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerActive, CustomerInactive:
		return true
	default:
		return false
	}
}

// Customer belongs to exactly one branch. Email is globally unique; free-text
// fields are HTML-escaped before they reach storage.
type Customer struct {
	ID               int64          `json:"customer_id"`
	BranchID         int64          `json:"branch_id"`
	BranchName       string         `json:"branch_name,omitempty"`
	FullName         string         `json:"full_name"`
	Email            string         `json:"email"`
	PhoneNumber      string         `json:"phone_number,omitempty"`
	Code             string         `json:"code,omitempty"`
	Address          string         `json:"address,omitempty"`
	RegistrationDate time.Time      `json:"registration_date"`
	Status           CustomerStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// RegistrationTrend is one month's registration count for the dashboard
// trend chart. Month is formatted as YYYY-MM.
type RegistrationTrend struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// CustomerPage is one page of a filtered customer listing together with the
// pagination envelope expected by the front ends.
type CustomerPage struct {
	Items      []*Customer `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination describes the position of a page within the full filtered set.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}

// NewPagination computes the envelope for a page, with TotalPages rounded up.
func NewPagination(total int64, page, limit int) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}

	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
