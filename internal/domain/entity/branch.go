package entity

import "time"

// Branch is a physical store location. It owns zero or more staff accounts
// and zero or more customers; deletion is blocked while either exists.
type Branch struct {
	ID        int64     `json:"branch_id"`
	Name      string    `json:"branch_name"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone_number,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BranchStats is the per-branch aggregate row for the management dashboard.
type BranchStats struct {
	BranchID          int64  `json:"branch_id"`
	BranchName        string `json:"branch_name"`
	TotalCustomers    int64  `json:"total_customers"`
	ActiveCustomers   int64  `json:"active_customers"`
	InactiveCustomers int64  `json:"inactive_customers"`
	TotalStaff        int64  `json:"total_staff"`
}
