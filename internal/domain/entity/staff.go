package entity

import "time"

// Staff is a branch employee account. Every staff member is assigned to
// exactly one branch and authenticates with a username and password.
type Staff struct {
	ID           int64     `json:"staff_id"`
	BranchID     int64     `json:"branch_id"`
	BranchName   string    `json:"branch_name,omitempty"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Role         StaffRole `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal builds the request principal for a staff account.
func (s *Staff) Principal() *Principal {
	branchID := s.BranchID

	return &Principal{
		ID:         s.ID,
		Username:   s.Username,
		FullName:   s.FullName,
		Kind:       KindStaff,
		Role:       s.Role.String(),
		BranchID:   &branchID,
		AuthMethod: AuthMethodToken,
	}
}
