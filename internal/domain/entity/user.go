package entity

import "time"

// User is a management-tier account (admin console). Its authority applies to
// all branches, so it carries no branch assignment.
type User struct {
	ID           int64          `json:"user_id"`
	Username     string         `json:"username"`
	FullName     string         `json:"full_name"`
	Role         ManagementRole `json:"role"`
	PasswordHash string         `json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Principal builds the request principal for a management account.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:         u.ID,
		Username:   u.Username,
		FullName:   u.FullName,
		Kind:       KindManagement,
		Role:       u.Role.String(),
		AuthMethod: AuthMethodToken,
	}
}
