package entity

// AuthMethod records which credential path authenticated a principal.
type AuthMethod string

const (
	// AuthMethodToken marks principals reconstructed from a signed JWT.
	AuthMethodToken AuthMethod = "token"
	// AuthMethodAPIKey marks principals authenticated via a static API key;
	// only these carry a scope list and are subject to scope checks.
	AuthMethodAPIKey AuthMethod = "api_key"
)

// Principal is the authenticated actor for a request. It is reconstructed
// either from token claims (no database round-trip) or from an API key lookup.
type Principal struct {
	ID         int64      `json:"id"`
	Username   string     `json:"username"`
	FullName   string     `json:"full_name,omitempty"`
	Kind       Kind       `json:"kind"`
	Role       string     `json:"role"`
	BranchID   *int64     `json:"branch_id,omitempty"` // non-nil iff Kind == KindStaff
	Scopes     []string   `json:"scopes,omitempty"`    // non-nil iff AuthMethod == AuthMethodAPIKey
	AuthMethod AuthMethod `json:"-"`
}

// HasManagementRole reports whether the principal is management-kind and
// carries the given role. Kind is checked first so a staff role string can
// never satisfy a management role, even if the raw strings collide.
func (p *Principal) HasManagementRole(role ManagementRole) bool {
	return p != nil && p.Kind == KindManagement && p.Role == role.String()
}

// HasStaffRole reports whether the principal is staff-kind with the given role.
func (p *Principal) HasStaffRole(role StaffRole) bool {
	return p != nil && p.Kind == KindStaff && p.Role == role.String()
}

// IsManagement reports whether the principal's authority is branch-unscoped.
func (p *Principal) IsManagement() bool {
	return p != nil && p.Kind == KindManagement
}

// HomeBranch returns the staff principal's branch ID, or nil for management
// principals (unscoped) and malformed staff accounts.
func (p *Principal) HomeBranch() *int64 {
	if p == nil || p.Kind != KindStaff {
		return nil
	}

	return p.BranchID
}
