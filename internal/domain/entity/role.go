// Package entity contains the core business objects of the project.
package entity

// Kind identifies which principal table an actor comes from. The two kinds
// carry disjoint role sets and must never be compared by role string alone.
type Kind string

const (
	// KindManagement indicates a management-tier account (users table),
	// whose authority spans all branches.
	KindManagement Kind = "management"
	// KindStaff indicates a branch employee (staff table), scoped to
	// exactly one branch.
	KindStaff Kind = "staff"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is a valid value.
func (k Kind) IsValid() bool {
	switch k {
	case KindManagement, KindStaff:
		return true
	default:
		return false
	}
}

// ManagementRole is a role tag valid only for management-kind principals.
type ManagementRole string

const (
	RoleOwner             ManagementRole = "Owner"
	RoleManager           ManagementRole = "Manager"
	RoleHeadBranchManager ManagementRole = "HeadBranchManager"
	RoleManagement        ManagementRole = "Management"
	RoleWarehouse         ManagementRole = "Warehouse"
)

// String returns the string representation of the ManagementRole.
func (r ManagementRole) String() string {
	return string(r)
}

// IsValid checks if the ManagementRole is a valid value.
func (r ManagementRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleManager, RoleHeadBranchManager, RoleManagement, RoleWarehouse:
		return true
	default:
		return false
	}
}

// StaffRole is a role tag valid only for staff-kind principals.
type StaffRole string

const (
	RoleHeadBranch  StaffRole = "HeadBranch"
	RoleAdmin       StaffRole = "Admin"
	RoleCashier     StaffRole = "Cashier"
	RoleHeadCounter StaffRole = "HeadCounter"
	RoleStaff       StaffRole = "Staff"
)

// String returns the string representation of the StaffRole.
func (r StaffRole) String() string {
	return string(r)
}

// IsValid checks if the StaffRole is a valid value.
func (r StaffRole) IsValid() bool {
	switch r {
	case RoleHeadBranch, RoleAdmin, RoleCashier, RoleHeadCounter, RoleStaff:
		return true
	default:
		return false
	}
}

// AllManagementRoles returns every valid management role, for role sets that
// admit any management-tier account.
func AllManagementRoles() []ManagementRole {
	return []ManagementRole{RoleOwner, RoleManager, RoleHeadBranchManager, RoleManagement, RoleWarehouse}
}

// AllStaffRoles returns every valid staff role.
func AllStaffRoles() []StaffRole {
	return []StaffRole{RoleHeadBranch, RoleAdmin, RoleCashier, RoleHeadCounter, RoleStaff}
}
