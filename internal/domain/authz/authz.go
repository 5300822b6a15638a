// Package authz implements the access control evaluator: pure role-membership,
// branch-ownership and scope checks over an authenticated principal. It
// performs no I/O; every decision is a function of the principal and the
// request's declared requirements.
package authz

import (
	"fmt"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"

	"github.com/pkg/errors"
)

// RoleSet is a kind-partitioned set of allowed roles. Keeping management and
// staff roles in separate typed slices makes cross-kind role collisions
// structurally impossible: membership always checks the principal's kind
// before its role string.
type RoleSet struct {
	management []entity.ManagementRole
	staff      []entity.StaffRole
}

// Management builds a role set admitting the given management roles.
func Management(roles ...entity.ManagementRole) RoleSet {
	return RoleSet{management: roles}
}

// Staff builds a role set admitting the given staff roles.
func Staff(roles ...entity.StaffRole) RoleSet {
	return RoleSet{staff: roles}
}

// AnyManagement admits every management role.
func AnyManagement() RoleSet {
	return Management(entity.AllManagementRoles()...)
}

// AnyPrincipal admits every valid role of both kinds.
func AnyPrincipal() RoleSet {
	return RoleSet{
		management: entity.AllManagementRoles(),
		staff:      entity.AllStaffRoles(),
	}
}

// Union merges two role sets.
func (s RoleSet) Union(other RoleSet) RoleSet {
	return RoleSet{
		management: append(append([]entity.ManagementRole{}, s.management...), other.management...),
		staff:      append(append([]entity.StaffRole{}, s.staff...), other.staff...),
	}
}

// Contains reports whether the principal's kind-qualified role is in the set.
func (s RoleSet) Contains(p *entity.Principal) bool {
	if p == nil {
		return false
	}

	switch p.Kind {
	case entity.KindManagement:
		for _, role := range s.management {
			if p.Role == role.String() {
				return true
			}
		}
	case entity.KindStaff:
		for _, role := range s.staff {
			if p.Role == role.String() {
				return true
			}
		}
	}

	return false
}

// AuthorizeRole checks that the principal is present and carries one of the
// allowed roles. An absent principal is an authentication failure, not an
// authorization one.
func AuthorizeRole(p *entity.Principal, allowed RoleSet) error {
	if p == nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no principal on request")
	}

	if !allowed.Contains(p) {
		return domainerrors.ErrForbidden.WrapMessage(
			fmt.Sprintf("role %q (kind %s) not permitted", p.Role, p.Kind))
	}

	return nil
}

// AuthorizeBranch checks branch ownership. Management principals are
// branch-unscoped and always pass. Staff principals may only target their own
// branch; an absent target means the operation defaults to the principal's
// branch and is allowed.
func AuthorizeBranch(p *entity.Principal, targetBranchID *int64) error {
	if p == nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no principal on request")
	}

	switch p.Kind {
	case entity.KindManagement:
		return nil
	case entity.KindStaff:
		if p.BranchID == nil {
			return errors.Wrap(domainerrors.ErrMissingBranch, "staff principal without branch assignment")
		}
		if targetBranchID != nil && *targetBranchID != *p.BranchID {
			return domainerrors.ErrCrossBranchAccess.WrapMessage(
				fmt.Sprintf("staff of branch %d requested branch %d", *p.BranchID, *targetBranchID))
		}

		return nil
	default:
		return errors.Wrap(domainerrors.ErrForbidden, "unknown principal kind")
	}
}

// RequireScope enforces the API-key scope list. Token-authenticated principals
// skip the check entirely; API-key principals pass iff they hold at least one
// of the required scopes.
func RequireScope(p *entity.Principal, required ...string) error {
	if p == nil {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no principal on request")
	}

	if p.AuthMethod != entity.AuthMethodAPIKey {
		return nil
	}

	for _, want := range required {
		for _, got := range p.Scopes {
			if got == want {
				return nil
			}
		}
	}

	return domainerrors.ErrMissingScope.WrapMessage(
		fmt.Sprintf("required one of %v", required))
}
