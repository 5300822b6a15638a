package impl

import (
	"context"

	"github.com/pkg/errors"

	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
)

// ensureUsernameFree rejects a username already taken in either principal
// table. Usernames share one namespace across management and staff because
// login resolves them through a single lookup chain.
func ensureUsernameFree(ctx context.Context, userRepo repository.UserRepository, staffRepo repository.StaffRepository, username string, excludeUserID, excludeStaffID int64) error {
	user, err := userRepo.FindByUsername(ctx, username)
	if err == nil {
		if user.ID != excludeUserID || excludeUserID == 0 {
			return domainerrors.ErrUsernameExists
		}
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(err, "failed to check username against users")
	}

	staff, err := staffRepo.FindByUsername(ctx, username)
	if err == nil {
		if staff.ID != excludeStaffID || excludeStaffID == 0 {
			return domainerrors.ErrUsernameExists
		}
	} else if !errors.Is(err, repository.ErrStaffNotFound) {
		return errors.Wrap(err, "failed to check username against staff")
	}

	return nil
}
