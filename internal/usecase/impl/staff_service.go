package impl

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/usecase"
)

// staffService implements the StaffUsecase interface.
type staffService struct {
	staffRepo  repository.StaffRepository
	userRepo   repository.UserRepository
	branchRepo repository.BranchRepository
	txManager  repository.TransactionManager
	hasher     service.PasswordHasher
	logger     *slog.Logger
}

// NewStaffService is the constructor for staffService.
func NewStaffService(
	staffRepo repository.StaffRepository,
	userRepo repository.UserRepository,
	branchRepo repository.BranchRepository,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.StaffUsecase {
	return &staffService{
		staffRepo:  staffRepo,
		userRepo:   userRepo,
		branchRepo: branchRepo,
		txManager:  txManager,
		hasher:     hasher,
		logger:     logger,
	}
}

func (srv *staffService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves all staff accounts.
func (srv *staffService) List(ctx context.Context) ([]*entity.Staff, error) {
	staff, err := srv.staffRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list staff")
	}

	return staff, nil
}

// Get retrieves one staff account by ID.
func (srv *staffService) Get(ctx context.Context, id int64) (*entity.Staff, error) {
	staff, err := srv.staffRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return nil, domainerrors.ErrStaffNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff")
	}

	return staff, nil
}

// Create registers a branch employee account. The username check and the
// insert run in one transaction so a concurrent creation of the same
// username in either table is caught.
func (srv *staffService) Create(ctx context.Context, input usecase.CreateStaffInput) (*entity.Staff, error) {
	role := entity.StaffRole(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid staff role")
	}

	if _, err := srv.branchRepo.FindByID(ctx, input.BranchID); err != nil {
		if errors.Is(err, repository.ErrBranchNotFound) {
			return nil, domainerrors.ErrBranchNotFound
		}

		return nil, errors.Wrap(err, "failed to verify branch")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	staff := &entity.Staff{
		BranchID:     input.BranchID,
		Username:     input.Username,
		FullName:     sanitize(input.FullName),
		Role:         role,
		PasswordHash: hash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := ensureUsernameFree(ctx, repoFactory.UserRepo(), repoFactory.StaffRepo(), input.Username, 0, 0); err != nil {
			return err
		}

		return repoFactory.StaffRepo().Create(ctx, staff)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Staff created",
		slog.Int64("staff_id", staff.ID),
		slog.Int64("branch_id", staff.BranchID),
		slog.String("role", staff.Role.String()),
	)

	return srv.Get(ctx, staff.ID)
}

// Update modifies a staff account. Nil input fields are left unchanged; an
// absent password keeps the current hash.
func (srv *staffService) Update(ctx context.Context, id int64, input usecase.UpdateStaffInput) (*entity.Staff, error) {
	staff, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.BranchID != nil {
		if _, err := srv.branchRepo.FindByID(ctx, *input.BranchID); err != nil {
			if errors.Is(err, repository.ErrBranchNotFound) {
				return nil, domainerrors.ErrBranchNotFound
			}

			return nil, errors.Wrap(err, "failed to verify branch")
		}
		staff.BranchID = *input.BranchID
	}
	if input.FullName != nil {
		staff.FullName = sanitize(*input.FullName)
	}
	if input.Role != nil {
		role := entity.StaffRole(*input.Role)
		if !role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("invalid staff role")
		}
		staff.Role = role
	}

	newUsername := staff.Username
	if input.Username != nil {
		newUsername = *input.Username
	}

	staff.PasswordHash = ""
	if input.Password != nil && *input.Password != "" {
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		staff.PasswordHash = hash
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if newUsername != staff.Username {
			if err := ensureUsernameFree(ctx, repoFactory.UserRepo(), repoFactory.StaffRepo(), newUsername, 0, id); err != nil {
				return err
			}
		}
		staff.Username = newUsername

		return repoFactory.StaffRepo().Update(ctx, staff)
	})
	if err != nil {
		return nil, err
	}

	return srv.Get(ctx, id)
}

// Delete removes a staff account.
func (srv *staffService) Delete(ctx context.Context, id int64) error {
	if err := srv.staffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return domainerrors.ErrStaffNotFound
		}

		return err
	}

	srv.log(ctx).Info("Staff deleted", slog.Int64("staff_id", id))

	return nil
}
