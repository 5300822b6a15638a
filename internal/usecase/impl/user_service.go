package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"crm/config"
	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/usecase"
)

// passwordSpecialChars is the character class accepted as "special" by the
// management password policy.
const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// userService implements the UserUsecase interface for management accounts.
type userService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	staffRepo repository.StaffRepository
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(
	cfg *config.Config,
	userRepo repository.UserRepository,
	staffRepo repository.StaffRepository,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.UserUsecase {
	return &userService{
		cfg:       cfg,
		userRepo:  userRepo,
		staffRepo: staffRepo,
		txManager: txManager,
		hasher:    hasher,
		logger:    logger,
	}
}

// validatePassword enforces the management password policy: the configured
// minimum length plus at least one uppercase letter, one digit and one
// special character.
func (srv *userService) validatePassword(password string) error {
	minLength := srv.cfg.PasswordMinLength()
	switch {
	case len(password) < minLength:
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("password must be at least %d characters long", minLength))
	case !strings.ContainsFunc(password, unicode.IsUpper):
		return domainerrors.ErrValidationFailed.WithDetails("password must contain at least one uppercase letter")
	case !strings.ContainsFunc(password, unicode.IsDigit):
		return domainerrors.ErrValidationFailed.WithDetails("password must contain at least one number")
	case !strings.ContainsAny(password, passwordSpecialChars):
		return domainerrors.ErrValidationFailed.WithDetails("password must contain at least one special character")
	}

	return nil
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List retrieves all management accounts.
func (srv *userService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// Get retrieves one management account by ID.
func (srv *userService) Get(ctx context.Context, id int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// Create registers a management account. The username check spans both
// principal tables and runs in the same transaction as the insert.
func (srv *userService) Create(ctx context.Context, input usecase.CreateUserInput) (*entity.User, error) {
	role := entity.ManagementRole(input.Role)
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("invalid management role")
	}

	if err := srv.validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		FullName:     sanitize(input.FullName),
		Role:         role,
		PasswordHash: hash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := ensureUsernameFree(ctx, repoFactory.UserRepo(), repoFactory.StaffRepo(), input.Username, 0, 0); err != nil {
			return err
		}

		return repoFactory.UserRepo().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User created",
		slog.Int64("user_id", user.ID),
		slog.String("role", user.Role.String()),
	)

	return srv.Get(ctx, user.ID)
}

// Update modifies a management account. Nil input fields are left unchanged;
// an absent password keeps the current hash.
func (srv *userService) Update(ctx context.Context, id int64, input usecase.UpdateUserInput) (*entity.User, error) {
	user, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = sanitize(*input.FullName)
	}
	if input.Role != nil {
		role := entity.ManagementRole(*input.Role)
		if !role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("invalid management role")
		}
		user.Role = role
	}

	newUsername := user.Username
	if input.Username != nil {
		newUsername = *input.Username
	}

	user.PasswordHash = ""
	if input.Password != nil && *input.Password != "" {
		if err := srv.validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hash
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if newUsername != user.Username {
			if err := ensureUsernameFree(ctx, repoFactory.UserRepo(), repoFactory.StaffRepo(), newUsername, id, 0); err != nil {
				return err
			}
		}
		user.Username = newUsername

		return repoFactory.UserRepo().Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return srv.Get(ctx, id)
}

// Delete removes a management account.
func (srv *userService) Delete(ctx context.Context, id int64) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return err
	}

	srv.log(ctx).Info("User deleted", slog.Int64("user_id", id))

	return nil
}
