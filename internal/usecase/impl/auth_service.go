// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	staffRepo    repository.StaffRepository
	tokenService service.TokenService
	hasher       service.PasswordHasher
	logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	userRepo repository.UserRepository,
	staffRepo repository.StaffRepository,
	tokenService service.TokenService,
	hasher service.PasswordHasher,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		userRepo:     userRepo,
		staffRepo:    staffRepo,
		tokenService: tokenService,
		hasher:       hasher,
		logger:       logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies credentials against management accounts first, then branch
// staff. Unknown usernames and wrong passwords produce the same error so the
// response does not reveal which one failed.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	username := strings.TrimSpace(input.Username)

	principal, hash, err := srv.findAccount(ctx, username)
	if err != nil {
		return nil, err
	}

	if !srv.hasher.Check(hash, input.Password) {
		srv.log(ctx).Info("Login rejected", slog.String("username", username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := srv.tokenService.IssuePair(principal)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token pair")
	}

	srv.log(ctx).Info("Login succeeded",
		slog.String("username", principal.Username),
		slog.String("kind", principal.Kind.String()),
	)

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Principal:    principal,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The account
// is re-read from storage so tokens for deleted accounts stop working at the
// next refresh; the refresh token itself is not rotated.
func (srv *authService) Refresh(ctx context.Context, input usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claimed, err := srv.tokenService.Verify(input.RefreshToken, service.TokenRefresh)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	principal, err := srv.reload(ctx, claimed)
	if err != nil {
		srv.log(ctx).Info("Refresh rejected, account gone", slog.Int64("id", claimed.ID))

		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	accessToken, err := srv.tokenService.Issue(principal, service.TokenAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Me returns the current account profile, read fresh from storage rather than
// echoed from token claims.
func (srv *authService) Me(ctx context.Context, principal *entity.Principal) (*entity.Principal, error) {
	if principal == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	// API key principals have no backing login account to re-read.
	if principal.AuthMethod == entity.AuthMethodAPIKey {
		return principal, nil
	}

	fresh, err := srv.reload(ctx, principal)
	if err != nil {
		return nil, err
	}

	return fresh, nil
}

// findAccount looks up a username across both principal tables and returns
// the would-be principal with its stored password hash.
func (srv *authService) findAccount(ctx context.Context, username string) (*entity.Principal, string, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return user.Principal(), user.PasswordHash, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, "", errors.Wrap(err, "failed to look up user account")
	}

	staff, err := srv.staffRepo.FindByUsername(ctx, username)
	if err == nil {
		return staff.Principal(), staff.PasswordHash, nil
	}
	if !errors.Is(err, repository.ErrStaffNotFound) {
		return nil, "", errors.Wrap(err, "failed to look up staff account")
	}

	return nil, "", domainerrors.ErrInvalidCredentials
}

// reload re-reads the account behind a principal from its kind's table.
func (srv *authService) reload(ctx context.Context, principal *entity.Principal) (*entity.Principal, error) {
	switch principal.Kind {
	case entity.KindManagement:
		user, err := srv.userRepo.FindByID(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return nil, domainerrors.ErrUserNotFound
			}

			return nil, errors.Wrap(err, "failed to reload user account")
		}

		return user.Principal(), nil
	case entity.KindStaff:
		staff, err := srv.staffRepo.FindByID(ctx, principal.ID)
		if err != nil {
			if errors.Is(err, repository.ErrStaffNotFound) {
				return nil, domainerrors.ErrStaffNotFound
			}

			return nil, errors.Wrap(err, "failed to reload staff account")
		}

		return staff.Principal(), nil
	default:
		return nil, domainerrors.ErrUnauthenticated
	}
}
