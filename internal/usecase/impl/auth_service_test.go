package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"crm/config"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/service"
	infraauth "crm/internal/infra/auth"
	"crm/internal/usecase"
)

type authFixture struct {
	userRepo  *memUserRepo
	staffRepo *memStaffRepo
	tokenSvc  service.TokenService
	hasher    service.PasswordHasher
	uc        usecase.AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	tokenSvc, err := infraauth.NewJWTService(cfg)
	require.NoError(t, err)

	f := &authFixture{
		userRepo:  newMemUserRepo(),
		staffRepo: newMemStaffRepo(),
		tokenSvc:  tokenSvc,
		hasher:    infraauth.NewBcryptHasherWithCost(bcrypt.MinCost),
	}
	f.uc = NewAuthService(f.userRepo, f.staffRepo, f.tokenSvc, f.hasher, discardLogger())

	return f
}

func (f *authFixture) seedUser(t *testing.T, username, password string, role entity.ManagementRole) *entity.User {
	t.Helper()

	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)

	user := &entity.User{
		Username:     username,
		FullName:     "Test User",
		Role:         role,
		PasswordHash: hash,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), user))

	return user
}

func (f *authFixture) seedStaff(t *testing.T, username, password string, branchID int64, role entity.StaffRole) *entity.Staff {
	t.Helper()

	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)

	staff := &entity.Staff{
		BranchID:     branchID,
		Username:     username,
		FullName:     "Test Staff",
		Role:         role,
		PasswordHash: hash,
	}
	require.NoError(t, f.staffRepo.Create(context.Background(), staff))

	return staff
}

func TestAuthService_Login_ManagementAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "owner", "secret-pass", entity.RoleOwner)

	out, err := f.uc.Login(context.Background(), usecase.LoginInput{Username: "owner", Password: "secret-pass"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	assert.Equal(t, user.ID, out.Principal.ID)
	assert.Equal(t, entity.KindManagement, out.Principal.Kind)
	assert.Equal(t, entity.RoleOwner.String(), out.Principal.Role)
	assert.Nil(t, out.Principal.BranchID)
}

func TestAuthService_Login_StaffAccount(t *testing.T) {
	f := newAuthFixture(t)
	staff := f.seedStaff(t, "cashier01", "branch-pass", 3, entity.RoleCashier)

	out, err := f.uc.Login(context.Background(), usecase.LoginInput{Username: "cashier01", Password: "branch-pass"})
	require.NoError(t, err)

	assert.Equal(t, staff.ID, out.Principal.ID)
	assert.Equal(t, entity.KindStaff, out.Principal.Kind)
	require.NotNil(t, out.Principal.BranchID)
	assert.Equal(t, int64(3), *out.Principal.BranchID)
}

func TestAuthService_Login_UsersTableCheckedFirst(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "shared", "mgmt-pass", entity.RoleManager)
	f.seedStaff(t, "shared", "staff-pass", 1, entity.RoleStaff)

	out, err := f.uc.Login(context.Background(), usecase.LoginInput{Username: "shared", Password: "mgmt-pass"})
	require.NoError(t, err)

	assert.Equal(t, entity.KindManagement, out.Principal.Kind)
	assert.Equal(t, user.ID, out.Principal.ID)

	// The staff account with the same username is shadowed: its password no
	// longer authenticates.
	_, err = f.uc.Login(context.Background(), usecase.LoginInput{Username: "shared", Password: "staff-pass"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_IndistinguishableFailures(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "owner", "secret-pass", entity.RoleOwner)

	_, unknownErr := f.uc.Login(context.Background(), usecase.LoginInput{Username: "nobody", Password: "whatever"})
	_, wrongPassErr := f.uc.Login(context.Background(), usecase.LoginInput{Username: "owner", Password: "wrong"})

	assert.ErrorIs(t, unknownErr, domainerrors.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuthService_Refresh(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "owner", "secret-pass", entity.RoleOwner)

	login, err := f.uc.Login(context.Background(), usecase.LoginInput{Username: "owner", Password: "secret-pass"})
	require.NoError(t, err)

	out, err := f.uc.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	got, err := f.tokenSvc.Verify(out.AccessToken, service.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.Username)
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	f := newAuthFixture(t)
	f.seedUser(t, "owner", "secret-pass", entity.RoleOwner)

	login, err := f.uc.Login(context.Background(), usecase.LoginInput{Username: "owner", Password: "secret-pass"})
	require.NoError(t, err)

	_, err = f.uc.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_RejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_DeletedAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "owner", "secret-pass", entity.RoleOwner)

	login, err := f.uc.Login(context.Background(), usecase.LoginInput{Username: "owner", Password: "secret-pass"})
	require.NoError(t, err)

	require.NoError(t, f.userRepo.Delete(context.Background(), user.ID))

	_, err = f.uc.Refresh(context.Background(), usecase.RefreshInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Me_ReadsFreshProfile(t *testing.T) {
	f := newAuthFixture(t)
	user := f.seedUser(t, "owner", "secret-pass", entity.RoleOwner)

	stale := user.Principal()
	stale.FullName = "Old Name"

	updated := *user
	updated.FullName = "New Name"
	require.NoError(t, f.userRepo.Update(context.Background(), &updated))

	got, err := f.uc.Me(context.Background(), stale)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.FullName)
}

func TestAuthService_Me_NilPrincipal(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Me(context.Background(), nil)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestAuthService_Me_APIKeyPrincipalPassesThrough(t *testing.T) {
	f := newAuthFixture(t)

	principal := &entity.Principal{
		ID:         99,
		Username:   "owner",
		Kind:       entity.KindManagement,
		Role:       entity.RoleOwner.String(),
		Scopes:     []string{"read"},
		AuthMethod: entity.AuthMethodAPIKey,
	}

	got, err := f.uc.Me(context.Background(), principal)
	require.NoError(t, err)
	assert.Same(t, principal, got)
}
