package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/config"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/service"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func testStaffPrincipal() *entity.Principal {
	branchID := int64(3)

	return &entity.Principal{
		ID:       42,
		Username: "cashier01",
		FullName: "Test Cashier",
		Kind:     entity.KindStaff,
		Role:     entity.RoleCashier.String(),
		BranchID: &branchID,
	}
}

func TestJWTService_IssueAndVerifyPair(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	principal := testStaffPrincipal()

	accessToken, refreshToken, err := svc.IssuePair(principal)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	got, err := svc.Verify(accessToken, service.TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, got.ID)
	assert.Equal(t, principal.Username, got.Username)
	assert.Equal(t, principal.Kind, got.Kind)
	assert.Equal(t, principal.Role, got.Role)
	require.NotNil(t, got.BranchID)
	assert.Equal(t, *principal.BranchID, *got.BranchID)
	assert.Equal(t, entity.AuthMethodToken, got.AuthMethod)

	refreshed, err := svc.Verify(refreshToken, service.TokenRefresh)
	require.NoError(t, err)
	assert.Equal(t, principal.ID, refreshed.ID)
}

func TestJWTService_ManagementPrincipalHasNoBranch(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	principal := &entity.Principal{
		ID:       1,
		Username: "owner",
		Kind:     entity.KindManagement,
		Role:     entity.RoleOwner.String(),
	}

	token, err := svc.Issue(principal, service.TokenAccess)
	require.NoError(t, err)

	got, err := svc.Verify(token, service.TokenAccess)
	require.NoError(t, err)
	assert.Nil(t, got.BranchID)
	assert.Equal(t, entity.KindManagement, got.Kind)
}

func TestJWTService_CrossKindRejected(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := svc.IssuePair(testStaffPrincipal())
	require.NoError(t, err)

	// A refresh token can never be presented as an access token, and vice
	// versa: different secrets sign them.
	_, err = svc.Verify(refreshToken, service.TokenAccess)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	_, err = svc.Verify(accessToken, service.TokenRefresh)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := &jwtService{
		accessSecret:  "access-secret",
		refreshSecret: "refresh-secret",
		accessTTL:     -time.Minute,
		refreshTTL:    time.Hour,
	}

	token, err := svc.Issue(testStaffPrincipal(), service.TokenAccess)
	require.NoError(t, err)

	_, err = svc.Verify(token, service.TokenAccess)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	_, err = svc.Verify("clearly-not-a-jwt", service.TokenAccess)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestNewJWTService_RejectsBadSecrets(t *testing.T) {
	cfg := &config.Config{}
	_, err := NewJWTService(cfg)
	assert.Error(t, err)

	cfg.SecretKey.Access = "same-secret"
	cfg.SecretKey.Refresh = "same-secret"
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_TTLDefaults(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, svc.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenTTL())
}
