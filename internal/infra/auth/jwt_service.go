// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"crm/config"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/service"
)

// principalClaims carries the principal's identity inside the signed token.
// The token itself is the only session state; nothing is stored server-side.
type principalClaims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role"`
	Kind     string `json:"kind"`
	BranchID *int64 `json:"branch_id,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using
// the JWT standard. Access and refresh tokens are signed with separate
// secrets so one kind can never be presented as the other.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}
	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.AccessTokenTTL(),
		refreshTTL:    cfg.RefreshTokenTTL(),
	}, nil
}

// Issue serializes the principal into a signed token of the given kind.
func (s *jwtService) Issue(principal *entity.Principal, kind service.TokenKind) (string, error) {
	secret, ttl, err := s.keyFor(kind)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &principalClaims{
		UserID:   principal.ID,
		Username: principal.Username,
		FullName: principal.FullName,
		Role:     principal.Role,
		Kind:     string(principal.Kind),
		BranchID: principal.BranchID,
		Type:     string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return signed, nil
}

// IssuePair issues an access and a refresh token for the principal.
func (s *jwtService) IssuePair(principal *entity.Principal) (string, string, error) {
	accessToken, err := s.Issue(principal, service.TokenAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.Issue(principal, service.TokenRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Verify checks signature, expiry and token type against the kind's secret,
// then rebuilds the principal from the claims.
func (s *jwtService) Verify(tokenString string, kind service.TokenKind) (*entity.Principal, error) {
	secret, _, err := s.keyFor(kind)
	if err != nil {
		return nil, err
	}

	claims := &principalClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrTokenInvalid
	}

	// A token signed with the right secret but carrying the wrong type
	// claim is rejected as well.
	if claims.Type != string(kind) {
		return nil, domainerrors.ErrTokenInvalid
	}

	principal := &entity.Principal{
		ID:         claims.UserID,
		Username:   claims.Username,
		FullName:   claims.FullName,
		Kind:       entity.Kind(claims.Kind),
		Role:       claims.Role,
		BranchID:   claims.BranchID,
		AuthMethod: entity.AuthMethodToken,
	}
	return principal, nil
}

// AccessTokenTTL returns the configured access token lifetime.
func (s *jwtService) AccessTokenTTL() time.Duration {
	return s.accessTTL
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenTTL() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) keyFor(kind service.TokenKind) (string, time.Duration, error) {
	switch kind {
	case service.TokenAccess:
		return s.accessSecret, s.accessTTL, nil
	case service.TokenRefresh:
		return s.refreshSecret, s.refreshTTL, nil
	default:
		return "", 0, errors.Errorf("unknown token kind: %s", kind)
	}
}
