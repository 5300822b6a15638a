package service

import (
	"time"

	"crm/internal/domain/entity"
)

// TokenKind distinguishes the two signed token flavors. Each kind is signed
// with its own secret so leakage of one cannot forge the other.
type TokenKind string

const (
	// TokenAccess is the short-lived token presented on every request.
	TokenAccess TokenKind = "access"
	// TokenRefresh is the long-lived token exchanged for new access tokens.
	TokenRefresh TokenKind = "refresh"
)

// TokenService defines the interface for issuing and verifying signed,
// time-bounded tokens. Tokens are stateless: validity is entirely a function
// of signature and expiry, with no server-side storage or revocation list.
type TokenService interface {
	// Issue serializes the principal's identity into a signed token of the
	// given kind.
	Issue(principal *entity.Principal, kind TokenKind) (string, error)

	// IssuePair issues an access and a refresh token for the principal.
	IssuePair(principal *entity.Principal) (accessToken string, refreshToken string, err error)

	// Verify checks a token's signature and expiry against the kind's
	// secret and reconstructs the principal from its claims. Expected
	// failures return a typed domain error, never a panic or a bare
	// library error.
	Verify(tokenString string, kind TokenKind) (*entity.Principal, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration

	// RefreshTokenTTL returns the configured refresh token lifetime.
	RefreshTokenTTL() time.Duration
}
