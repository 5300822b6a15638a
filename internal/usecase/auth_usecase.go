// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// --- Input DTOs ---

// LoginInput defines the credentials for a password login. The same endpoint
// serves management users and branch staff.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries the refresh token presented for token renewal.
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// --- Output DTOs ---

// LoginOutput returns the token pair and the authenticated identity.
type LoginOutput struct {
	AccessToken  string            `json:"accessToken"`
	RefreshToken string            `json:"refreshToken"`
	Principal    *entity.Principal `json:"user"`
}

// RefreshOutput returns the renewed access token. The refresh token is not
// rotated; it stays valid until its own expiry.
type RefreshOutput struct {
	AccessToken string `json:"accessToken"`
}

// AuthUsecase defines the interface for authentication operations.
type AuthUsecase interface {
	// Login verifies credentials against management accounts first, then
	// branch staff, and issues a token pair on success.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, input RefreshInput) (*RefreshOutput, error)

	// Me returns the current account profile for the authenticated
	// principal, read fresh from storage.
	Me(ctx context.Context, principal *entity.Principal) (*entity.Principal, error)
}
