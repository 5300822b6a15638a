package usecase

import (
	"context"

	"crm/internal/domain/entity"
)

// CreateAPIKeyInput defines the data required to mint a new API key.
// ExpiresInDays of zero means the key never expires.
type CreateAPIKeyInput struct {
	Name          string   `json:"name" validate:"required,min=1,max=255"`
	Scopes        []string `json:"scopes" validate:"required,min=1,dive,oneof=read write admin"`
	ExpiresInDays int      `json:"expires_in_days" validate:"omitempty,gte=0,lte=3650"`
}

// CreateAPIKeyOutput returns the created key record together with the
// plaintext secret. The secret is never retrievable again.
type CreateAPIKeyOutput struct {
	Key    *entity.APIKey `json:"api_key"`
	Secret string         `json:"key"`
}

// APIKeyUsecase defines the interface for API key management and for
// authenticating requests that present a key.
type APIKeyUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, input CreateAPIKeyInput) (*CreateAPIKeyOutput, error)
	List(ctx context.Context) ([]*entity.APIKey, error)
	Revoke(ctx context.Context, id int64) error

	// Authenticate resolves a presented secret into a principal carrying
	// the key's scopes. Usage is recorded off the request path.
	Authenticate(ctx context.Context, secret string) (*entity.Principal, error)
}
