package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
)

// ErrAPIKeyNotFound is a domain-specific error returned when no active API key
// matches a lookup.
var ErrAPIKeyNotFound = errors.New("api key not found")

// APIKeyRepository defines the operations for API key persistence. Keys are
// looked up by the SHA-256 hash of the presented secret, never by plaintext.
type APIKeyRepository interface {
	// FindByHash retrieves an active key by its secret hash, together with
	// the owning management user.
	FindByHash(ctx context.Context, keyHash string) (*entity.APIKey, *entity.User, error)

	// FindByID retrieves a key by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.APIKey, error)

	// List retrieves all keys, newest first.
	List(ctx context.Context) ([]*entity.APIKey, error)

	// Create persists a new key record.
	Create(ctx context.Context, key *entity.APIKey) error

	// Revoke deactivates a key. The row is kept for audit history.
	Revoke(ctx context.Context, id int64) error

	// TouchLastUsed records a successful use of the key. Best effort:
	// callers treat failures as log-only.
	TouchLastUsed(ctx context.Context, id int64) error
}
