// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and
// the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"crm/internal/domain/entity"
)

// ErrUserNotFound is a domain-specific error returned when a management user
// is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for management-tier account
// persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByUsername retrieves a single user by their login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// List retrieves all management users, newest first.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user by ID.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of management users.
	Count(ctx context.Context) (int64, error)
}
