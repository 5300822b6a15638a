package postgres

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/infra/persistence/model"
)

// apiKeyRepository implements the domain's APIKeyRepository interface using GORM.
type apiKeyRepository struct {
	db *gorm.DB
}

// NewAPIKeyRepository is the constructor for apiKeyRepository.
func NewAPIKeyRepository(db *gorm.DB) repository.APIKeyRepository {
	return &apiKeyRepository{db: db}
}

// FindByHash retrieves an active key by its secret digest, together with the
// owning management user. Revoked keys are filtered at the query level so a
// revoked secret behaves like an unknown one.
func (repo *apiKeyRepository) FindByHash(ctx context.Context, keyHash string) (*entity.APIKey, *entity.User, error) {
	var keyM model.APIKeyModel
	err := repo.db.WithContext(ctx).Preload("User").
		Where("key_hash = ? AND is_active", keyHash).
		First(&keyM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, repository.ErrAPIKeyNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to find api key by hash")
	}

	return toAPIKeyDomain(&keyM), toUserDomain(keyM.User), nil
}

// FindByID retrieves a key by its unique ID.
func (repo *apiKeyRepository) FindByID(ctx context.Context, id int64) (*entity.APIKey, error) {
	var keyM model.APIKeyModel
	if err := repo.db.WithContext(ctx).First(&keyM, "api_key_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAPIKeyNotFound
		}

		return nil, errors.Wrap(err, "failed to find api key by id")
	}

	return toAPIKeyDomain(&keyM), nil
}

// List retrieves all keys, newest first. Revoked keys are included so the
// listing doubles as an audit trail.
func (repo *apiKeyRepository) List(ctx context.Context) ([]*entity.APIKey, error) {
	var keyMs []model.APIKeyModel
	if err := repo.db.WithContext(ctx).Order("api_key_id DESC").Find(&keyMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list api keys")
	}

	keys := make([]*entity.APIKey, 0, len(keyMs))
	for i := range keyMs {
		keys = append(keys, toAPIKeyDomain(&keyMs[i]))
	}

	return keys, nil
}

// Create persists a new key record.
func (repo *apiKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	keyM := fromAPIKeyDomain(key)

	if err := repo.db.WithContext(ctx).Create(keyM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create api key")
	}

	key.ID = keyM.ID
	key.CreatedAt = keyM.CreatedAt

	return nil
}

// Revoke deactivates a key. The row is kept for audit history.
func (repo *apiKeyRepository) Revoke(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Model(&model.APIKeyModel{}).
		Where("api_key_id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to revoke api key")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAPIKeyNotFound
	}

	return nil
}

// TouchLastUsed records a successful use of the key. Best effort: callers
// run it off the request path and treat failures as log-only.
func (repo *apiKeyRepository) TouchLastUsed(ctx context.Context, id int64) error {
	err := repo.db.WithContext(ctx).Model(&model.APIKeyModel{}).
		Where("api_key_id = ?", id).
		Update("last_used_at", time.Now()).Error
	if err != nil {
		return errors.Wrap(err, "failed to touch api key last_used_at")
	}

	return nil
}

// --- Mapper Functions ---

// toAPIKeyDomain converts a GORM APIKeyModel to a domain APIKey entity.
func toAPIKeyDomain(data *model.APIKeyModel) *entity.APIKey {
	if data == nil {
		return nil
	}

	return &entity.APIKey{
		ID:         data.ID,
		UserID:     data.UserID,
		Name:       data.Name,
		KeyHash:    data.KeyHash,
		KeyPrefix:  data.KeyPrefix,
		Scopes:     data.Scopes,
		ExpiresAt:  data.ExpiresAt,
		IsActive:   data.IsActive,
		LastUsedAt: data.LastUsedAt,
		CreatedAt:  data.CreatedAt,
	}
}

// fromAPIKeyDomain converts a domain APIKey entity to a GORM APIKeyModel.
func fromAPIKeyDomain(data *entity.APIKey) *model.APIKeyModel {
	if data == nil {
		return nil
	}

	return &model.APIKeyModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Name:      data.Name,
		KeyHash:   data.KeyHash,
		KeyPrefix: data.KeyPrefix,
		Scopes:    data.Scopes,
		ExpiresAt: data.ExpiresAt,
		IsActive:  data.IsActive,
	}
}
