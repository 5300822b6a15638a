package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/domain/service"
	"crm/internal/usecase"
)

// touchTimeout bounds the background last-used write so it cannot pile up
// behind a slow database.
const touchTimeout = 5 * time.Second

// apiKeyService implements the APIKeyUsecase interface.
type apiKeyService struct {
	apiKeyRepo repository.APIKeyRepository
	generator  service.APIKeyGenerator
	logger     *slog.Logger
}

// NewAPIKeyService is the constructor for apiKeyService.
func NewAPIKeyService(
	apiKeyRepo repository.APIKeyRepository,
	generator service.APIKeyGenerator,
	logger *slog.Logger,
) usecase.APIKeyUsecase {
	return &apiKeyService{
		apiKeyRepo: apiKeyRepo,
		generator:  generator,
		logger:     logger,
	}
}

func (srv *apiKeyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create mints a new key owned by the calling management user. The plaintext
// secret appears in the output exactly once and is never stored.
func (srv *apiKeyService) Create(ctx context.Context, principal *entity.Principal, input usecase.CreateAPIKeyInput) (*usecase.CreateAPIKeyOutput, error) {
	if principal == nil || !principal.IsManagement() {
		return nil, domainerrors.ErrForbidden
	}

	secret, hash, displayPrefix, err := srv.generator.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate api key")
	}

	var expiresAt *time.Time
	if input.ExpiresInDays > 0 {
		expiry := time.Now().AddDate(0, 0, input.ExpiresInDays)
		expiresAt = &expiry
	}

	key := &entity.APIKey{
		UserID:    principal.ID,
		Name:      sanitize(input.Name),
		KeyHash:   hash,
		KeyPrefix: displayPrefix,
		Scopes:    input.Scopes,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}

	if err := srv.apiKeyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("API key created",
		slog.Int64("api_key_id", key.ID),
		slog.Int64("user_id", key.UserID),
		slog.String("prefix", key.KeyPrefix),
	)

	return &usecase.CreateAPIKeyOutput{Key: key, Secret: secret}, nil
}

// List retrieves all keys, revoked ones included.
func (srv *apiKeyService) List(ctx context.Context) ([]*entity.APIKey, error) {
	keys, err := srv.apiKeyRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list api keys")
	}

	return keys, nil
}

// Revoke deactivates a key. Requests presenting it fail from the next lookup
// on; there is no grace period.
func (srv *apiKeyService) Revoke(ctx context.Context, id int64) error {
	if err := srv.apiKeyRepo.Revoke(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAPIKeyNotFound) {
			return domainerrors.ErrAPIKeyNotFound
		}

		return err
	}

	srv.log(ctx).Info("API key revoked", slog.Int64("api_key_id", id))

	return nil
}

// Authenticate resolves a presented secret into a principal carrying the
// key's scopes. The last-used timestamp is written off the request path.
func (srv *apiKeyService) Authenticate(ctx context.Context, secret string) (*entity.Principal, error) {
	if !strings.HasPrefix(secret, "sk_") {
		return nil, domainerrors.ErrAPIKeyInvalid
	}

	key, owner, err := srv.apiKeyRepo.FindByHash(ctx, srv.generator.HashSecret(secret))
	if err != nil {
		if errors.Is(err, repository.ErrAPIKeyNotFound) {
			return nil, domainerrors.ErrAPIKeyInvalid
		}

		return nil, errors.Wrap(err, "failed to look up api key")
	}

	if key.Expired(time.Now()) {
		return nil, domainerrors.ErrAPIKeyExpired
	}

	// Fire and forget: authentication latency must not depend on this
	// bookkeeping write.
	go srv.touchLastUsed(key.ID)

	principal := owner.Principal()
	principal.AuthMethod = entity.AuthMethodAPIKey
	principal.Scopes = key.Scopes

	return principal, nil
}

func (srv *apiKeyService) touchLastUsed(id int64) {
	ctx, cancel := context.WithTimeout(context.Background(), touchTimeout)
	defer cancel()

	if err := srv.apiKeyRepo.TouchLastUsed(ctx, id); err != nil {
		srv.logger.Warn("Failed to record api key usage",
			slog.Int64("api_key_id", id),
			slog.Any("error", err),
		)
	}
}
