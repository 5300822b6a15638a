package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/delivery/http/response"
	"crm/internal/usecase"
)

// APIKeyHandler holds dependencies for API key management handlers.
type APIKeyHandler struct {
	uc     usecase.APIKeyUsecase
	logger *slog.Logger
}

// NewAPIKeyHandler is the constructor for APIKeyHandler, injected by Fx.
func NewAPIKeyHandler(uc usecase.APIKeyUsecase, logger *slog.Logger) *APIKeyHandler {
	return &APIKeyHandler{uc: uc, logger: logger}
}

// Create mints a new API key. The response is the only place the plaintext
// secret ever appears.
func (h *APIKeyHandler) Create(c echo.Context) error {
	var input usecase.CreateAPIKeyInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid api key input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.uc.Create(c.Request().Context(), deliverycontext.GetPrincipal(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "API key created. Store the secret now; it will not be shown again.")
}

// List handles the API key listing. Secrets are never included.
func (h *APIKeyHandler) List(c echo.Context) error {
	keys, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, keys, "")
}

// Revoke deactivates an API key.
func (h *APIKeyHandler) Revoke(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.uc.Revoke(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "API key revoked successfully")
}
