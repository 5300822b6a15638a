// Package middleware contains the HTTP middlewares for authentication,
// authorization, request identification and error rendering.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/authz"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/service"
	"crm/internal/usecase"
)

// HeaderXAPIKey carries the API key secret for service-to-service calls.
const HeaderXAPIKey = "X-API-Key"

// AuthMiddleware authenticates requests via a JWT access token or an API key
// and stores the resulting principal on the request context.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	apiKeyUC usecase.APIKeyUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, apiKeyUC usecase.APIKeyUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, apiKeyUC: apiKeyUC}
}

// Authenticate validates the request credential. An API key takes precedence
// when both are present. Failures surface as domain errors so the error
// handler renders the envelope with the right status.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if apiKey := c.Request().Header.Get(HeaderXAPIKey); apiKey != "" {
			principal, err := m.apiKeyUC.Authenticate(c.Request().Context(), apiKey)
			if err != nil {
				return err
			}
			deliverycontext.SetPrincipal(c, principal)

			return next(c)
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrTokenMissing, "no authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return errors.Wrap(domainerrors.ErrTokenInvalid, "authorization header is not a bearer token")
		}

		// An API key secret presented as a bearer token still takes the
		// API key path.
		if strings.HasPrefix(tokenString, "sk_") {
			principal, err := m.apiKeyUC.Authenticate(c.Request().Context(), tokenString)
			if err != nil {
				return err
			}
			deliverycontext.SetPrincipal(c, principal)

			return next(c)
		}

		principal, err := m.tokenSvc.Verify(tokenString, service.TokenAccess)
		if err != nil {
			return err
		}
		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// RequireRoles is a middleware factory gating a route group on a role set.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRoles(allowed authz.RoleSet) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authz.AuthorizeRole(deliverycontext.GetPrincipal(c), allowed); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// RequireScope is a middleware factory enforcing API-key scopes on a route.
// Token-authenticated principals pass through unchecked.
func (m *AuthMiddleware) RequireScope(scopes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authz.RequireScope(deliverycontext.GetPrincipal(c), scopes...); err != nil {
				return err
			}

			return next(c)
		}
	}
}
