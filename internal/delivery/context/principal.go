package context

import (
	"github.com/labstack/echo/v4"

	"crm/internal/domain/entity"
)

// GetPrincipal extracts the authenticated principal from echo.Context.
// Returns nil when the request has not passed authentication.
func GetPrincipal(c echo.Context) *entity.Principal {
	val := c.Get(string(KeyPrincipal))
	if principal, ok := val.(*entity.Principal); ok {
		return principal
	}

	return nil
}

// SetPrincipal stores the authenticated principal in echo.Context.
func SetPrincipal(c echo.Context, principal *entity.Principal) {
	c.Set(string(KeyPrincipal), principal)
}
