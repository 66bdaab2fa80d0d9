package context

import (
	"tiktok/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the key for storing the authenticated user in echo.Context.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the authenticated user for the rest of the request.
func SetPrincipal(c echo.Context, user *entity.User) {
	c.Set(string(KeyPrincipal), user)
}

// GetPrincipal returns the authenticated user, if the auth middleware ran.
func GetPrincipal(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyPrincipal)).(*entity.User)

	return user, ok && user != nil
}
