package middleware

import (
	"strings"

	deliverycontext "tiktok/internal/delivery/context"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates requests with a bearer access token.
type AuthMiddleware struct {
	authorizer service.Authorizer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(authorizer service.Authorizer) *AuthMiddleware {
	return &AuthMiddleware{authorizer: authorizer}
}

// Authenticate stores the token's user as the request principal or fails with 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return errors.WithStack(domainerrors.ErrNotAuthenticated)
		}

		// The scheme is case-insensitive.
		if len(authHeader) < len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return errors.WithStack(domainerrors.ErrTokenNotValid)
		}
		token := strings.TrimSpace(authHeader[len(bearerPrefix):])

		user, err := m.authorizer.Authorize(c.Request().Context(), token)
		if err != nil {
			return err
		}

		deliverycontext.SetPrincipal(c, user)

		return next(c)
	}
}
