package service

import (
	"context"

	"tiktok/internal/domain/entity"
)

// Authenticator resolves login credentials to a principal.
type Authenticator interface {
	// Authenticate returns nil without an error when the credentials do not match an account.
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
}

// Authorizer resolves a bearer access token to the requesting principal.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (*entity.User, error)
}
