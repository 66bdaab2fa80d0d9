package impl

import (
	"context"

	"tiktok/config"
	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/repository"
	"tiktok/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenAuthorizer resolves a bearer access token to its user.
type tokenAuthorizer struct {
	tokenService  service.TokenService
	userRepo      repository.UserRepository
	requireActive bool
}

// AuthorizerParams holds dependencies for the Authorizer, injected by Fx.
type AuthorizerParams struct {
	fx.In

	TokenService service.TokenService
	UserRepo     repository.UserRepository
	Config       *config.Config
}

// NewTokenAuthorizer is the constructor for tokenAuthorizer.
func NewTokenAuthorizer(params AuthorizerParams) service.Authorizer {
	return &tokenAuthorizer{
		tokenService:  params.TokenService,
		userRepo:      params.UserRepo,
		requireActive: params.Config.Auth.RequireActiveLogin,
	}
}

// Authorize only accepts access tokens; refresh and verification tokens are refused.
func (a *tokenAuthorizer) Authorize(ctx context.Context, accessToken string) (*entity.User, error) {
	if accessToken == "" {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	claims, err := a.tokenService.ValidateToken(accessToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenNotValid, err.Error())
	}
	if claims.Type != service.TokenTypeAccess {
		return nil, errors.Wrap(domainerrors.ErrTokenNotValid, "token is not an access token")
	}

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrTokenUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to load token user")
	}

	if a.requireActive && !user.IsActive {
		return nil, errors.WithStack(domainerrors.ErrUserInactive)
	}

	return user, nil
}
