package impl

import (
	"context"
	"log/slog"

	"tiktok/config"
	deliverycontext "tiktok/internal/delivery/context"
	"tiktok/internal/domain/entity"
	"tiktok/internal/domain/repository"
	"tiktok/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// credentialAuthenticator checks an email and password against the stored bcrypt hash.
type credentialAuthenticator struct {
	userRepo      repository.UserRepository
	hasher        service.PasswordHasher
	requireActive bool
	logger        *slog.Logger
}

// AuthenticatorParams holds dependencies for the Authenticator, injected by Fx.
type AuthenticatorParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Config   *config.Config
	Logger   *slog.Logger
}

// NewCredentialAuthenticator is the constructor for credentialAuthenticator.
func NewCredentialAuthenticator(params AuthenticatorParams) service.Authenticator {
	return &credentialAuthenticator{
		userRepo:      params.UserRepo,
		hasher:        params.Hasher,
		requireActive: params.Config.Auth.RequireActiveLogin,
		logger:        params.Logger,
	}
}

// Authenticate returns nil, nil for an unknown email, a wrong password, or (when required) an inactive account.
func (a *credentialAuthenticator) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Hash anyway so unknown emails take as long as wrong passwords.
			_, _ = a.hasher.Hash(password)

			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !a.hasher.Check(password, user.PasswordHash) {
		return nil, nil
	}

	if a.requireActive && !user.IsActive {
		deliverycontext.GetLoggerOrDefault(ctx, a.logger).Info("Login of unverified account refused", slog.Int64("user_id", user.ID))

		return nil, nil
	}

	return user, nil
}
