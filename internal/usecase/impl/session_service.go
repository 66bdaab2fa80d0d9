package impl

import (
	"context"
	"log/slog"

	deliverycontext "tiktok/internal/delivery/context"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/service"
	"tiktok/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	tokenService service.TokenService
	validator    service.InputValidator
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TokenService service.TokenService
	Validator    service.InputValidator
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		tokenService: params.TokenService,
		validator:    params.Validator,
		logger:       params.Logger,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RefreshToken mints a new access token. The refresh token stays valid until it expires.
func (srv *sessionService) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	if err := srv.validator.Validate(input); err != nil {
		return nil, errors.WithStack(err)
	}

	access, err := srv.tokenService.RefreshAccessToken(input.Refresh)
	if err != nil {
		srv.log(ctx).Info("Refresh token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenNotValid, err.Error())
	}

	return &usecase.RefreshTokenOutput{Access: access}, nil
}

// VerifyToken accepts any valid access or refresh token.
func (srv *sessionService) VerifyToken(ctx context.Context, input *usecase.VerifyTokenInput) error {
	if err := srv.validator.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if _, err := srv.tokenService.ValidateToken(input.Token); err != nil {
		srv.log(ctx).Debug("Session token rejected", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrTokenNotValid, err.Error())
	}

	return nil
}
