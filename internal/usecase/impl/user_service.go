// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"maps"
	"strings"

	"tiktok/config"
	deliverycontext "tiktok/internal/delivery/context"
	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/repository"
	"tiktok/internal/domain/service"
	internalerrors "tiktok/internal/errors"
	"tiktok/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	verificationCodec service.VerificationCodec
	authenticator     service.Authenticator
	mailSender        service.MailSender
	events            *eventEmitter
	validator         service.InputValidator

	sendVerification bool
	verificationURL  string
	mailFrom         string
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager         repository.TransactionManager
	UserRepo          repository.UserRepository
	Hasher            service.PasswordHasher
	TokenService      service.TokenService
	VerificationCodec service.VerificationCodec
	Authenticator     service.Authenticator
	MailSender        service.MailSender
	EventPublisher    service.EventPublisher
	Validator         service.InputValidator
	Config            *config.Config
	Logger            *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		verificationCodec: params.VerificationCodec,
		authenticator:     params.Authenticator,
		mailSender:        params.MailSender,
		events:            newEventEmitter(params.EventPublisher, params.Logger),
		validator:         params.Validator,
		sendVerification:  params.Config.Auth.ShouldSendVerificationEmail(),
		verificationURL:   params.Config.Email.VerificationURL,
		mailFrom:          params.Config.Email.DefaultFrom,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates an inactive account and, when enabled, mails a verification link.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	normalized := input.Trimmed()

	if err := srv.validator.Validate(&normalized); err != nil {
		return nil, srv.withEmailUniqueness(ctx, normalized.Email, err)
	}
	normalized.Email = normalizeEmail(normalized.Email)

	srv.log(ctx).Info("Starting registration", slog.String("email", normalized.Email))

	hashedPassword, err := srv.hasher.Hash(normalized.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, normalized.Email)
		if err == nil {
			return domainerrors.NewFieldError("email", domainerrors.MsgEmailTaken)
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		newUser := &entity.User{
			Email:        normalized.Email,
			Username:     normalized.Username,
			Phone:        normalized.Phone,
			FirstName:    normalized.FirstName,
			LastName:     normalized.LastName,
			PasswordHash: hashedPassword,
			IsActive:     false,
		}
		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}
		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", normalized.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.Int64("user_id", registeredUser.ID))
	srv.events.emit(ctx, service.EventUserRegistered, registeredUser)

	output := &usecase.RegisterOutput{User: registeredUser}
	if srv.sendVerification {
		output.VerificationEmailSent = srv.sendVerificationEmail(ctx, registeredUser)
	}

	return output, nil
}

// withEmailUniqueness adds the taken-email error to a validation failure so that
// every invalid field is reported at once. The email is checked only when it is itself valid.
func (srv *userService) withEmailUniqueness(ctx context.Context, email string, validationErr error) error {
	fieldErrs, ok := internalerrors.AsType[domainerrors.FieldErrors](validationErr)
	if !ok {
		return errors.WithStack(validationErr)
	}
	if _, invalid := fieldErrs["email"]; invalid {
		return errors.WithStack(fieldErrs)
	}

	_, err := srv.userRepo.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case err == nil:
		merged := maps.Clone(fieldErrs)
		merged["email"] = domainerrors.MsgEmailTaken

		return errors.WithStack(merged)
	case errors.Is(err, repository.ErrUserNotFound):
		return errors.WithStack(fieldErrs)
	default:
		return errors.Wrap(err, "failed to check email uniqueness")
	}
}

// sendVerificationEmail never fails the registration; the account already exists.
func (srv *userService) sendVerificationEmail(ctx context.Context, user *entity.User) bool {
	token, err := srv.verificationCodec.Issue(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue verification token", slog.Int64("user_id", user.ID), slog.Any("error", err))

		return false
	}

	link, err := usecase.VerificationLink(srv.verificationURL, token)
	if err != nil {
		srv.log(ctx).Error("Failed to build verification link", slog.Any("error", err))

		return false
	}

	if err := srv.mailSender.Send(ctx, usecase.NewVerificationMail(srv.mailFrom, user.Email, link)); err != nil {
		srv.log(ctx).Error("Failed to send verification email", slog.Int64("user_id", user.ID), slog.Any("error", err))

		return false
	}

	return true
}

// Login checks the credentials and issues a session token pair.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	if err := srv.validator.Validate(input); err != nil {
		return nil, errors.WithStack(err)
	}

	user, err := srv.authenticator.Authenticate(ctx, normalizeEmail(strings.TrimSpace(input.Email)), input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to authenticate")
	}
	if user == nil {
		srv.log(ctx).Info("Login rejected", slog.String("email", input.Email))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	pair, err := srv.tokenService.GenerateTokens(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	srv.log(ctx).Info("User logged in", slog.Int64("user_id", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// VerifyEmail activates the account named by a verification token. Replays are harmless.
func (srv *userService) VerifyEmail(ctx context.Context, input *usecase.VerifyEmailInput) (*usecase.VerifyEmailOutput, error) {
	if input == nil || input.Token == "" {
		return nil, errors.WithStack(domainerrors.ErrTokenRequired)
	}

	userID, err := srv.verificationCodec.Decode(input.Token)
	if err != nil {
		srv.log(ctx).Info("Verification token rejected", slog.Any("error", err))

		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "verification token names an unknown user")
		}

		return nil, errors.Wrap(err, "failed to load user for verification")
	}

	if !user.Activate() {
		return &usecase.VerifyEmailOutput{Message: usecase.MsgEmailAlreadyVerified, AlreadyVerified: true}, nil
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to activate user")
	}

	srv.log(ctx).Info("Email verified", slog.Int64("user_id", user.ID))
	srv.events.emit(ctx, service.EventUserEmailVerified, user)

	return &usecase.VerifyEmailOutput{Message: usecase.MsgEmailVerified}, nil
}

// normalizeEmail lowercases the domain part; the local part is case-sensitive.
func normalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}

	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
