package impl

import (
	"context"
	"log/slog"

	deliverycontext "tiktok/internal/delivery/context"
	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/repository"
	"tiktok/internal/domain/service"
	"tiktok/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	userRepo  repository.UserRepository
	qrCode    service.QRCodeService
	validator service.InputValidator
	logger    *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	QRCode    service.QRCodeService
	Validator service.InputValidator
	Logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		userRepo:  params.UserRepo,
		qrCode:    params.QRCode,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the user's profile.
func (srv *profileService) GetProfile(ctx context.Context, userID int64) (*entity.User, error) {
	return srv.findUser(ctx, userID)
}

// UpdateProfile changes only the supplied fields. An empty update returns the profile unchanged.
func (srv *profileService) UpdateProfile(ctx context.Context, userID int64, input *usecase.UpdateProfileInput) (*entity.User, error) {
	trimmed := input.Trimmed()
	input = &trimmed
	if err := srv.validator.Validate(input); err != nil {
		return nil, errors.WithStack(err)
	}

	user, err := srv.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := user.ApplyProfileChanges(entity.ProfileChanges{
		Username:  input.Username,
		Phone:     input.Phone,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	})
	if !changed {
		return user, nil
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.Int64("user_id", userID))

	return user, nil
}

// GetProfileQRCode renders the share code of an existing user.
func (srv *profileService) GetProfileQRCode(ctx context.Context, userID int64) ([]byte, error) {
	if _, err := srv.findUser(ctx, userID); err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateProfileQR(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate profile QR code")
	}

	return png, nil
}

func (srv *profileService) findUser(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
