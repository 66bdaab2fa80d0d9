package usecase

import (
	"context"
	"strings"

	"tiktok/internal/domain/entity"
)

// UpdateProfileInput holds the optional fields of a partial profile update.
// A nil field is left untouched.
type UpdateProfileInput struct {
	Username  *string `json:"username" validate:"omitempty,max=150"`
	Phone     *string `json:"phone" validate:"omitempty,max=15"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// Trimmed returns a copy with surrounding whitespace removed from the supplied fields.
func (in UpdateProfileInput) Trimmed() UpdateProfileInput {
	for _, field := range []**string{&in.Username, &in.Phone, &in.FirstName, &in.LastName} {
		if *field != nil {
			trimmed := strings.TrimSpace(**field)
			*field = &trimmed
		}
	}

	return in
}

// ProfileUsecase defines the interface for reading and editing account profiles.
type ProfileUsecase interface {
	// GetProfile returns the profile of any user by id.
	GetProfile(ctx context.Context, userID int64) (*entity.User, error)

	// UpdateProfile applies a partial update to the given user's own record.
	UpdateProfile(ctx context.Context, userID int64, input *UpdateProfileInput) (*entity.User, error)

	// GetProfileQRCode renders a PNG QR code linking to the user's profile.
	GetProfileQRCode(ctx context.Context, userID int64) ([]byte, error)
}
