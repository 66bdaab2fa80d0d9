package usecase

import "context"

// RefreshTokenInput carries a refresh token.
type RefreshTokenInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RefreshTokenOutput returns the new access token.
type RefreshTokenOutput struct {
	Access string
}

// VerifyTokenInput carries any session token.
type VerifyTokenInput struct {
	Token string `json:"token" validate:"required"`
}

// SessionUsecase defines the interface for session token maintenance.
type SessionUsecase interface {
	// RefreshToken mints a new access token from a refresh token.
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)

	// VerifyToken succeeds when the token is a valid, unexpired session token.
	VerifyToken(ctx context.Context, input *VerifyTokenInput) error
}
