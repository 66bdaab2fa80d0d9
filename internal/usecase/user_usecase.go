// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"strings"

	"tiktok/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
	Phone     string `json:"phone" validate:"max=15"`
	Username  string `json:"username" validate:"max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field but the password.
func (in RegisterUserInput) Trimmed() RegisterUserInput {
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Username = strings.TrimSpace(in.Username)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	return in
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyEmailInput carries the token from a verification link.
type VerifyEmailInput struct {
	Token string `query:"token"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User

	// VerificationEmailSent is false when mailing is disabled or delivery failed.
	VerificationEmailSent bool
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// VerifyEmailOutput reports the outcome of a verification link.
type VerifyEmailOutput struct {
	Message         string
	AlreadyVerified bool
}

// Verification outcomes.
const (
	MsgEmailVerified        = "Email verified successfully"
	MsgEmailAlreadyVerified = "Email already verified"
)

// UserUsecase defines the interface for account registration, login, and email verification.
type UserUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifyEmail(ctx context.Context, input *VerifyEmailInput) (*VerifyEmailOutput, error)
}
