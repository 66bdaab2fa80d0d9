package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the token_type claim.
const (
	TokenTypeAccess       = "access"
	TokenTypeRefresh      = "refresh"
	TokenTypeVerification = "verification"
)

// PurposeEmailVerification tags tokens that may only be used to verify an email address.
const PurposeEmailVerification = "email_verification"

// Claims defines the custom claims shared by session and verification tokens.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Type    string `json:"token_type"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// TokenService defines the interface for generating and validating session JWTs.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a given user.
	GenerateTokens(userID int64) (*TokenPair, error)

	// ValidateToken checks the validity of a session token string.
	// Tokens carrying a purpose claim are rejected.
	ValidateToken(tokenString string) (*Claims, error)

	// RefreshAccessToken mints a new access token from a valid refresh token.
	RefreshAccessToken(refreshToken string) (string, error)
}
