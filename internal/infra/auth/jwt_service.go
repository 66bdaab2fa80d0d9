package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tiktok/config"
	"tiktok/internal/domain/service"
	"tiktok/internal/errors"
)

var (
	// ErrUnexpectedTokenType is returned when a token of the wrong type is presented.
	ErrUnexpectedTokenType = errors.New("unexpected token type")

	// ErrPurposeTokenRejected is returned when a purpose-bound token is used as a session token.
	ErrPurposeTokenRejected = errors.New("purpose-bound token cannot be used as a session token")
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	signer     *hmacSigner
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	return newJWTService(cfg)
}

func newJWTService(cfg *config.Config) (*jwtService, error) {
	signer, err := newHMACSigner(cfg.SecretKey)
	if err != nil {
		return nil, err
	}
	if cfg.Token == nil {
		return nil, errors.New("token lifetimes must be configured")
	}

	return &jwtService{
		signer:     signer,
		accessTTL:  cfg.Token.AccessLifetime,
		refreshTTL: cfg.Token.RefreshLifetime,
	}, nil
}

// GenerateTokens creates a new access token and refresh token for a given user.
func (s *jwtService) GenerateTokens(userID int64) (*service.TokenPair, error) {
	accessToken, accessExp, err := s.generateToken(userID, service.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := s.generateToken(userID, service.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &service.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ValidateToken checks the signature, expiry and type of a session token.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims, err := s.signer.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Purpose != "" {
		return nil, errors.WithStack(ErrPurposeTokenRejected)
	}

	switch claims.Type {
	case service.TokenTypeAccess, service.TokenTypeRefresh:
		return claims, nil
	default:
		return nil, errors.Wrapf(ErrUnexpectedTokenType, "got %q", claims.Type)
	}
}

// RefreshAccessToken mints a new access token. The refresh token itself is not rotated.
func (s *jwtService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.ValidateToken(refreshToken)
	if err != nil {
		return "", err
	}

	if claims.Type != service.TokenTypeRefresh {
		return "", errors.Wrapf(ErrUnexpectedTokenType, "got %q, want refresh", claims.Type)
	}

	accessToken, _, err := s.generateToken(claims.UserID, service.TokenTypeAccess, s.accessTTL)

	return accessToken, err
}

func (s *jwtService) generateToken(userID int64, tokenType string, ttl time.Duration) (string, time.Time, error) {
	now := s.signer.now()
	expiresAt := now.Add(ttl)

	claims := &service.Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := s.signer.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}
