package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"tiktok/config"
	"tiktok/internal/domain/entity"
	domainerrors "tiktok/internal/domain/errors"
	"tiktok/internal/domain/service"
	"tiktok/internal/errors"
)

// verificationCodec issues email verification tokens on the session token format,
// distinguished by the purpose claim.
type verificationCodec struct {
	signer *hmacSigner
	ttl    time.Duration
}

// NewVerificationCodec creates the codec used for email verification links.
func NewVerificationCodec(cfg *config.Config) (service.VerificationCodec, error) {
	return newVerificationCodec(cfg)
}

func newVerificationCodec(cfg *config.Config) (*verificationCodec, error) {
	signer, err := newHMACSigner(cfg.SecretKey)
	if err != nil {
		return nil, err
	}
	if cfg.Token == nil || cfg.Token.VerificationLifetime <= 0 {
		return nil, errors.New("verification token lifetime must be configured")
	}

	return &verificationCodec{signer: signer, ttl: cfg.Token.VerificationLifetime}, nil
}

// Issue binds the user id and the email verification purpose into a signed token.
func (c *verificationCodec) Issue(user *entity.User) (string, error) {
	if user == nil || user.ID == 0 {
		return "", errors.New("cannot issue a verification token for an unsaved user")
	}

	now := c.signer.now()
	claims := &service.Claims{
		UserID:  user.ID,
		Type:    service.TokenTypeVerification,
		Purpose: service.PurposeEmailVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return c.signer.sign(claims)
}

// Decode checks signature and expiry before the purpose, so a forged purpose is never inspected.
func (c *verificationCodec) Decode(token string) (int64, error) {
	claims, err := c.signer.parse(token)
	if err != nil {
		return 0, domainerrors.ErrInvalidOrExpiredToken.WrapMessage(err.Error())
	}

	if claims.Purpose != service.PurposeEmailVerification {
		return 0, domainerrors.ErrInvalidTokenPurpose.WrapMessage("unexpected purpose " + strconv.Quote(claims.Purpose))
	}

	return claims.UserID, nil
}
