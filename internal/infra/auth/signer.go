package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tiktok/internal/domain/service"
	"tiktok/internal/errors"
)

// hmacSigner signs and parses HS256 tokens with the process-wide secret.
type hmacSigner struct {
	secret []byte
	now    func() time.Time
}

func newHMACSigner(secret string) (*hmacSigner, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &hmacSigner{secret: []byte(secret), now: time.Now}, nil
}

func (s *hmacSigner) sign(claims *service.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// parse verifies the signature and expiry and returns the decoded claims.
func (s *hmacSigner) parse(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}

	return claims, nil
}
