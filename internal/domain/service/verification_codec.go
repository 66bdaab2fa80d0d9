package service

import "tiktok/internal/domain/entity"

// VerificationCodec issues and decodes the stateless tokens embedded in email verification links.
type VerificationCodec interface {
	// Issue returns a signed token bound to the user that expires after the verification lifetime.
	Issue(user *entity.User) (string, error)

	// Decode returns the embedded user id. It fails with ErrInvalidOrExpiredToken when the
	// signature or expiry check fails and with ErrInvalidTokenPurpose for any other purpose.
	Decode(token string) (int64, error)
}
