package usecase

import (
	"net/url"

	"tiktok/internal/domain/service"

	"github.com/pkg/errors"
)

// VerificationSubject is the subject line of the verification email.
const VerificationSubject = "Verify your email"

const verificationBodyPrefix = "Click here to verify your email: "

// VerificationLink sets the token query parameter on the configured verification URL.
func VerificationLink(base, token string) (string, error) {
	link, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrap(err, "invalid verification URL")
	}

	query := link.Query()
	query.Set("token", token)
	link.RawQuery = query.Encode()

	return link.String(), nil
}

// NewVerificationMail addresses a verification link to a single recipient.
func NewVerificationMail(from, to, link string) *service.MailMessage {
	return &service.MailMessage{
		From:    from,
		To:      []string{to},
		Subject: VerificationSubject,
		Body:    verificationBodyPrefix + link,
	}
}
