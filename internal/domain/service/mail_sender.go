package service

import "context"

// MailMessage is a plain-text email.
type MailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// MailSender delivers outgoing email.
type MailSender interface {
	Send(ctx context.Context, msg *MailMessage) error
}
