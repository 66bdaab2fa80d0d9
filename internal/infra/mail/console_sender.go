package mail

import (
	"context"
	"log/slog"

	"tiktok/internal/domain/service"
)

// ConsoleSender writes every message to the service log instead of sending it.
// It logs addresses and bodies, so it is meant for local development only.
type ConsoleSender struct {
	logger *slog.Logger
}

// NewConsoleSender creates a new ConsoleSender.
func NewConsoleSender(logger *slog.Logger) *ConsoleSender {
	return &ConsoleSender{logger: logger}
}

// Send logs the email.
func (s *ConsoleSender) Send(ctx context.Context, msg *service.MailMessage) error {
	s.logger.InfoContext(ctx, "send email",
		slog.String("from", msg.From),
		slog.Any("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)

	return nil
}
