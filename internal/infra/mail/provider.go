package mail

import (
	"log/slog"

	"tiktok/config"
	"tiktok/internal/domain/service"
	"tiktok/internal/errors"

	"go.uber.org/fx"
)

// Params holds dependencies for the MailSender, injected by Fx
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewSender selects the mail backend named by email.backend
func NewSender(params Params) (service.MailSender, error) {
	cfg := params.Config.Email

	switch cfg.Backend {
	case config.EmailBackendSMTP:
		params.Logger.Info("Using SMTP mail backend",
			slog.String("host", cfg.Host),
			slog.Int("port", cfg.Port),
			slog.Bool("use_tls", cfg.UseTLS),
		)

		return NewSMTPSender(cfg, params.Logger), nil
	case config.EmailBackendConsole:
		return NewConsoleSender(params.Logger), nil
	case config.EmailBackendMemory:
		return NewMemorySender(), nil
	default:
		return nil, errors.Errorf("unknown email backend: %s", cfg.Backend)
	}
}
