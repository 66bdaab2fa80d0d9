// Package mail delivers outgoing email through SMTP, the service log, or memory.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"tiktok/config"
	"tiktok/internal/domain/service"
	"tiktok/internal/errors"

	"github.com/google/uuid"
)

const (
	implicitTLSPort    = 465
	defaultDialTimeout = 10 * time.Second
)

// SMTPSender sends mail through an SMTP relay.
// Port 465 uses implicit TLS; otherwise STARTTLS is negotiated when useTLS is set.
type SMTPSender struct {
	cfg    *config.EmailConfig
	auth   smtp.Auth
	logger *slog.Logger
}

// NewSMTPSender creates an SMTP sender. Authentication is skipped without a username.
func NewSMTPSender(cfg *config.EmailConfig, logger *slog.Logger) *SMTPSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTPSender{cfg: cfg, auth: auth, logger: logger}
}

// Send delivers one message. The context deadline bounds the whole SMTP exchange.
func (s *SMTPSender) Send(ctx context.Context, msg *service.MailMessage) error {
	if len(msg.To) == 0 {
		return errors.New("mail has no recipients")
	}

	from := msg.From
	if from == "" {
		from = s.cfg.DefaultFrom
	}

	conn, err := s.dial(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to connect to SMTP server %s", s.address())
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return errors.Wrap(err, "failed to create SMTP client")
	}
	defer client.Close()

	if s.cfg.UseTLS && s.cfg.Port != implicitTLSPort {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return errors.Wrap(err, "failed to start TLS")
		}
	}

	if s.auth != nil {
		if err := client.Auth(s.auth); err != nil {
			return errors.Wrap(err, "SMTP authentication failed")
		}
	}

	if err := client.Mail(from); err != nil {
		return errors.Wrap(err, "failed to set sender")
	}
	for _, recipient := range msg.To {
		if err := client.Rcpt(recipient); err != nil {
			return errors.Wrapf(err, "failed to set recipient %s", recipient)
		}
	}

	w, err := client.Data()
	if err != nil {
		return errors.Wrap(err, "failed to get data writer")
	}
	if _, err := w.Write(buildMessage(from, msg, time.Now())); err != nil {
		return errors.Wrap(err, "failed to write message")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "failed to close data writer")
	}

	s.logger.InfoContext(ctx, "Email sent",
		slog.String("subject", msg.Subject),
		slog.Int("recipients", len(msg.To)),
	)

	return errors.WithStack(client.Quit())
}

func (s *SMTPSender) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: defaultDialTimeout}
	if s.cfg.Port == implicitTLSPort {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: &tls.Config{ServerName: s.cfg.Host}}

		return tlsDialer.DialContext(ctx, "tcp", s.address())
	}

	return dialer.DialContext(ctx, "tcp", s.address())
}

func (s *SMTPSender) address() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// buildMessage renders a plain-text RFC 5322 message.
func buildMessage(from string, msg *service.MailMessage, now time.Time) []byte {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = strings.TrimSuffix(from[at+1:], ">")
	}

	return fmt.Appendf(nil,
		"Message-ID: <%s@%s>\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/plain; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		uuid.NewString(), domain,
		now.Format(time.RFC1123Z),
		strings.Join(msg.To, ", "),
		from,
		mime.QEncoding.Encode("utf-8", msg.Subject),
		msg.Body,
	)
}
