package mailer

import (
	"fmt"
	"log/slog"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP configuration
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends transactional email over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *slog.Logger
}

// New creates a new Mailer. The connection is dialed lazily on first send.
func New(config *Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		from:   config.From,
		logger: logger,
	}
}

// Send delivers a plain-text email to a single recipient
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send email",
			slog.String("to", to),
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}
