package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"
)

// SMTPConfig captures the settings for the outgoing mail relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// ResetURL is the base URL of the password-reset page; the ticket is
	// appended as the token query parameter.
	ResetURL string
}

// SMTPMailer sends password-reset mail through an authenticated SMTP relay
// with STARTTLS.
type SMTPMailer struct {
	cfg SMTPConfig
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPasswordReset mails a single-use reset link to the account's address.
func (m *SMTPMailer) SendPasswordReset(_ context.Context, email, ticket string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.Username)
	fmt.Fprintf(&b, "To: %s\r\n", email)
	b.WriteString("Subject: Password Reset\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Reset your password: %s?token=%s\r\n", m.cfg.ResetURL, ticket)

	if err := smtp.SendMail(addr, auth, m.cfg.Username, []string{email}, []byte(b.String())); err != nil {
		return fmt.Errorf("send reset mail to %s: %w", email, err)
	}
	return nil
}

// LogMailer writes reset tickets to the log instead of sending mail. Used in
// development and tests where no relay is configured.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendPasswordReset(_ context.Context, email, ticket string) error {
	m.log.Info().
		Str("email", email).
		Str("ticket", ticket).
		Msg("password reset requested (mail relay disabled)")
	return nil
}
