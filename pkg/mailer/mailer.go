package mailer

import (
	"fmt"
	"net/smtp"
)

// Config holds SMTP connection details.
type Config struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// Sender sends plain-text mail. Services depend on this interface so tests
// can substitute a mock, and so a failed send can be detected and
// compensated (the password-reset token rollback).
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer is an SMTP implementation of Sender.
type Mailer struct {
	cfg Config
}

// New creates a Mailer from SMTP configuration.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a plain-text email through the configured SMTP relay.
func (m *Mailer) Send(to, subject, body string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/plain; charset=\"UTF-8\";\r\n\r\n%s",
		m.cfg.FromEmail,
		to,
		subject,
		body,
	)

	auth := smtp.PlainAuth(
		"",
		m.cfg.Username,
		m.cfg.Password,
		m.cfg.Host,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
