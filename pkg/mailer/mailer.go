package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer sends plain-text mail. Delivery is best effort; callers that must not
// fail on mail errors dispatch through a goroutine and drop the result.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// NewSMTPMailer builds a Mailer from SMTP_* environment variables.
func NewSMTPMailer() Mailer {
	host := valueOrDefault("SMTP_HOST", "localhost")
	port := valueOrDefault("SMTP_PORT", "25")
	from := valueOrDefault("SMTP_FROM", "noreply@gamehub.local")

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
	}

	return &smtpMailer{host: host, port: port, from: from, auth: auth}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body)
	if err := smtp.SendMail(m.host+":"+m.port, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

type logMailer struct{}

// NewLogMailer returns a Mailer that only logs. Used in development when no
// SMTP host is configured.
func NewLogMailer() Mailer {
	return logMailer{}
}

func (logMailer) Send(to, subject, body string) error {
	log.Printf("[mail] to=%s subject=%q", to, subject)
	return nil
}

func valueOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
