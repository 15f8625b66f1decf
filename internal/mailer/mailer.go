// Package mailer sends outreach email over SMTP and renders template
// placeholders against candidate records.
package mailer

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var ErrNotConfigured = errors.New("smtp server credentials are not configured")

type Mailer struct {
	host     string
	port     int
	username string
	password string
}

func New(host string, port int, username, password string) *Mailer {
	return &Mailer{host: host, port: port, username: username, password: password}
}

func (m *Mailer) Enabled() bool {
	return m.host != "" && m.username != "" && m.password != ""
}

// Send delivers one plain-text message. The sender is the configured SMTP
// username.
func (m *Mailer) Send(recipient, subject, body string) error {
	if !m.Enabled() {
		return ErrNotConfigured
	}

	msg := strings.Join([]string{
		"From: " + m.username,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err := smtp.SendMail(addr, auth, m.username, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipient, err)
	}
	return nil
}

// Render substitutes the outreach placeholders in a template string.
// Supported placeholders are {{candidate_name}} and {{job_title}}.
func Render(template, candidateName, jobTitle string) string {
	if jobTitle == "" {
		jobTitle = "the position"
	}
	out := strings.ReplaceAll(template, "{{candidate_name}}", candidateName)
	out = strings.ReplaceAll(out, "{{job_title}}", jobTitle)
	return out
}
