// Package mailer delivers plain-text reports over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds the SMTP connection and sender identity.
type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Sender   string `json:"sender"`
	Password string `json:"password"`
}

// SetDefaults applies the standard submission port.
func (c *Config) SetDefaults() {
	if c.Port == 0 {
		c.Port = 587
	}
}

// Enabled reports whether a mailer can be constructed from the config.
func (c Config) Enabled() bool { return c.Host != "" && c.Sender != "" }

// Mailer sends UTF-8 plain-text mail with STARTTLS and plain auth.
type Mailer struct {
	cfg Config
}

// New creates a Mailer from the config.
func New(cfg Config) *Mailer {
	cfg.SetDefaults()
	return &Mailer{cfg: cfg}
}

// Send delivers one message to the recipient.
func (m *Mailer) Send(recipient, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Sender, m.cfg.Password, m.cfg.Host)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.Sender)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
