// Package mail delivers transactional email over SMTP.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/movieplatform/movie-api/internal/core/ports"
)

// Config holds the SMTP relay settings.
type Config struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends plain-text mail through an authenticated relay.
type SMTPMailer struct {
	cfg  Config
	auth smtp.Auth
	send sendFunc
	log  zerolog.Logger
	now  func() time.Time
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) *SMTPMailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	}
	return &SMTPMailer{cfg: cfg, auth: auth, send: smtp.SendMail, log: log, now: time.Now}
}

// Send delivers msg. The relay call itself is not cancellable; ctx is only
// checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	if strings.ContainsAny(msg.To, "\r\n") || strings.ContainsAny(msg.Subject, "\r\n") {
		return fmt.Errorf("send mail: header contains a line break")
	}

	addr := net.JoinHostPort(m.cfg.Host, m.cfg.Port)
	if err := m.send(addr, m.auth, m.cfg.From, []string{msg.To}, m.build(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}

	m.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}

func (m *SMTPMailer) build(msg ports.MailMessage) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", m.now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Text, "\n", "\r\n"))
	b.WriteString("\r\n")
	return []byte(b.String())
}
