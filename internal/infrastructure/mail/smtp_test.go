package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieplatform/movie-api/internal/core/ports"
)

type captured struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestMailer(cfg Config, sendErr error) (*SMTPMailer, *captured) {
	c := &captured{}
	m := NewSMTPMailer(cfg, zerolog.Nop())
	m.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		c.addr, c.from, c.to, c.msg = addr, from, to, string(msg)
		return sendErr
	}
	return m, c
}

func TestSMTPMailer_Send(t *testing.T) {
	m, c := newTestMailer(Config{Host: "smtp.example.com", Port: "587", User: "bot@example.com", Pass: "x"}, nil)

	err := m.Send(context.Background(), ports.MailMessage{To: "ann@example.com", Subject: "Hello", Text: "line1\nline2"})
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", c.addr)
	assert.Equal(t, "bot@example.com", c.from, "From defaults to the SMTP user")
	assert.Equal(t, []string{"ann@example.com"}, c.to)
	assert.Contains(t, c.msg, "Subject: Hello\r\n")
	assert.Contains(t, c.msg, "To: ann@example.com\r\n")
	assert.True(t, strings.HasSuffix(c.msg, "\r\n\r\nline1\r\nline2\r\n"), "body follows a blank line: %q", c.msg)
}

func TestSMTPMailer_RejectsHeaderInjection(t *testing.T) {
	m, c := newTestMailer(Config{Host: "h", Port: "25"}, nil)

	err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c\r\nBcc: evil@x.y", Subject: "s"})
	assert.Error(t, err)
	assert.Empty(t, c.addr, "nothing must be sent")
}

func TestSMTPMailer_Errors(t *testing.T) {
	m, _ := newTestMailer(Config{Host: "h", Port: "25"}, errors.New("535 auth failed"))
	err := m.Send(context.Background(), ports.MailMessage{To: "a@b.c", Subject: "s"})
	assert.ErrorContains(t, err, "535 auth failed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = m.Send(ctx, ports.MailMessage{To: "a@b.c", Subject: "s"})
	assert.ErrorIs(t, err, context.Canceled)
}
