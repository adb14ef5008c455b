package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/agent-management/internal/config"
)

// SMTPTransport dispatches messages through a plain SMTP relay. The
// net/smtp client has no context support; cancellation stops at the
// dialer, which matches the service's no-cancellation contract.
type SMTPTransport struct {
	cfg    config.MailConfig
	logger *zap.Logger
}

// NewSMTPTransport builds a transport from SMTP settings.
func NewSMTPTransport(cfg config.MailConfig, logger *zap.Logger) *SMTPTransport {
	return &SMTPTransport{cfg: cfg, logger: logger}
}

// Send dispatches a single message from the employee to the client.
func (t *SMTPTransport) Send(_ context.Context, from, to, subject, body string) error {
	addr := net.JoinHostPort(t.cfg.Host, strconv.Itoa(t.cfg.Port))

	envelopeFrom := from
	if t.cfg.From != "" {
		envelopeFrom = t.cfg.From
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if t.cfg.Username != "" && t.cfg.Password != "" {
		auth = smtp.PlainAuth("", t.cfg.Username, t.cfg.Password, t.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, envelopeFrom, []string{to}, []byte(msg.String())); err != nil {
		return err
	}

	t.logger.Info("email dispatched",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}
