package mail

import (
	"context"
	"errors"
	"fmt"

	"brytashop-be/internal/logger"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrNotConfigured is returned by Send when production runs without MAIL_HOST.
var ErrNotConfigured = errors.New("mail transport not configured")

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailer struct {
	dialer dialer
	from   string
}

// NewSMTPMailer returns an SMTP transport. Without a host it falls back to a
// log-only mailer outside production and to a failing mailer in production.
func NewSMTPMailer(host string, port int, username, password, from string, production bool) Mailer {
	if host == "" {
		if production {
			logger.L().Error("MAIL_HOST is empty, emails will not be sent")
			return disabledMailer{}
		}
		logger.L().Warn("MAIL_HOST is empty, emails will only be logged")
		return &logMailer{from: from}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log := logger.FromCtx(ctx).With(
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)

	if err := m.dialer.DialAndSend(m.build(msg)); err != nil {
		log.Error("failed to send email", zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}

	log.Info("email sent")
	return nil
}

func (m *smtpMailer) build(msg Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)
	return gm
}

type logMailer struct {
	from string
}

// Send logs the envelope only. Bodies carry reset tokens.
func (m *logMailer) Send(ctx context.Context, msg Message) error {
	logger.FromCtx(ctx).Info("email (not sent, no transport configured)",
		zap.String("from", m.from),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)),
	)
	return nil
}

type disabledMailer struct{}

func (disabledMailer) Send(ctx context.Context, msg Message) error {
	logger.FromCtx(ctx).Error("email dropped", zap.String("subject", msg.Subject), zap.Error(ErrNotConfigured))
	return ErrNotConfigured
}

// MakeANiceEmail wraps text in the shop's email layout.
func MakeANiceEmail(text string) string {
	return fmt.Sprintf(`
  <div className="email" style="
    border: 1px solid black;
    padding: 20px;
    font-family: sans-serif;
    line-height: 2;
    font-size: 20px;
  ">
    <h2>Hello There!</h2>
    <p>%s</p>
    <p>The Brytashop team</p>
  </div>
`, text)
}
