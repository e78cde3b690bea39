package mailer

import (
	"fmt"

	"storefront/pkg/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender is what the checkout flow depends on. Email failures are
// best-effort for callers, so implementations must not panic.
type Sender interface {
	Send(to, subject, body string) error
}

// Mailer sends transactional mail over SMTP
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) *Mailer {
	dialer := gomail.NewDialer(config.Host, config.Port, config.User, config.Password)

	return &Mailer{
		dialer: dialer,
		from:   config.From,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// Send delivers a single plain-text email
func (m *Mailer) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.String("subject", subject),
		)
		return fmt.Errorf("send email %q: %w", subject, err)
	}

	return nil
}
