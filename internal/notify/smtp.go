package notify

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// SMTPConfig holds mail transport settings. An empty Host disables sending.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPSender delivers messages over SMTP. Each Send dials, sends, and
// disconnects; order volume here is a few messages a day, not worth a held
// connection.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender returns a sender, or nil if cfg.Host is empty so callers can
// pass the nil straight to NewEmailNotifier and get no-op behavior.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Host == "" {
		return nil
	}
	return &SMTPSender{cfg: cfg}
}

// NewSMTPNotifier wires an EmailNotifier over SMTP. With an empty smtp.Host
// the notifier is a safe no-op; the nil *SMTPSender is kept out of the Sender
// interface so the notifier's nil check still works.
func NewSMTPNotifier(cfg Config, smtp SMTPConfig, log *zap.Logger) *EmailNotifier {
	var sender Sender
	if s := NewSMTPSender(smtp); s != nil {
		sender = s
	}
	return NewEmailNotifier(cfg, sender, log)
}

// Send transmits one plain-text message. The dial-and-send runs in a
// goroutine so the context deadline set by the order processor is honored
// even when the SMTP server hangs.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(m)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
