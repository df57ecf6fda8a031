package email

import (
	"fmt"

	"contacts-api/internal/config"

	"gopkg.in/gomail.v2"
)

// Sender delivers a single message. Implementations must be safe for use from
// the dispatcher worker goroutine.
type Sender interface {
	SendConfirmation(to, username, confirmURL string) error
}

// SMTPSender sends confirmation mail over SMTP.
type SMTPSender struct {
	cfg *config.SMTPConfig
}

func NewSMTPSender(cfg *config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) SendConfirmation(to, username, confirmURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Confirm email")
	m.SetBody("text/html", confirmationBody(username, confirmURL))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	return nil
}

func confirmationBody(username, confirmURL string) string {
	return fmt.Sprintf(`<html><body>
<p>Hello %s,</p>
<p>Please confirm your email address by following the link below:</p>
<p><a href="%s">Confirm email</a></p>
<p>If you did not register, ignore this message.</p>
</body></html>`, username, confirmURL)
}
