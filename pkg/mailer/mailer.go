// Package mailer sends the transactional account emails over SMTP.
package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config carries the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	From     string
	Password string
}

// Mailer sends verification and password-recovery emails.
type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendVerification emails the signup confirmation token.
func (m *Mailer) SendVerification(email, token string) error {
	body := fmt.Sprintf("Your rentfolio verification token is:\n%s", token)
	return m.send(email, "Verify your rentfolio account", body)
}

// SendPasswordReset emails the password recovery token.
func (m *Mailer) SendPasswordReset(email, token string) error {
	body := fmt.Sprintf("Your rentfolio password recovery token is:\n%s", token)
	return m.send(email, "Reset your rentfolio password", body)
}

func (m *Mailer) send(to, subject, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.cfg.From)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.From, m.cfg.Password)
	return dialer.DialAndSend(message)
}
