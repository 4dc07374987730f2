package notify

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// Sender envío de correos (reemplazable en tests).
type Sender interface {
	Send(to, subject, body string) error
}

// MailerConfig datos SMTP.
type MailerConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Mailer envía correos por SMTP con jordan-wright/email.
type Mailer struct {
	cfg  MailerConfig
	addr string
}

// NewMailer construye el mailer. From por defecto es el usuario SMTP.
func NewMailer(cfg MailerConfig) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{cfg: cfg, addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)}
}

// Send envía un correo de texto plano.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.cfg.From
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if err := e.Send(m.addr, auth); err != nil {
		return fmt.Errorf("mailer: enviar a %s: %w", to, err)
	}
	return nil
}
