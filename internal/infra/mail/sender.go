package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/caioaot/atelier-backend/internal/config"
	"github.com/caioaot/atelier-backend/internal/infra/queue"
)

//go:embed templates/*.html
var templates embed.FS

type Sender struct {
	cfg  config.SMTP
	tmpl *template.Template
}

func NewSender(cfg config.SMTP) (*Sender, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	return &Sender{cfg: cfg, tmpl: tmpl}, nil
}

// SendContactNotification delivers a new contact submission to the site
// admin inbox.
func (s *Sender) SendContactNotification(n queue.ContactNotification) error {
	body, err := s.render("contact_notification.html", n)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("[%s] New contact: %s", n.Priority, n.Subject)
	return s.send(s.cfg.AdminEmail, subject, body)
}

// SendContactAutoReply acknowledges the submission to the person who wrote.
func (s *Sender) SendContactAutoReply(n queue.ContactNotification) error {
	body, err := s.render("contact_autoreply.html", n)
	if err != nil {
		return err
	}

	return s.send(n.Email, "We received your message", body)
}

func (s *Sender) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func (s *Sender) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
