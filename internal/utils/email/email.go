package email

import (
	"context"
	"fmt"
	"net/smtp"
	"net/textproto"

	"github.com/Dan9191/cohort-tools/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
		send: func(e *email.Email, addr string, auth smtp.Auth) error {
			return e.Send(addr, auth)
		},
	}
}

func (s *Sender) welcomeMessage(to, name string) *email.Email {
	e := &email.Email{
		To:      []string{to},
		From:    s.cfg.SenderEmail,
		Subject: "Welcome to Cohort Tools",
		Headers: textproto.MIMEHeader{},
	}
	body := fmt.Sprintf("Hi %s,\n\n", name)
	body += fmt.Sprintf("Your account %s has been created.\n", to)
	body += "You can now log in and manage cohorts and students.\n"
	body += "\nBest regards,\nCohort Tools"
	e.Text = []byte(body)
	return e
}

// SendWelcome sends the signup confirmation to a new user
func (s *Sender) SendWelcome(ctx context.Context, to, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := s.welcomeMessage(to, name)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := s.send(e, addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
