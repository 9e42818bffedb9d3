package alerts

import (
	"errors"
	"fmt"
	"net/smtp"
)

type EmailService struct {
	host     string
	port     int
	sender   string
	password string
	receiver string
}

func NewEmailService(host string, port int, sender, password, receiver string) *EmailService {
	return &EmailService{
		host:     host,
		port:     port,
		sender:   sender,
		password: password,
		receiver: receiver,
	}
}

func (s *EmailService) Configured() bool {
	return s.sender != "" && s.password != "" && s.receiver != ""
}

// Send delivers a plain-text email through the configured SMTP relay
func (s *EmailService) Send(subject, body string) error {
	if !s.Configured() {
		return errors.New("missing email credentials")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.sender, s.receiver, subject, body)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.sender, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.sender, []string{s.receiver}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
