package storage

import (
	"fmt"
	"net/smtp"
)

// SMTPSender delivers notification emails through a plain SMTP relay.
type SMTPSender struct {
	Host string
	Port string
	From string
	Auth smtp.Auth
}

func NewSMTPSender(host, port, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{Host: host, Port: port, From: from, Auth: auth}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		s.From, to, subject, body)
	addr := s.Host + ":" + s.Port
	if err := smtp.SendMail(addr, s.Auth, s.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
