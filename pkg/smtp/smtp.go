package smtp

import (
	"errors"
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

var ErrNotConfigured = errors.New("smtp mailer is not configured")

type ItfSmtp interface {
	SendMail(to string, subject string, body string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
	addr string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	auth := smtpPkg.PlainAuth("", mail, password, host)

	return &smtp{auth: auth, mail: mail, addr: fmt.Sprintf("%s:%s", host, port)}
}

func (s *smtp) SendMail(to string, subject string, body string) error {
	if s.mail == "" || to == "" {
		return ErrNotConfigured
	}

	message := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.mail, to, subject, body))

	return smtpPkg.SendMail(s.addr, s.auth, s.mail, []string{to}, message)
}
