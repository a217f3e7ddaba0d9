package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mindhaven/mindhaven/config"
)

// SendMail delivers a plain-text email via the configured SMTP relay.
func SendMail(to, subject, body string) error {
	cfg := config.Get()
	if cfg.SMTPHost == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUsername
	}

	var msg strings.Builder
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String()))
}

// SendVerificationCode emails a short-lived code for the given purpose.
func SendVerificationCode(to, purpose, code string) error {
	subject := "Your verification code"
	if purpose == "reset" {
		subject = "Your password reset code"
	}
	body := fmt.Sprintf("Your code is: %s\n\nIt expires in 10 minutes. If you did not request this, you can ignore this email.", code)
	return SendMail(to, subject, body)
}
