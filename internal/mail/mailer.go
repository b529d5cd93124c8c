// Package mail relays contact-form messages over SMTP.
package mail

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"portfolio/internal/config"

	"gopkg.in/gomail.v2"
)

// Message is one contact-form submission ready to relay.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

// Mailer sends a contact message to the configured destination.
type Mailer interface {
	Send(msg Message) error
}

// SMTPMailer relays through a plain SMTP endpoint. Sent from the SMTP
// account itself with Reply-To pointing at the visitor, so replies work
// without the relay being able to spoof the visitor's address.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	to   string
}

func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTPPort, err)
	}

	to := cfg.ContactEmail
	if to == "" {
		to = cfg.SMTPUser
	}

	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: port,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		to:   to,
	}, nil
}

func (m *SMTPMailer) Send(msg Message) error {
	mail := gomail.NewMessage()
	mail.SetAddressHeader("From", m.user, "Portfolio Contact")
	mail.SetHeader("To", m.to)
	mail.SetHeader("Reply-To", msg.Email)
	mail.SetHeader("Subject", "Portfolio Contact: "+msg.Subject)
	mail.SetBody("text/plain", plainBody(msg))
	mail.AddAlternative("text/html", htmlBody(msg))

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(mail); err != nil {
		return fmt.Errorf("failed to relay contact message: %w", err)
	}
	return nil
}

func plainBody(msg Message) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\n\nMessage:\n%s\n",
		msg.Name, msg.Email, msg.Subject, msg.Body)
}

func htmlBody(msg Message) string {
	body := strings.ReplaceAll(html.EscapeString(msg.Body), "\n", "<br>")
	return fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>New portfolio message</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
  <p><strong>Subject:</strong> %s</p>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 5px;">
    <p>%s</p>
  </div>
</div>`,
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Subject),
		body,
	)
}
