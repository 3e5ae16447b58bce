// Package mail is the outbound email transport. Delivery goes through
// Resend; with no API key configured the mailer only logs, which is the mode
// local development and the test suite run in.
package mail

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"github.com/user/blogapi-go/config"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Text    string
}

// Mailer sends a single message synchronously.
type Mailer interface {
	Send(msg Message) error
}

// NewMailer builds the configured Mailer: Resend when an API key is present,
// the log-only mailer otherwise.
func NewMailer(cfg *config.MailConfig) Mailer {
	if cfg.APIKey == "" {
		log.Println("MAIL_API_KEY not set, outbound mail will only be logged")
		return &LogMailer{}
	}
	return &ResendMailer{
		client: resend.NewClient(cfg.APIKey),
		sender: cfg.Sender,
	}
}

// ResendMailer delivers messages through the Resend API.
type ResendMailer struct {
	client *resend.Client
	sender string
}

// Send delivers msg through Resend.
func (m *ResendMailer) Send(msg Message) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
	}
	resp, err := m.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	log.Printf("mail sent to %s (id %s)", msg.To, resp.Id)
	return nil
}

// LogMailer writes messages to the log instead of delivering them.
type LogMailer struct{}

// Send logs the message and reports success.
func (m *LogMailer) Send(msg Message) error {
	log.Printf("mail (log only) to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
