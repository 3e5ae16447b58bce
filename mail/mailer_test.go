package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blogapi-go/config"
)

func TestNewMailerWithoutKeyLogsOnly(t *testing.T) {
	mailer := NewMailer(&config.MailConfig{APIKey: "", Sender: "hello@example.com"})

	_, ok := mailer.(*LogMailer)
	require.True(t, ok)

	// A log-only send always succeeds.
	assert.NoError(t, mailer.Send(Message{To: "x@example.com", Subject: "s", Text: "t"}))
}

func TestNewMailerWithKeyUsesResend(t *testing.T) {
	mailer := NewMailer(&config.MailConfig{APIKey: "re_test", Sender: "hello@example.com"})

	resendMailer, ok := mailer.(*ResendMailer)
	require.True(t, ok)
	assert.Equal(t, "hello@example.com", resendMailer.sender)
}

func TestWelcomeMessage(t *testing.T) {
	msg := WelcomeMessage("Anthony", "anthony@example.com")

	assert.Equal(t, "anthony@example.com", msg.To)
	assert.Equal(t, "Welcome to our platform, Anthony!", msg.Subject)
	assert.Contains(t, msg.Text, "Hi Anthony,")
	assert.Contains(t, msg.Text, "Welcome aboard!")
}
