package mail

import (
	"bytes"
	"fmt"
	"text/template"
)

var welcomeTemplate = template.Must(template.New("welcome").Parse(
	`Hi {{.Name}},

Welcome aboard! Your account is ready: log in with your email address to
start writing posts.

If you did not sign up, you can safely ignore this email.
`))

// WelcomeMessage renders the welcome email for a newly registered user.
func WelcomeMessage(name, email string) Message {
	var body bytes.Buffer
	// The template only references .Name; execution cannot fail on it.
	_ = welcomeTemplate.Execute(&body, struct{ Name string }{Name: name})

	return Message{
		To:      email,
		Subject: fmt.Sprintf("Welcome to our platform, %s!", name),
		Text:    body.String(),
	}
}
