package domain

import "context"

// Mailer sends a single email. Implementations may use SES or a no-op.
type Mailer interface {
	Send(to, subject, html, text string) error
}

// WelcomeEmailData is the data for the email sent to an account created by
// an event owner through the add-participant flow.
type WelcomeEmailData struct {
	Email     string
	FirstName string
	EventName string
}

// EmailTemplateRenderer renders a named email template into subject, html,
// and text bodies.
type EmailTemplateRenderer interface {
	Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error)
}

// EmailService renders and sends application emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
}
