package notify

import "context"

// Mailer sends outbound notification email. Sending is best effort
// throughout the application: callers log failures and move on.
type Mailer interface {
	Send(ctx context.Context, to, toName, subject, body string) error
}

// NoopMailer discards all mail. Used when no email provider is configured.
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, to, toName, subject, body string) error {
	return nil
}
