package notification

import "context"

// Notifier delivers a subject/body message to an address. Implementations
// must never be a precondition for the registration workflow: dispatch
// failures are reported to the caller for logging only.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Noop discards every message. Used when mail is unconfigured.
type Noop struct{}

// Send implements Notifier.
func (Noop) Send(context.Context, string, string, string) error {
	return nil
}
