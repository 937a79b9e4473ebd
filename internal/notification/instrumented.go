package notification

import "context"

// Instrumented wraps a Notifier and reports each dispatch outcome.
type Instrumented struct {
	next    Notifier
	observe func(success bool)
}

// NewInstrumented decorates the given notifier. A nil observer is ignored.
func NewInstrumented(next Notifier, observe func(success bool)) *Instrumented {
	return &Instrumented{next: next, observe: observe}
}

// Send implements Notifier.
func (n *Instrumented) Send(ctx context.Context, to, subject, body string) error {
	err := n.next.Send(ctx, to, subject, body)
	if n.observe != nil {
		n.observe(err == nil)
	}
	return err
}
