// Package notify delivers submission confirmation messages. Delivery is
// best-effort by contract: a failed or dropped notification never fails the
// submission that triggered it.
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Message carries one confirmation to a recipient.
type Message struct {
	To        string // recipient email address
	RaterName string // name used in the greeting
	Role      string // rater role, for the message body
}

// Notifier delivers confirmation messages.
type Notifier interface {
	// Send delivers one message, honoring ctx for cancellation.
	Send(ctx context.Context, msg Message) error
}

// SendFunc is the transport seam; it matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier implements Notifier over SMTP. Credentials are injected via
// options; nothing is embedded.
type SMTPNotifier struct {
	host     string
	port     int
	username string
	password string
	from     string
	send     SendFunc
}

// NewSMTPNotifier creates an SMTP notifier with configuration options.
func NewSMTPNotifier(opts ...Option) *SMTPNotifier {
	n := &SMTPNotifier{
		port: 587,
		send: smtp.SendMail,
	}

	// Apply all options
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Enabled reports whether the notifier has a transport configured.
func (n *SMTPNotifier) Enabled() bool { return n.host != "" }

// Send delivers one confirmation message.
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	if !n.Enabled() {
		return ErrNotConfigured
	}
	if msg.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrSendFailed)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	var auth smtp.Auth
	if n.username != "" {
		auth = smtp.PlainAuth("", n.username, n.password, n.host)
	}

	addr := fmt.Sprintf("%s:%d", n.host, n.port)
	if err := n.send(addr, auth, n.from, []string{msg.To}, buildBody(n.from, msg)); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}
	return nil
}

// buildBody renders the confirmation email.
func buildBody(from string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	b.WriteString("Subject: 360 Assessment Confirmation\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", msg.RaterName)
	fmt.Fprintf(&b, "Thank you for completing your %s assessment. Your responses have been saved successfully.\r\n\r\n", msg.Role)
	b.WriteString("Best regards,\r\n360 Assessment System\r\n")
	return []byte(b.String())
}

// NoopNotifier discards messages. Used when no SMTP transport is configured.
type NoopNotifier struct{}

// Send discards the message.
func (NoopNotifier) Send(context.Context, Message) error { return nil }
