// Package notify delivers submission confirmation messages.
package notify

// Option applies a configuration option to the SMTPNotifier.
type Option func(*SMTPNotifier)

// WithHost sets the SMTP server host.
func WithHost(host string) Option {
	return func(n *SMTPNotifier) {
		n.host = host
	}
}

// WithPort sets the SMTP server port.
func WithPort(port int) Option {
	return func(n *SMTPNotifier) {
		if port > 0 {
			n.port = port
		}
	}
}

// WithCredentials sets the SMTP authentication credentials.
func WithCredentials(username, password string) Option {
	return func(n *SMTPNotifier) {
		n.username = username
		n.password = password
	}
}

// WithFrom sets the sender address.
func WithFrom(from string) Option {
	return func(n *SMTPNotifier) {
		if from != "" {
			n.from = from
		}
	}
}

// WithSendFunc replaces the SMTP transport. Tests use this to capture
// outgoing messages.
func WithSendFunc(send SendFunc) Option {
	return func(n *SMTPNotifier) {
		if send != nil {
			n.send = send
		}
	}
}
