package mail

import (
	"context"
	"errors"
)

var (
	// ErrInvalidConfig is returned when a sender is built with missing settings.
	ErrInvalidConfig = errors.New("mail: invalid configuration")
	// ErrNoRecipients is returned when a message has no recipients.
	ErrNoRecipients = errors.New("mail: message has no recipients")
	// ErrFailedToSend is returned when the transport rejects a message.
	ErrFailedToSend = errors.New("mail: failed to send message")
)

// Message is one outbound email. A single message may address many
// recipients in one send operation.
type Message struct {
	To      []string
	Subject string
	Body    string
	Tag     string
}

// Validate checks the message has everything the transport needs.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return ErrNoRecipients
	}
	return nil
}

// Sender is the outbound email capability. Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
