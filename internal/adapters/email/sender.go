package email

import (
	"context"
	"time"
)

// SendRequest carries one message for one recipient. The dispatcher fans out
// a request per recipient so every send resolves to its own outcome.
type SendRequest struct {
	To      string // recipient address
	From    string // sender address, e.g. "Sangha Events <events@example.org>"
	Subject string
	HTML    string // HTML body
	ReplyTo string // optional reply-to address
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // provider's message ID for tracking
	SentAt    time.Time // when the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
