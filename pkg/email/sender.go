package email

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Sender delivers a single message. Implementations are synchronous: Send
// returns only once the transport has accepted or rejected the message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message represents one outbound email. At least one of BodyHTML and
// BodyText must be set; a message carrying only BodyText is delivered as
// plain text with minimal headers.
type Message struct {
	To       string // recipient address, required
	ReplyTo  string // optional, overrides the configured reply-to
	Subject  string // required
	BodyHTML string // HTML body
	BodyText string // plain-text body
	Tag      string // optional, for provider-side analytics
}

// emailRegex is a simple pattern for validating addresses before handing
// them to a transport.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate checks that the message can be delivered.
func (m Message) Validate() error {
	if strings.TrimSpace(m.To) == "" {
		return fmt.Errorf("%w: To is required", ErrInvalidMessage)
	}
	if !emailRegex.MatchString(m.To) {
		return fmt.Errorf("%w: To must be a valid email address", ErrInvalidMessage)
	}
	if m.ReplyTo != "" && !emailRegex.MatchString(m.ReplyTo) {
		return fmt.Errorf("%w: ReplyTo must be a valid email address", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("%w: Subject is required", ErrInvalidMessage)
	}
	if strings.TrimSpace(m.BodyHTML) == "" && strings.TrimSpace(m.BodyText) == "" {
		return fmt.Errorf("%w: message must have an HTML or plain-text body", ErrInvalidMessage)
	}
	return nil
}

// IsPlainText reports whether the message carries only a plain-text body.
func (m Message) IsPlainText() bool {
	return strings.TrimSpace(m.BodyHTML) == "" && strings.TrimSpace(m.BodyText) != ""
}
