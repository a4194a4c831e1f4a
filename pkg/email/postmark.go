package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	client *postmark.Client
	config Config
}

// NewPostmarkSender creates a Postmark-backed sender.
// Both tokens are required for runtime operation; this enforces explicit
// configuration rather than silent failures in production.
func NewPostmarkSender(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" || !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.ReplyToEmail == "" || !emailRegex.MatchString(cfg.ReplyToEmail) {
		return nil, fmt.Errorf("%w: ReplyToEmail must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmarkSender creates a Postmark sender that panics on invalid
// config, failing fast during initialization rather than letting a broken
// service start.
func MustNewPostmarkSender(cfg Config) Sender {
	sender, err := NewPostmarkSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

// Send delivers the message through Postmark's transactional API.
// HTML messages get open and HTML link tracking for analytics; plain-text
// messages are sent with the text body only and no tracking, keeping the
// fallback path free of extras.
func (s *postmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	replyTo := s.config.ReplyToEmail
	if msg.ReplyTo != "" {
		replyTo = msg.ReplyTo
	}

	out := postmark.Email{
		From:    s.config.SenderEmail,
		ReplyTo: replyTo,
		To:      msg.To,
		Subject: msg.Subject,
		Tag:     msg.Tag,
	}
	if msg.IsPlainText() {
		out.TextBody = msg.BodyText
	} else {
		out.HTMLBody = msg.BodyHTML
		out.TextBody = msg.BodyText
		out.TrackOpens = true
		out.TrackLinks = "HtmlOnly"
	}

	resp, err := s.client.SendEmail(ctx, out)
	if err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrSendFailed,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
