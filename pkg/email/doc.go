// Package email provides a transport-agnostic interface for sending
// transactional mail, with Postmark, SMTP, and file-based development
// implementations.
//
// Everything revolves around the Sender interface, so transports can be
// swapped (or faked in tests) without touching application code:
//
//	sender := email.MustNewPostmarkSender(cfg)
//	err := sender.Send(ctx, email.Message{
//		To:       "user@example.com",
//		Subject:  "Hello",
//		BodyHTML: html,
//	})
//
// A Message with only BodyText set is delivered as plain text with minimal
// headers; this is the shape used for degraded, fallback delivery when the
// full HTML send has failed.
//
// Sentinel errors (ErrInvalidConfig, ErrInvalidMessage, ErrSendFailed) are
// joined with the transport's underlying error and checked via errors.Is.
package email
