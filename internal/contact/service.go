package contact

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ousadiats/website/internal/ledger"
	"github.com/ousadiats/website/pkg/email"
	"github.com/ousadiats/website/pkg/logger"
	"github.com/ousadiats/website/pkg/validator"
)

// User-facing messages for the four terminal outcomes.
const (
	msgValidationFailed = "Please fix the following errors:"
	msgSent             = "Thank you! Your message has been sent successfully. We will get back to you within 24-48 hours. You should receive a confirmation email shortly."
	msgSentPlainText    = "Thank you! Your message has been sent (plain text). We will get back to you within 24-48 hours."
)

// Result is the terminal outcome of processing one submission.
type Result struct {
	StatusCode int
	Success    bool
	Message    string
	Errors     []string
}

// Service runs the submission pipeline: validate, deliver the company
// notification (with a plain-text fallback), fire the auto-reply, and record
// the outcome in the ledger. Delivery attempts are strictly sequential; the
// only retry is the single built-in fallback.
type Service struct {
	cfg      Config
	composer *Composer
	sender   email.Sender
	ledger   ledger.Appender
	log      *slog.Logger
}

// NewService wires the pipeline. The sender is the single injected delivery
// dependency, so tests can fake transport behavior without a mail server.
func NewService(cfg Config, composer *Composer, sender email.Sender, appender ledger.Appender, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		composer: composer,
		sender:   sender,
		ledger:   appender,
		log:      log.With(logger.Component("contact")),
	}
}

// Process takes a submission through the pipeline and returns the terminal
// outcome. It never returns an error: every failure mode maps to a Result
// the HTTP layer can render directly.
func (s *Service) Process(ctx context.Context, sub Submission) Result {
	if err := Validate(sub); err != nil {
		errs := validator.ExtractValidationErrors(err)
		s.log.DebugContext(ctx, "submission rejected",
			logger.SubmissionID(sub.ID.String()),
			slog.Int("error_count", len(errs)),
		)
		return Result{
			StatusCode: http.StatusBadRequest,
			Success:    false,
			Message:    msgValidationFailed,
			Errors:     errs.Messages(),
		}
	}

	notification, err := s.composer.Notification(sub)
	if err != nil {
		return s.fail(ctx, sub, err, "contact.Composer.Notification")
	}

	if err := s.sender.Send(ctx, notification); err != nil {
		return s.deliverFallback(ctx, sub, notification, err)
	}

	s.sendAutoReply(ctx, sub)
	s.record(ctx, sub)

	s.log.InfoContext(ctx, "submission delivered", logger.SubmissionID(sub.ID.String()))
	return Result{
		StatusCode: http.StatusOK,
		Success:    true,
		Message:    msgSent,
	}
}

// deliverFallback handles a failed primary send: log the failure, then retry
// once as plain text. A fallback success still counts as delivered, but no
// ledger entry is written for it.
func (s *Service) deliverFallback(ctx context.Context, sub Submission, notification email.Message, sendErr error) Result {
	s.log.WarnContext(ctx, "primary delivery failed, attempting plain-text fallback",
		logger.SubmissionID(sub.ID.String()),
		logger.Error(sendErr),
	)

	if err := s.ledger.RecordMailFailure(ledger.MailFailure{
		Timestamp: sub.ReceivedAt,
		Name:      sub.Name,
		Email:     sub.Email,
		Reason:    sendErr.Error(),
	}); err != nil {
		// Best-effort only; a broken error log must not block the fallback.
		s.log.WarnContext(ctx, "failed to record mail failure", logger.Error(err))
	}

	fallback := s.composer.Fallback(notification)
	if err := s.sender.Send(ctx, fallback); err != nil {
		return s.fail(ctx, sub, fmt.Errorf("the mail server failed to send the message: %w", err), "contact.Service.deliverFallback")
	}

	s.log.InfoContext(ctx, "submission delivered via plain-text fallback",
		logger.SubmissionID(sub.ID.String()))
	return Result{
		StatusCode: http.StatusOK,
		Success:    true,
		Message:    msgSentPlainText,
	}
}

// sendAutoReply fires the confirmation email to the submitter. Failures are
// logged and otherwise ignored: the auto-reply is a courtesy, not part of
// the delivery contract.
func (s *Service) sendAutoReply(ctx context.Context, sub Submission) {
	reply, err := s.composer.AutoReply(sub)
	if err != nil {
		s.log.WarnContext(ctx, "failed to compose auto-reply",
			logger.SubmissionID(sub.ID.String()), logger.Error(err))
		return
	}
	if err := s.sender.Send(ctx, reply); err != nil {
		s.log.WarnContext(ctx, "failed to send auto-reply",
			logger.SubmissionID(sub.ID.String()), logger.Error(err))
	}
}

// record appends the submission to the activity log and CSV. Persistence is
// best-effort; failures are logged and swallowed.
func (s *Service) record(ctx context.Context, sub Submission) {
	err := s.ledger.RecordSubmission(ledger.SubmissionRecord{
		Timestamp: sub.ReceivedAt,
		Name:      sub.Name,
		Email:     sub.Email,
		Phone:     sub.Phone,
		Subject:   sub.Subject,
		Message:   sub.Message,
		SourceIP:  sub.SourceIP,
		UserAgent: sub.UserAgent,
	})
	if err != nil {
		s.log.WarnContext(ctx, "failed to record submission",
			logger.SubmissionID(sub.ID.String()), logger.Error(err))
	}
}

// fail is the terminal failure path: record the exception and hand the
// submitter a direct way to reach the company.
func (s *Service) fail(ctx context.Context, sub Submission, cause error, origin string) Result {
	s.log.ErrorContext(ctx, "submission processing failed",
		logger.SubmissionID(sub.ID.String()),
		slog.String("origin", origin),
		logger.Error(cause),
	)

	if err := s.ledger.RecordException(ledger.Exception{
		Timestamp: sub.ReceivedAt,
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   cause.Error(),
		Origin:    origin,
	}); err != nil {
		s.log.WarnContext(ctx, "failed to record exception", logger.Error(err))
	}

	return Result{
		StatusCode: http.StatusInternalServerError,
		Success:    false,
		Message: fmt.Sprintf(
			"Sorry, there was an error sending your message. Please try again or contact us directly at %s or call us at %s",
			s.cfg.CompanyEmail, s.cfg.CompanyPhone,
		),
	}
}
