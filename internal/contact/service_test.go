package contact_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousadiats/website/internal/contact"
	"github.com/ousadiats/website/internal/ledger"
	"github.com/ousadiats/website/pkg/email"
)

// fakeSender records every Send and fails the calls whose ordinal (1-based)
// appears in failOn.
type fakeSender struct {
	sent   []email.Message
	failOn map[int]error
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) error {
	f.sent = append(f.sent, msg)
	if err, ok := f.failOn[len(f.sent)]; ok {
		return err
	}
	return nil
}

// fakeLedger records appended entries in memory.
type fakeLedger struct {
	submissions  []ledger.SubmissionRecord
	mailFailures []ledger.MailFailure
	exceptions   []ledger.Exception
	failAll      error
}

func (f *fakeLedger) RecordSubmission(r ledger.SubmissionRecord) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.submissions = append(f.submissions, r)
	return nil
}

func (f *fakeLedger) RecordMailFailure(r ledger.MailFailure) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.mailFailures = append(f.mailFailures, r)
	return nil
}

func (f *fakeLedger) RecordException(r ledger.Exception) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.exceptions = append(f.exceptions, r)
	return nil
}

func newTestService(t *testing.T, sender *fakeSender, lg *fakeLedger) *contact.Service {
	t.Helper()
	cfg := contact.Config{
		CompanyName:     "Ousadia Tech Solutions",
		CompanyEmail:    "info@ousadiaconsulting.com",
		CompanyPhone:    "+27 69 535 2793",
		WebsiteURL:      "https://ousadiats.co.za",
		ReferencePrefix: "OTS",
	}
	composer, err := contact.NewComposer(cfg)
	require.NoError(t, err)
	return contact.NewService(cfg, composer, sender, lg, nil)
}

func TestService_Process_Success(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	lg := &fakeLedger{}
	svc := newTestService(t, sender, lg)

	res := svc.Process(context.Background(), submission("Jane", "jane@x.com", "Hi", "Test"))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.Success)
	assert.Equal(t, "Thank you! Your message has been sent successfully. We will get back to you within 24-48 hours. You should receive a confirmation email shortly.", res.Message)
	assert.Empty(t, res.Errors)

	// Notification to the company, then auto-reply to the submitter.
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "info@ousadiaconsulting.com", sender.sent[0].To)
	assert.Equal(t, "jane@x.com", sender.sent[0].ReplyTo)
	assert.Equal(t, "jane@x.com", sender.sent[1].To)

	// Exactly one ledger entry, no failure records.
	require.Len(t, lg.submissions, 1)
	assert.Equal(t, "Jane", lg.submissions[0].Name)
	assert.Equal(t, "203.0.113.5", lg.submissions[0].SourceIP)
	assert.Empty(t, lg.mailFailures)
	assert.Empty(t, lg.exceptions)
}

func TestService_Process_ValidationFailure(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	lg := &fakeLedger{}
	svc := newTestService(t, sender, lg)

	res := svc.Process(context.Background(), submission("", "bad", "", ""))

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.False(t, res.Success)
	assert.Equal(t, "Please fix the following errors:", res.Message)
	assert.Equal(t, []string{
		"Name is required",
		"Valid email is required",
		"Subject is required",
		"Message is required",
	}, res.Errors)

	// A rejected submission touches neither mail nor the ledger.
	assert.Empty(t, sender.sent)
	assert.Empty(t, lg.submissions)
	assert.Empty(t, lg.mailFailures)
	assert.Empty(t, lg.exceptions)
}

func TestService_Process_FallbackSuccess(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failOn: map[int]error{1: errors.New("smtp: 451 temporary failure")}}
	lg := &fakeLedger{}
	svc := newTestService(t, sender, lg)

	res := svc.Process(context.Background(), submission("Jane", "jane@x.com", "Hi", "Test"))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.Success)
	assert.Equal(t, "Thank you! Your message has been sent (plain text). We will get back to you within 24-48 hours.", res.Message)

	// HTML attempt, then the plain-text retry. No auto-reply on the
	// fallback path.
	require.Len(t, sender.sent, 2)
	assert.False(t, sender.sent[0].IsPlainText())
	assert.True(t, sender.sent[1].IsPlainText())
	assert.Equal(t, sender.sent[0].Subject, sender.sent[1].Subject)

	require.Len(t, lg.mailFailures, 1)
	assert.Equal(t, "Jane", lg.mailFailures[0].Name)
	assert.Contains(t, lg.mailFailures[0].Reason, "451")
	assert.Empty(t, lg.submissions)
	assert.Empty(t, lg.exceptions)
}

func TestService_Process_TotalDeliveryFailure(t *testing.T) {
	t.Parallel()

	sendErr := errors.New("smtp: connection refused")
	sender := &fakeSender{failOn: map[int]error{1: sendErr, 2: sendErr}}
	lg := &fakeLedger{}
	svc := newTestService(t, sender, lg)

	res := svc.Process(context.Background(), submission("Jane", "jane@x.com", "Hi", "Test"))

	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Sorry, there was an error sending your message.")
	assert.Contains(t, res.Message, "info@ousadiaconsulting.com")
	assert.Contains(t, res.Message, "+27 69 535 2793")

	require.Len(t, sender.sent, 2)
	require.Len(t, lg.mailFailures, 1)
	require.Len(t, lg.exceptions, 1)
	assert.Contains(t, lg.exceptions[0].Message, "connection refused")
	assert.Empty(t, lg.submissions)
}

func TestService_Process_AutoReplyFailureStillSucceeds(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{failOn: map[int]error{2: errors.New("recipient rejected")}}
	lg := &fakeLedger{}
	svc := newTestService(t, sender, lg)

	res := svc.Process(context.Background(), submission("Jane", "jane@x.com", "Hi", "Test"))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.Success)
	require.Len(t, sender.sent, 2)
	require.Len(t, lg.submissions, 1)
	assert.Empty(t, lg.mailFailures)
	assert.Empty(t, lg.exceptions)
}

func TestService_Process_LedgerFailureDoesNotChangeOutcome(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	lg := &fakeLedger{failAll: errors.New("disk full")}
	svc := newTestService(t, sender, lg)

	res := svc.Process(context.Background(), submission("Jane", "jane@x.com", "Hi", "Test"))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.Success)
}

func TestService_Process_LedgerFailureDuringFallback(t *testing.T) {
	t.Parallel()

	// A broken error log must not block the plain-text retry.
	sender := &fakeSender{failOn: map[int]error{1: errors.New("boom")}}
	lg := &fakeLedger{failAll: errors.New("disk full")}
	svc := newTestService(t, sender, lg)

	res := svc.Process(context.Background(), submission("Jane", "jane@x.com", "Hi", "Test"))

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, res.Success)
	require.Len(t, sender.sent, 2)
	assert.True(t, sender.sent[1].IsPlainText())
}
