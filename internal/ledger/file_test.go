package ledger_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ousadiats/website/internal/ledger"
)

func newLedger(t *testing.T) (*ledger.FileLedger, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := ledger.New(ledger.Config{
		Dir:          dir,
		ActivityFile: "contact_submissions.log",
		CSVFile:      "contact_submissions.csv",
		MailErrFile:  "mail_errors.log",
		ErrorFile:    "contact_errors.log",
	})
	require.NoError(t, err)
	return l, dir
}

func sampleRecord() ledger.SubmissionRecord {
	return ledger.SubmissionRecord{
		Timestamp: time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC),
		Name:      "Jane",
		Email:     "jane@x.com",
		Phone:     "+27 69 000 0000",
		Subject:   "Hi",
		Message:   "Test",
		SourceIP:  "203.0.113.5",
		UserAgent: "Mozilla/5.0",
	}
}

func TestRecordSubmission_ActivityLine(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	require.NoError(t, l.RecordSubmission(sampleRecord()))

	data, err := os.ReadFile(filepath.Join(dir, "contact_submissions.log"))
	require.NoError(t, err)

	line := string(data)
	assert.Equal(t,
		"[2026-08-28 10:30:00] CONTACT_FORM - Name: Jane | Email: jane@x.com | Phone: +27 69 000 0000 | Subject: Hi | IP: 203.0.113.5 | User Agent: Mozilla/5.0\n",
		line,
	)
}

func TestRecordSubmission_ActivityDefaults(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	rec := sampleRecord()
	rec.Phone = ""
	rec.SourceIP = ""
	rec.UserAgent = ""
	require.NoError(t, l.RecordSubmission(rec))

	data, err := os.ReadFile(filepath.Join(dir, "contact_submissions.log"))
	require.NoError(t, err)

	assert.Contains(t, string(data), "Phone: Not provided")
	assert.Contains(t, string(data), "IP: Unknown")
	assert.Contains(t, string(data), "User Agent: Unknown")
}

func TestRecordSubmission_TruncatesLogFields(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	rec := sampleRecord()
	rec.Name = strings.Repeat("n", 80)
	rec.Subject = strings.Repeat("s", 150)
	rec.UserAgent = strings.Repeat("u", 300)
	require.NoError(t, l.RecordSubmission(rec))

	data, err := os.ReadFile(filepath.Join(dir, "contact_submissions.log"))
	require.NoError(t, err)

	line := string(data)
	assert.Contains(t, line, "Name: "+strings.Repeat("n", 50)+" |")
	assert.Contains(t, line, "Subject: "+strings.Repeat("s", 100)+" |")
	assert.Contains(t, line, "User Agent: "+strings.Repeat("u", 200)+"\n")
}

func TestRecordSubmission_FlattensMultilineInput(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	rec := sampleRecord()
	rec.Name = "Jane\nDoe"
	rec.Subject = "line1\r\nline2"
	require.NoError(t, l.RecordSubmission(rec))

	data, err := os.ReadFile(filepath.Join(dir, "contact_submissions.log"))
	require.NoError(t, err)

	// One line per submission, no injected breaks.
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Name: Jane Doe")
	assert.Contains(t, lines[0], "Subject: line1 line2")
}

func TestRecordSubmission_CSVHeaderWrittenOnce(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, l.RecordSubmission(sampleRecord()))
	}

	f, err := os.Open(filepath.Join(dir, "contact_submissions.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"Timestamp", "Name", "Email", "Phone", "Subject", "Message"}, rows[0])
	for _, row := range rows[1:] {
		assert.Equal(t, []string{"2026-08-28 10:30:00", "Jane", "jane@x.com", "+27 69 000 0000", "Hi", "Test"}, row)
	}
}

func TestRecordSubmission_CSVEscapesQuotesAndCommas(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	rec := sampleRecord()
	rec.Subject = `He said "hello", twice`
	rec.Message = "multi\nline"
	require.NoError(t, l.RecordSubmission(rec))

	f, err := os.Open(filepath.Join(dir, "contact_submissions.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, `He said "hello", twice`, rows[1][4])
	assert.Equal(t, "multi\nline", rows[1][5])
}

func TestRecordSubmission_ConcurrentAppends(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.RecordSubmission(sampleRecord()))
		}()
	}
	wg.Wait()

	f, err := os.Open(filepath.Join(dir, "contact_submissions.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// Exactly one header plus n rows, no torn writes.
	assert.Len(t, rows, n+1)

	data, err := os.ReadFile(filepath.Join(dir, "contact_submissions.log"))
	require.NoError(t, err)
	assert.Equal(t, n, strings.Count(string(data), "CONTACT_FORM"))
}

func TestRecordMailFailure(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	err := l.RecordMailFailure(ledger.MailFailure{
		Timestamp: time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC),
		Name:      "Jane",
		Email:     "jane@x.com",
		Reason:    "postmark error: 406 - inactive recipient",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "mail_errors.log"))
	require.NoError(t, err)
	assert.Equal(t,
		"[2026-08-28 11:00:00] MAIL_FAILURE - Name: Jane | Email: jane@x.com | Error: postmark error: 406 - inactive recipient\n",
		string(data),
	)
}

func TestRecordException(t *testing.T) {
	t.Parallel()

	l, dir := newLedger(t)
	err := l.RecordException(ledger.Exception{
		Timestamp: time.Date(2026, 8, 28, 11, 5, 0, 0, time.UTC),
		Name:      "Jane",
		Email:     "jane@x.com",
		Message:   "the mail server failed to send the message",
		Origin:    "contact.Service.Process",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "contact_errors.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "EXCEPTION - Name: Jane | Email: jane@x.com")
	assert.Contains(t, string(data), "Origin: contact.Service.Process")
}

func TestNew_CreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := ledger.New(ledger.Config{
		Dir:          dir,
		ActivityFile: "a.log",
		CSVFile:      "a.csv",
		MailErrFile:  "m.log",
		ErrorFile:    "e.log",
	})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
