package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/ousadiats/website/pkg/sanitizer"
)

// Truncation limits for activity-log fields. Long values are cut rather than
// rejected; the CSV row keeps the full text.
const (
	maxLogName      = 50
	maxLogSubject   = 100
	maxLogUserAgent = 200
)

// csvHeader is written exactly once, when the CSV file is first created.
var csvHeader = []string{"Timestamp", "Name", "Email", "Phone", "Subject", "Message"}

const timestampLayout = "2006-01-02 15:04:05"

// FileLedger is an Appender backed by append-only files. Every append holds
// an exclusive advisory lock on the target file for the duration of the
// write, so concurrent requests never interleave partial lines.
type FileLedger struct {
	activityPath string
	csvPath      string
	mailErrPath  string
	errorPath    string
}

// New creates a FileLedger, creating the data directory if needed.
func New(cfg Config) (*FileLedger, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("ledger: create dir: %w", err)
	}

	return &FileLedger{
		activityPath: filepath.Join(cfg.Dir, cfg.ActivityFile),
		csvPath:      filepath.Join(cfg.Dir, cfg.CSVFile),
		mailErrPath:  filepath.Join(cfg.Dir, cfg.MailErrFile),
		errorPath:    filepath.Join(cfg.Dir, cfg.ErrorFile),
	}, nil
}

// RecordSubmission appends the activity-log line and the CSV row.
// Both writes are attempted even if the first fails; the first error is
// returned so the caller can log it.
func (l *FileLedger) RecordSubmission(rec SubmissionRecord) error {
	logErr := l.appendActivity(rec)
	csvErr := l.appendCSV(rec)
	if logErr != nil {
		return logErr
	}
	return csvErr
}

func (l *FileLedger) appendActivity(rec SubmissionRecord) error {
	line := fmt.Sprintf(
		"[%s] CONTACT_FORM - Name: %s | Email: %s | Phone: %s | Subject: %s | IP: %s | User Agent: %s\n",
		rec.Timestamp.Format(timestampLayout),
		logField(rec.Name, maxLogName),
		logField(rec.Email, 0),
		orDefault(logField(rec.Phone, 0), "Not provided"),
		logField(rec.Subject, maxLogSubject),
		orDefault(rec.SourceIP, "Unknown"),
		orDefault(logField(rec.UserAgent, maxLogUserAgent), "Unknown"),
	)

	return l.appendLocked(l.activityPath, func(f *os.File) error {
		_, err := f.WriteString(line)
		return err
	})
}

func (l *FileLedger) appendCSV(rec SubmissionRecord) error {
	row := []string{
		rec.Timestamp.Format(timestampLayout),
		rec.Name,
		rec.Email,
		rec.Phone,
		rec.Subject,
		rec.Message,
	}

	return l.appendLocked(l.csvPath, func(f *os.File) error {
		// Header goes in exactly once: only when this append created the
		// file. The check runs under the same lock as the write, so two
		// concurrent first submissions cannot both write it.
		stat, err := f.Stat()
		if err != nil {
			return err
		}

		w := csv.NewWriter(f)
		if stat.Size() == 0 {
			if err := w.Write(csvHeader); err != nil {
				return err
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
}

// RecordMailFailure appends a delivery-failure entry to the mail error log.
func (l *FileLedger) RecordMailFailure(fail MailFailure) error {
	line := fmt.Sprintf(
		"[%s] MAIL_FAILURE - Name: %s | Email: %s | Error: %s\n",
		fail.Timestamp.Format(timestampLayout),
		logField(fail.Name, maxLogName),
		logField(fail.Email, 0),
		logField(fail.Reason, 0),
	)

	return l.appendLocked(l.mailErrPath, func(f *os.File) error {
		_, err := f.WriteString(line)
		return err
	})
}

// RecordException appends a terminal-failure entry to the error log.
func (l *FileLedger) RecordException(e Exception) error {
	line := fmt.Sprintf(
		"[%s] EXCEPTION - Name: %s | Email: %s | Error: %s | Origin: %s\n",
		e.Timestamp.Format(timestampLayout),
		logField(e.Name, maxLogName),
		logField(e.Email, 0),
		logField(e.Message, 0),
		logField(e.Origin, 0),
	)

	return l.appendLocked(l.errorPath, func(f *os.File) error {
		_, err := f.WriteString(line)
		return err
	})
}

// appendLocked opens path in append mode and runs write while holding an
// exclusive advisory lock on the file.
func (l *FileLedger) appendLocked(path string, write func(f *os.File) error) error {
	lock := flock.New(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("ledger: lock %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("ledger: open %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	if err := write(f); err != nil {
		return fmt.Errorf("ledger: append %s: %w", filepath.Base(path), err)
	}
	return nil
}

// logField flattens a value to a single clean line for the activity and
// error logs, truncating to maxLen runes when maxLen is positive.
func logField(s string, maxLen int) string {
	s = sanitizer.Apply(s,
		sanitizer.RemoveControlChars,
		sanitizer.SingleLine,
	)
	if maxLen > 0 {
		s = sanitizer.MaxLength(s, maxLen)
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
