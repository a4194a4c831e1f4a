package ledger

import (
	"time"
)

// Config holds the file layout of the append-only ledger.
type Config struct {
	Dir          string `env:"LEDGER_DIR" envDefault:"./data"`
	ActivityFile string `env:"LEDGER_ACTIVITY_FILE" envDefault:"contact_submissions.log"`
	CSVFile      string `env:"LEDGER_CSV_FILE" envDefault:"contact_submissions.csv"`
	MailErrFile  string `env:"LEDGER_MAIL_ERROR_FILE" envDefault:"mail_errors.log"`
	ErrorFile    string `env:"LEDGER_ERROR_FILE" envDefault:"contact_errors.log"`
}

// SubmissionRecord is the per-submission data persisted after a successful
// delivery. Values are stored as received; formatting and truncation happen
// at write time.
type SubmissionRecord struct {
	Timestamp time.Time
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	SourceIP  string
	UserAgent string
}

// MailFailure describes a failed delivery attempt for the error log.
type MailFailure struct {
	Timestamp time.Time
	Name      string
	Email     string
	Reason    string
}

// Exception describes a terminal processing failure for the error log.
type Exception struct {
	Timestamp time.Time
	Name      string
	Email     string
	Message   string
	Origin    string
}

// Appender is the append-only ledger contract. Implementations must be safe
// for concurrent use; callers treat every method as best-effort and never
// propagate append failures to the end user.
type Appender interface {
	// RecordSubmission appends one activity-log line and one CSV row for a
	// successfully delivered submission.
	RecordSubmission(rec SubmissionRecord) error

	// RecordMailFailure appends a delivery-failure entry to the mail error log.
	RecordMailFailure(f MailFailure) error

	// RecordException appends a terminal-failure entry to the error log.
	RecordException(e Exception) error
}
