package contact

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/ousadiats/website/pkg/sanitizer"
)

// Config holds the company identity rendered into responses and emails.
type Config struct {
	CompanyName     string `env:"COMPANY_NAME" envDefault:"Ousadia Tech Solutions"`
	CompanyEmail    string `env:"COMPANY_EMAIL" envDefault:"info@ousadiaconsulting.com"`
	CompanyPhone    string `env:"COMPANY_PHONE" envDefault:"+27 69 535 2793"`
	CompanyAddress  string `env:"COMPANY_ADDRESS" envDefault:"1st Floor, Gateway West, 22 Magwa Cres, Waterfall, Midrand, 2066, South Africa"`
	WebsiteURL      string `env:"WEBSITE_URL" envDefault:"https://ousadiats.co.za"`
	ReferencePrefix string `env:"REFERENCE_PREFIX" envDefault:"OTS"`
}

// Submission is one contact-form payload. It is write-once: built from the
// incoming request, validated, processed, and never updated.
type Submission struct {
	ID         uuid.UUID
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	ReceivedAt time.Time
	SourceIP   string
	UserAgent  string
}

// cleanField strips control characters and surrounding whitespace from a
// form value. HTML escaping is deferred to render time, so the stored value
// stays faithful to what the visitor typed.
var cleanField = sanitizer.Compose(
	sanitizer.RemoveControlChars,
	sanitizer.Trim,
)

// NewSubmission builds a Submission from parsed form values and request
// metadata. Field values are cleaned here once; everything downstream works
// with the same sanitized copy.
func NewSubmission(form url.Values, receivedAt time.Time, sourceIP, userAgent string) Submission {
	return Submission{
		ID:         uuid.New(),
		Name:       cleanField(form.Get("name")),
		Email:      sanitizer.NormalizeEmail(form.Get("email")),
		Phone:      cleanField(form.Get("phone")),
		Subject:    cleanField(form.Get("subject")),
		Message:    cleanField(form.Get("message")),
		ReceivedAt: receivedAt,
		SourceIP:   sourceIP,
		UserAgent:  userAgent,
	}
}
