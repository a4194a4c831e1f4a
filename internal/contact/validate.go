package contact

import "github.com/ousadiats/website/pkg/validator"

// Field length limits for a submission.
const (
	MaxNameLen    = 100
	MaxEmailLen   = 100
	MaxSubjectLen = 200
	MaxMessageLen = 2000
)

// Validate checks a submission and returns every failing rule, in a stable
// order: the four length checks first, then the four presence checks. The
// returned error is validator.ValidationErrors; a valid submission yields
// nil. Validation is pure, so revalidating the same submission always
// produces the same error set.
func Validate(s Submission) error {
	return validator.Apply(
		validator.MaxLenString("name", s.Name, MaxNameLen).
			WithMessage("Name is too long (maximum 100 characters)"),
		validator.MaxLenString("email", s.Email, MaxEmailLen).
			WithMessage("Email is too long"),
		validator.MaxLenString("subject", s.Subject, MaxSubjectLen).
			WithMessage("Subject is too long (maximum 200 characters)"),
		validator.MaxLenString("message", s.Message, MaxMessageLen).
			WithMessage("Message is too long (maximum 2000 characters)"),
		validator.RequiredString("name", s.Name).
			WithMessage("Name is required"),
		validator.ValidEmail("email", s.Email).
			WithMessage("Valid email is required"),
		validator.RequiredString("subject", s.Subject).
			WithMessage("Subject is required"),
		validator.RequiredString("message", s.Message).
			WithMessage("Message is required"),
	)
}
