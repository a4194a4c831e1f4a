package contact

import (
	"embed"
	"fmt"
	"html/template"
	"math/rand"
	"net/url"
	"strings"
	"time"

	"github.com/ousadiats/website/pkg/email"
	"github.com/ousadiats/website/pkg/sanitizer"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// receivedAtLayout renders the human-readable timestamp in the email footer.
const receivedAtLayout = "January 2, 2006 at 3:04 pm"

// Composer renders the company notification and the submitter auto-reply
// from embedded HTML templates.
type Composer struct {
	cfg       Config
	templates *template.Template

	// refSuffix generates the random 4-digit reference suffix; injectable
	// for deterministic tests.
	refSuffix func() int
}

// NewComposer parses the embedded templates and returns a ready composer.
func NewComposer(cfg Config) (*Composer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("contact: parse templates: %w", err)
	}
	return &Composer{
		cfg:       cfg,
		templates: t,
		refSuffix: func() int { return 1000 + rand.Intn(9000) },
	}, nil
}

type notificationData struct {
	CompanyName  string
	WebsiteURL   string
	Name         string
	Email        string
	Phone        string
	Subject      string
	MessageHTML  template.HTML
	MailtoURL    template.URL
	ReceivedAt   string
	SourceIP     string
	SubmissionID string
}

// Notification composes the HTML email addressed to the company. Reply-To is
// set to the submitter so a plain reply in the mail client reaches them.
func (c *Composer) Notification(s Submission) (email.Message, error) {
	mailto := fmt.Sprintf("mailto:%s?subject=%s",
		s.Email, url.QueryEscape("Re: "+s.Subject))

	data := notificationData{
		CompanyName:  c.cfg.CompanyName,
		WebsiteURL:   c.cfg.WebsiteURL,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Subject:      s.Subject,
		MessageHTML:  nl2br(s.Message),
		MailtoURL:    template.URL(mailto),
		ReceivedAt:   s.ReceivedAt.Format(receivedAtLayout),
		SourceIP:     orUnknown(s.SourceIP),
		SubmissionID: s.ID.String(),
	}

	var body strings.Builder
	if err := c.templates.ExecuteTemplate(&body, "notification.tmpl", data); err != nil {
		return email.Message{}, fmt.Errorf("contact: render notification: %w", err)
	}

	return email.Message{
		To:       c.cfg.CompanyEmail,
		ReplyTo:  s.Email,
		Subject:  headerSafe("New Contact Form Submission: " + s.Subject),
		BodyHTML: body.String(),
		Tag:      "contact-notification",
	}, nil
}

type autoReplyData struct {
	CompanyName    string
	CompanyEmail   string
	CompanyPhone   string
	CompanyAddress string
	WebsiteURL     string
	PhoneURL       template.URL
	Name           string
	Subject        string
	MessageHTML    template.HTML
	Reference      string
	Year           int
}

// AutoReply composes the confirmation email addressed to the submitter.
// The reference stamp is a display aid only; it is not unique and must not
// be used as an identifier (the submission ID is).
func (c *Composer) AutoReply(s Submission) (email.Message, error) {
	data := autoReplyData{
		CompanyName:    c.cfg.CompanyName,
		CompanyEmail:   c.cfg.CompanyEmail,
		CompanyPhone:   c.cfg.CompanyPhone,
		CompanyAddress: c.cfg.CompanyAddress,
		WebsiteURL:     c.cfg.WebsiteURL,
		PhoneURL:       template.URL("tel:" + strings.ReplaceAll(c.cfg.CompanyPhone, " ", "")),
		Name:           s.Name,
		Subject:        s.Subject,
		MessageHTML:    nl2br(s.Message),
		Reference:      c.reference(s.ReceivedAt),
		Year:           s.ReceivedAt.Year(),
	}

	var body strings.Builder
	if err := c.templates.ExecuteTemplate(&body, "autoreply.tmpl", data); err != nil {
		return email.Message{}, fmt.Errorf("contact: render auto-reply: %w", err)
	}

	return email.Message{
		To:       s.Email,
		Subject:  "Thank you for contacting " + c.cfg.CompanyName,
		BodyHTML: body.String(),
		Tag:      "contact-auto-reply",
	}, nil
}

// Fallback derives the degraded plain-text variant of a composed message:
// same recipient and subject, HTML stripped to text, minimal headers.
func (c *Composer) Fallback(msg email.Message) email.Message {
	return email.Message{
		To:       msg.To,
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		BodyText: strings.TrimSpace(sanitizer.StripHTML(msg.BodyHTML)),
		Tag:      msg.Tag + "-fallback",
	}
}

// reference builds the display stamp shown in the auto-reply, e.g.
// #OTS-20260828-4821.
func (c *Composer) reference(t time.Time) string {
	return fmt.Sprintf("#%s-%s-%d", c.cfg.ReferencePrefix, t.Format("20060102"), c.refSuffix())
}

// nl2br escapes the text for HTML and converts line breaks to <br> so
// multi-line messages keep their shape inside the rendered email.
func nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}

// headerSafe strips characters that could split mail headers out of
// user-influenced header values.
func headerSafe(s string) string {
	return sanitizer.PreventHeaderInjection(s)
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
