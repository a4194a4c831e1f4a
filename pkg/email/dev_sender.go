package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements Sender for local development.
// It saves messages as body and metadata files in a directory instead of
// delivering them through a real transport.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender that saves messages to disk.
// The directory is created on first send if it doesn't exist.
func NewDevSender(dir string) Sender {
	return &DevSender{dir: dir}
}

// messageMetadata is the message envelope saved as JSON (body excluded).
type messageMetadata struct {
	Timestamp string `json:"timestamp"`
	To        string `json:"to"`
	ReplyTo   string `json:"reply_to,omitempty"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
	PlainText bool   `json:"plain_text"`
}

// Send writes the message body (.html or .txt) and metadata (.json) to the
// configured directory.
func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrSendFailed, err)
	}

	now := time.Now()

	identifier := msg.Tag
	if identifier == "" {
		identifier = msg.Subject
	}
	base := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(identifier))

	body := msg.BodyHTML
	ext := ".html"
	if msg.IsPlainText() {
		body = msg.BodyText
		ext = ".txt"
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+ext), []byte(body), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write body file: %v", ErrSendFailed, err)
	}

	meta := messageMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		ReplyTo:   msg.ReplyTo,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
		PlainText: msg.IsPlainText(),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrSendFailed, err)
	}
	if err := os.WriteFile(filepath.Join(d.dir, base+".json"), data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write metadata file: %v", ErrSendFailed, err)
	}

	return nil
}

// filenameRegex matches characters that are not safe in a filename.
var filenameRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a free-form identifier into a safe filename.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = filenameRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}

	if s == "" {
		s = "message"
	}

	return strings.ToLower(s)
}
