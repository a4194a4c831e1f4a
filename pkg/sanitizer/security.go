package sanitizer

import (
	"html"
	"strings"
)

// EscapeHTML escapes HTML special characters to prevent XSS when user input
// is interpolated into markup.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// PreventHeaderInjection removes characters that could be used to split
// SMTP or HTTP headers.
func PreventHeaderInjection(s string) string {
	result := strings.ReplaceAll(s, "\r", "")
	result = strings.ReplaceAll(result, "\n", "")
	return strings.ReplaceAll(result, "\x00", "")
}

// NormalizeEmail removes dangerous characters from an email address while
// preserving valid format.
func NormalizeEmail(email string) string {
	result := strings.ReplaceAll(email, "\x00", "")
	result = RemoveControlChars(result)

	for _, c := range []string{"<", ">", "\"", "'"} {
		result = strings.ReplaceAll(result, c, "")
	}

	return strings.TrimSpace(result)
}
