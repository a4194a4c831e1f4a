package validator

import (
	"net/mail"
	"strings"
)

// ValidEmail validates that a string is a well-formed email address.
// Beyond RFC 5322 parsing, it enforces the constraints expected of an
// address typed into a web form: a non-empty local part and a dotted
// domain with no empty labels.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if strings.TrimSpace(value) == "" {
				return false
			}

			addr, err := mail.ParseAddress(value)
			if err != nil {
				return false
			}

			local, domain, ok := strings.Cut(addr.Address, "@")
			if !ok || local == "" {
				return false
			}

			if !strings.Contains(domain, ".") {
				return false
			}
			for _, part := range strings.Split(domain, ".") {
				if part == "" {
					return false
				}
			}

			return true
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}
