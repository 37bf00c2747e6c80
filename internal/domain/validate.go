package domain

import (
	"strings"
	"unicode/utf8"
)

// MinPasswordLength applies to sign-up and password reset
const MinPasswordLength = 6

// Fields collects per-field validation messages
type Fields map[string]string

// Require records msg for field when value is blank
func (f Fields) Require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		f[field] = msg
	}
}

// Email records a message when value does not look like an address
func (f Fields) Email(field, value string) {
	if !strings.Contains(value, "@") {
		f[field] = "enter a valid email address"
	}
}

// Password records a message when value is shorter than MinPasswordLength
func (f Fields) Password(field, value string) {
	if utf8.RuneCountInString(value) < MinPasswordLength {
		f[field] = "password must be at least 6 characters"
	}
}

// Err returns a validation error when any field failed, nil otherwise
func (f Fields) Err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return NewValidationError(message, map[string]string(f))
}
