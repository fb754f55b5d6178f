package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for user-supplied fields.
const (
	maxNameLen    = 300
	maxEmailLen   = 320
	maxSubjectLen = 300
	maxBodyLen    = 20_000
	maxNotesLen   = 10_000
)

// validateEmail is a cheap shape check, not RFC validation. Real
// verification happens when mail to the address bounces.
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "Email is too long."
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return "Email does not look valid."
	}
	return ""
}

// validateContactMessage checks contact form inputs and returns the
// first error found.
func validateContactMessage(name, email, subject, body string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 300 characters)."
	}
	if msg := validateEmail(email); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(subject) > maxSubjectLen {
		return "Subject is too long (max 300 characters)."
	}
	if strings.TrimSpace(body) == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Message is too long (max 20,000 characters)."
	}
	return ""
}
