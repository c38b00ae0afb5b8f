package domain

import (
	"strings"
)

// ContactSubmission is a validated and normalized contact form submission.
// It only lives for the duration of one request and is never persisted.
type ContactSubmission struct {
	FullName string
	Email    string
	Subject  string
	Message  string
}

// FieldError describes a validation failure of a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains all field errors of a rejected contact form, one entry per failing field.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		fields[i] = fe.Field
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Unwrap makes a body level shape error detectable via errors.Is(err, ErrInvalidShape).
func (e *ValidationError) Unwrap() error {
	if len(e.Errors) == 1 && e.Errors[0].Field == FieldBody {
		return ErrInvalidShape
	}
	return nil
}

const (
	FieldBody     = "body"
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldSubject  = "subject"
	FieldMessage  = "message"
)
