// Package contact validates untrusted contact form input.
package contact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/coral-developers/coral-web/internal/domain"
)

const emailTag = "contact_email"

// emailPattern is a conservative local@domain.tld check, at least one dot in the domain and a 2+ letter TLD.
var emailPattern = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)

type fieldRule struct {
	field  string
	label  string
	strict string // rules including length bounds
	basic  string // presence and shape only
}

// rules are evaluated in this order, so field errors are reported in form order.
var rules = []fieldRule{
	{field: domain.FieldFullName, label: "Full name", strict: "required,min=2,max=100", basic: "required"},
	{field: domain.FieldEmail, label: "Email address", strict: "required,max=255," + emailTag, basic: "required," + emailTag},
	{field: domain.FieldSubject, label: "Subject", strict: "required,min=3,max=200", basic: "required"},
	{field: domain.FieldMessage, label: "Message", strict: "required,min=10,max=2000", basic: "required"},
}

// Validator checks contact form input and normalizes it into a domain.ContactSubmission.
type Validator struct {
	validate    *validator.Validate
	lengthRules bool
}

type Option func(v *Validator)

// WithoutLengthBounds only checks presence and email shape, length bounds are not enforced.
func WithoutLengthBounds() Option {
	return func(v *Validator) {
		v.lengthRules = false
	}
}

// NewValidator creates a new validator. By default, length bounds are enforced.
func NewValidator(opts ...Option) *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// the tag name is a package constant, registration cannot fail
	_ = validate.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	v := &Validator{
		validate:    validate,
		lengthRules: true,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate checks the given untrusted input, usually a decoded JSON body.
// If the input is not an object, a single body level error is returned.
// Otherwise, all fields are checked and every failing field is reported.
// The returned error is always of type *domain.ValidationError.
func (v *Validator) Validate(input any) (domain.ContactSubmission, error) {
	body, ok := input.(map[string]any)
	if !ok || body == nil {
		return domain.ContactSubmission{}, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: domain.FieldBody, Message: "Invalid request body"},
		}}
	}

	values := make(map[string]string, len(rules))
	var fieldErrors []domain.FieldError
	for _, rule := range rules {
		value := stringField(body, rule.field)
		values[rule.field] = value

		tags := rule.basic
		if v.lengthRules {
			tags = rule.strict
		}

		if err := v.validate.Var(value, tags); err != nil {
			fieldErrors = append(fieldErrors, domain.FieldError{
				Field:   rule.field,
				Message: fieldMessage(rule, err),
			})
		}
	}

	if len(fieldErrors) > 0 {
		return domain.ContactSubmission{}, &domain.ValidationError{Errors: fieldErrors}
	}

	return domain.ContactSubmission{
		FullName: values[domain.FieldFullName],
		Email:    strings.ToLower(values[domain.FieldEmail]),
		Subject:  values[domain.FieldSubject],
		Message:  values[domain.FieldMessage],
	}, nil
}

// stringField returns the trimmed string value of the given key. Non-string values count as absent.
func stringField(body map[string]any, key string) string {
	s, ok := body[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func fieldMessage(rule fieldRule, err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return fmt.Sprintf("%s is invalid", rule.label)
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", rule.label)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", rule.label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", rule.label, fe.Param())
	case emailTag:
		return "Please enter a valid email address"
	default:
		return fmt.Sprintf("%s is invalid", rule.label)
	}
}
