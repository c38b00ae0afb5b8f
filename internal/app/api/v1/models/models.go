package models

import (
	"github.com/coral-developers/coral-web/internal/domain"
)

// Response is the envelope of all contact API responses.
type Response struct {
	Success bool                `json:"success"`          // Whether the request succeeded.
	Message string              `json:"message"`          // A user facing message.
	Errors  []domain.FieldError `json:"errors,omitempty"` // Field errors, only set if validation failed.
}

func NewSuccessResponse(message string) Response {
	return Response{Success: true, Message: message}
}

func NewErrorResponse(message string) Response {
	return Response{Success: false, Message: message}
}

func NewValidationErrorResponse(errs []domain.FieldError) Response {
	return Response{Success: false, Message: "Validation failed", Errors: errs}
}
