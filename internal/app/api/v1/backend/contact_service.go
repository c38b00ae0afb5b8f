package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

type ContactManager interface {
	// Submit sends the company notification and the auto-reply for a validated submission.
	Submit(ctx context.Context, sub domain.ContactSubmission) domain.SubmissionResult
	// VerifyConnection resolves the transport configuration and checks the relay.
	VerifyConnection(ctx context.Context) (*config.TransportConfig, error)
}

type InputValidator interface {
	// Validate checks the raw decoded request body and returns the normalized submission.
	Validate(input any) (domain.ContactSubmission, error)
}

type ContactService struct {
	cfg *config.Config

	validator InputValidator
	contacts  ContactManager
}

func NewContactService(cfg *config.Config, validator InputValidator, contacts ContactManager) *ContactService {
	return &ContactService{
		cfg:       cfg,
		validator: validator,
		contacts:  contacts,
	}
}

// Submit validates the raw form input and dispatches both emails.
// The request only fails if the company notification could not be sent, a failed auto-reply is logged.
func (s ContactService) Submit(ctx context.Context, input any) (domain.SubmissionResult, error) {
	if s.contacts == nil || s.validator == nil {
		return domain.SubmissionResult{}, errors.New("contact service is not initialized")
	}

	sub, err := s.validator.Validate(input)
	if err != nil {
		return domain.SubmissionResult{}, err
	}

	result := s.contacts.Submit(ctx, sub)

	if !result.Notification.Success {
		slog.Error("failed to send contact form notification", "error", result.Notification.Error)
		return result, fmt.Errorf("%w: %s", domain.ErrSendFailed, result.Notification.Error)
	}

	if !result.AutoReply.Success {
		slog.Warn("auto-reply email failed", "error", result.AutoReply.Error)
	}

	return result, nil
}

// VerifySmtp checks the current mail transport configuration against the relay.
func (s ContactService) VerifySmtp(ctx context.Context) (*config.TransportConfig, error) {
	if s.contacts == nil {
		return nil, errors.New("contact service is not initialized")
	}

	return s.contacts.VerifyConnection(ctx)
}
