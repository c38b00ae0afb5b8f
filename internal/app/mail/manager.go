package mail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/coral-developers/coral-web/internal/app"
	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

// Manager processes contact submissions. It verifies the relay, renders both emails and dispatches them.
type Manager struct {
	cfg        *config.Config
	bus        EventBus
	tplHandler *TemplateHandler

	newTransport TransportFactory
}

// NewMailManager creates a new mail manager. The transport factory is called once per submission
// with a freshly resolved transport configuration.
func NewMailManager(cfg *config.Config, bus EventBus, transports TransportFactory) (*Manager, error) {
	if transports == nil {
		return nil, errors.New("missing transport factory")
	}

	tplHandler, err := newTemplateHandler(cfg.Company)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template handler: %w", err)
	}

	m := &Manager{
		cfg:          cfg,
		bus:          bus,
		tplHandler:   tplHandler,
		newTransport: transports,
	}

	return m, nil
}

// Submit sends the company notification and the auto-reply for a validated submission.
// Both outcomes of the result are always populated, failures never surface as Go errors.
func (m Manager) Submit(ctx context.Context, sub domain.ContactSubmission) domain.SubmissionResult {
	if m.cfg.Advanced.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.Advanced.SubmitTimeout)
		defer cancel()
	}

	refId := uuid.NewString()
	start := time.Now()

	result := m.submit(ctx, refId, sub)

	m.publish(app.TopicContactSubmitted, domain.ContactSubmittedEvent{
		ReferenceId: refId,
		Result:      result,
		Duration:    time.Since(start),
	})

	slog.Info("contact submission processed",
		"reference", refId,
		"notification", result.Notification.Success,
		"autoReply", result.AutoReply.Success,
		"duration", time.Since(start))

	return result
}

func (m Manager) submit(ctx context.Context, refId string, sub domain.ContactSubmission) domain.SubmissionResult {
	tc, err := m.cfg.Mail.Resolve(m.cfg.Company.Name)
	if err != nil {
		slog.Error("mail transport configuration incomplete", "reference", refId, "error", err)
		return domain.FailedSubmission(err)
	}

	transport, verify := m.connect(ctx, tc)
	if !verify.Success {
		slog.Error("smtp connection verification failed",
			"reference", refId, "host", tc.Host, "port", tc.Port, "error", verify.Error)
		return domain.SubmissionResult{Notification: verify, AutoReply: verify}
	}

	notification, autoReply, err := m.buildMessages(tc, sub)
	if err != nil {
		slog.Error("failed to render contact emails", "reference", refId, "error", err)
		return domain.FailedSubmission(err)
	}

	var result domain.SubmissionResult
	var g errgroup.Group
	g.Go(func() error {
		result.Notification = m.deliver(ctx, transport, refId, domain.MailKindNotification, notification)
		return nil
	})
	g.Go(func() error {
		result.AutoReply = m.deliver(ctx, transport, refId, domain.MailKindAutoReply, autoReply)
		return nil
	})
	_ = g.Wait()

	return result
}

// VerifyConnection resolves the current transport configuration and checks the relay.
// The returned configuration is nil if it could not be resolved.
func (m Manager) VerifyConnection(ctx context.Context) (*config.TransportConfig, error) {
	tc, err := m.cfg.Mail.Resolve(m.cfg.Company.Name)
	if err != nil {
		return nil, err
	}

	_, outcome := m.connect(ctx, tc)
	if !outcome.Success {
		return tc, fmt.Errorf("%w: %s", domain.ErrVerifyFailed, outcome.Error)
	}

	return tc, nil
}

// connect builds the transport for tc and verifies the relay. A panicking factory or
// transport is reported as a failed verification.
func (m Manager) connect(ctx context.Context, tc *config.TransportConfig) (transport Transport, outcome domain.DeliveryOutcome) {
	defer func() {
		if r := recover(); r != nil {
			transport = nil
			outcome = domain.DeliveryFailed(fmt.Errorf("%w: transport panic: %v", domain.ErrVerifyFailed, r))
		}
	}()

	transport = m.newTransport(tc)
	if transport == nil {
		return nil, domain.DeliveryFailed(fmt.Errorf("%w: no transport available", domain.ErrVerifyFailed))
	}

	return transport, transport.Verify(ctx)
}

func (m Manager) buildMessages(
	tc *config.TransportConfig,
	sub domain.ContactSubmission,
) (notification, autoReply domain.MailMessage, err error) {
	notification = domain.MailMessage{
		FromEmail: tc.FromEmail,
		FromName:  tc.FromName,
		To:        tc.CompanyEmail,
		Bcc:       tc.AdminEmail,
		ReplyTo:   sub.Email,
		Subject:   m.tplHandler.NotificationSubject(sub),
	}
	autoReply = domain.MailMessage{
		FromEmail: tc.FromEmail,
		FromName:  tc.FromName,
		To:        sub.Email,
		Subject:   m.tplHandler.AutoReplySubject(),
	}

	renderers := []struct {
		target *string
		render func(domain.ContactSubmission) (string, error)
	}{
		{&notification.HtmlBody, m.tplHandler.CompanyNotificationHtml},
		{&notification.TextBody, m.tplHandler.CompanyNotificationText},
		{&autoReply.HtmlBody, m.tplHandler.AutoReplyHtml},
		{&autoReply.TextBody, m.tplHandler.AutoReplyText},
	}
	for _, r := range renderers {
		body, err := r.render(sub)
		if err != nil {
			return domain.MailMessage{}, domain.MailMessage{}, fmt.Errorf("%w: %w", domain.ErrRenderFailed, err)
		}
		*r.target = body
	}

	return notification, autoReply, nil
}

func (m Manager) deliver(
	ctx context.Context,
	transport Transport,
	refId string,
	kind domain.MailKind,
	msg domain.MailMessage,
) (outcome domain.DeliveryOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.DeliveryFailed(fmt.Errorf("%w: transport panic: %v", domain.ErrSendFailed, r))
		}

		m.publish(app.TopicMailDelivered, domain.MailDeliveredEvent{
			ReferenceId: refId,
			Kind:        kind,
			Outcome:     outcome,
		})

		if outcome.Success {
			slog.Debug("email sent", "reference", refId, "kind", kind, "messageId", outcome.MessageId)
		} else {
			slog.Warn("failed to send email", "reference", refId, "kind", kind, "error", outcome.Error)
		}
	}()

	return transport.Send(ctx, msg)
}

func (m Manager) publish(topic string, event any) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(topic, event)
}
