package audit

import (
	"fmt"
	"log/slog"

	"github.com/coral-developers/coral-web/internal/app"
	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

// Recorder keeps an audit trail of all contact submissions and feeds the submission metrics.
type Recorder struct {
	cfg *config.Config
	bus EventBus

	metrics MetricsRepo
}

// NewAuditRecorder creates a new Recorder and subscribes it to the submission topics.
// metrics may be nil if metrics collection is disabled.
func NewAuditRecorder(cfg *config.Config, bus EventBus, metrics MetricsRepo) (*Recorder, error) {
	r := &Recorder{
		cfg: cfg,
		bus: bus,

		metrics: metrics,
	}

	err := r.connectToMessageBus()
	if err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return r, nil
}

func (r *Recorder) connectToMessageBus() error {
	if err := r.bus.Subscribe(app.TopicContactSubmitted, r.handleContactSubmittedEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicContactSubmitted, err)
	}
	if err := r.bus.Subscribe(app.TopicMailDelivered, r.handleMailDeliveredEvent); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", app.TopicMailDelivered, err)
	}

	return nil
}

func (r *Recorder) handleContactSubmittedEvent(event domain.ContactSubmittedEvent) {
	slog.Info("audit: contact submission",
		"reference", event.ReferenceId,
		"notificationSent", event.Result.Notification.Success,
		"notificationMessageId", event.Result.Notification.MessageId,
		"autoReplySent", event.Result.AutoReply.Success,
		"autoReplyMessageId", event.Result.AutoReply.MessageId,
		"duration", event.Duration)

	if r.collectMetrics() {
		r.metrics.UpdateSubmissionMetrics(event)
	}
}

func (r *Recorder) handleMailDeliveredEvent(event domain.MailDeliveredEvent) {
	if !event.Outcome.Success {
		slog.Debug("audit: delivery failed",
			"reference", event.ReferenceId, "kind", event.Kind, "error", event.Outcome.Error)
	}

	if r.collectMetrics() {
		r.metrics.UpdateDeliveryMetrics(event)
	}
}

func (r *Recorder) collectMetrics() bool {
	return r.cfg.Statistics.CollectSubmissionData && r.metrics != nil
}
