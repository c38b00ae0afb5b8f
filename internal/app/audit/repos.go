package audit

import (
	"github.com/coral-developers/coral-web/internal/domain"
)

type MetricsRepo interface {
	// UpdateSubmissionMetrics records a processed contact submission.
	UpdateSubmissionMetrics(event domain.ContactSubmittedEvent)
	// UpdateDeliveryMetrics records a single delivery attempt.
	UpdateDeliveryMetrics(event domain.MailDeliveredEvent)
}

type EventBus interface {
	// Subscribe subscribes to a topic. The handler is called asynchronously for every published message.
	Subscribe(topic string, fn any) error
}
