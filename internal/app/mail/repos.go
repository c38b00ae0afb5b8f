package mail

import (
	"context"

	"github.com/coral-developers/coral-web/internal/config"
	"github.com/coral-developers/coral-web/internal/domain"
)

// Transport delivers messages to an SMTP relay.
// Implementations never panic and never return a Go error, failures are reported in the outcome.
type Transport interface {
	// Verify checks the connection and the credentials of the relay.
	Verify(ctx context.Context) domain.DeliveryOutcome
	// Send delivers the given message in a single SMTP transaction.
	Send(ctx context.Context, msg domain.MailMessage) domain.DeliveryOutcome
}

// TransportFactory builds a new transport for the given configuration. It is called once per submission.
type TransportFactory func(cfg *config.TransportConfig) Transport

type EventBus interface {
	// Publish sends a message to the message bus.
	Publish(topic string, args ...any)
}
