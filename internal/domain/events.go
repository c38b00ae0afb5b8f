package domain

import "time"

// ContactSubmittedEvent is published after a contact submission was processed, independent of its outcome.
type ContactSubmittedEvent struct {
	ReferenceId string
	Result      SubmissionResult
	Duration    time.Duration
}

// MailDeliveredEvent is published for every single delivery attempt.
type MailDeliveredEvent struct {
	ReferenceId string
	Kind        MailKind
	Outcome     DeliveryOutcome
}
