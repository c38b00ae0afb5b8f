package domain

// MailMessage is a fully prepared email that can be handed to a mail transport.
type MailMessage struct {
	FromEmail string
	FromName  string
	To        string
	Bcc       string // optional
	ReplyTo   string // optional, defaults to the sender
	Subject   string
	TextBody  string
	HtmlBody  string
}

// MailKind identifies the two messages that are sent for every contact submission.
type MailKind string

const (
	MailKindNotification MailKind = "notification"
	MailKindAutoReply    MailKind = "auto_reply"
)

// DeliveryOutcome is the result of a single transport operation.
// MessageId is set iff Success is true, Error is set iff Success is false.
type DeliveryOutcome struct {
	Success   bool
	MessageId string
	Error     string
}

// DeliverySucceeded returns a successful outcome for the given message id.
func DeliverySucceeded(messageId string) DeliveryOutcome {
	return DeliveryOutcome{Success: true, MessageId: messageId}
}

// DeliveryFailed returns a failed outcome for the given error.
func DeliveryFailed(err error) DeliveryOutcome {
	msg := "unknown error occurred"
	if err != nil {
		msg = err.Error()
	}
	return DeliveryOutcome{Success: false, Error: msg}
}

// SubmissionResult holds the two independent delivery outcomes of a contact submission.
// Both halves are always populated.
type SubmissionResult struct {
	Notification DeliveryOutcome
	AutoReply    DeliveryOutcome
}

// FailedSubmission returns a result where both outcomes carry the same error.
func FailedSubmission(err error) SubmissionResult {
	outcome := DeliveryFailed(err)
	return SubmissionResult{
		Notification: outcome,
		AutoReply:    outcome,
	}
}
