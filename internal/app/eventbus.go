package app

// TopicContactSubmitted is published once per processed contact submission with a domain.ContactSubmittedEvent.
const TopicContactSubmitted = "contact:submitted"

// TopicMailDelivered is published for every delivery attempt with a domain.MailDeliveredEvent.
const TopicMailDelivered = "mail:delivered"
