package models

// ContactRequest is the request body of the contact form endpoint.
// The endpoint decodes the raw body, this type documents the expected shape.
type ContactRequest struct {
	FullName string `json:"fullName"` // The name of the sender, 2 to 100 characters.
	Email    string `json:"email"`    // The email address of the sender.
	Subject  string `json:"subject"`  // The subject, 3 to 200 characters.
	Message  string `json:"message"`  // The message, 10 to 2000 characters.
}
