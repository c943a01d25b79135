package pubsub

import "time"

// Channel naming for contact-form notifications.
const (
	ChannelMessageSubmitted = "contact:message:submitted"
)

// Event types.
const (
	EventMessageSubmitted = "message_submitted"
)

// MessageSubmittedPayload is published once a contact message is stored.
type MessageSubmittedPayload struct {
	MessageID string    `json:"message_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
}
