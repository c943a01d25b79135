package domain

import (
	"time"
)

// DefaultSubject is stored when a submission carries no subject.
const DefaultSubject = "No Subject"

// MinMessageLength is the minimum number of characters in a message body.
const MinMessageLength = 3

// Message represents a contact-form submission.
type Message struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SubmitRequest carries the four contact-form fields as received.
type SubmitRequest struct {
	Name    Field `json:"name"`
	Email   Field `json:"email"`
	Subject Field `json:"subject"`
	Message Field `json:"message"`
}

// Sanitized returns a copy of r with every present text field sanitized.
func (r SubmitRequest) Sanitized() SubmitRequest {
	return SubmitRequest{
		Name:    r.Name.Sanitized(),
		Email:   r.Email.Sanitized(),
		Subject: r.Subject.Sanitized(),
		Message: r.Message.Sanitized(),
	}
}

// Candidate builds the unsaved Message for r. Identifier, timestamp and
// defaults are left to the store.
func (r SubmitRequest) Candidate() *Message {
	return &Message{
		Name:    r.Name.Value(),
		Email:   r.Email.Value(),
		Subject: r.Subject.Value(),
		Message: r.Message.Value(),
	}
}

// CastErrors reports fields that were present but not representable as text.
func (r SubmitRequest) CastErrors() []FieldError {
	var errs []FieldError
	for _, f := range []struct {
		name  string
		field Field
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"subject", r.Subject},
		{"message", r.Message},
	} {
		if f.field.Invalid() {
			errs = append(errs, FieldError{Field: f.name, Message: f.name + " must be text"})
		}
	}
	return errs
}

// SubmitResult is the acknowledgment returned for a stored submission.
type SubmitResult struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
