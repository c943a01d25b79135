package repository

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/weiawesome/contact-service/internal/domain"
)

// messageSchema mirrors the stored document constraints.
type messageSchema struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required,min=3"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// ValidateMessage checks msg against the message schema and reports every
// violated field.
func ValidateMessage(msg *domain.Message) error {
	err := validate.Struct(messageSchema{Name: msg.Name, Message: msg.Message})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate message: %w", err)
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// prepare applies store defaults, validates, then stamps identity and time.
// msg is left untouched when validation fails.
func prepare(msg *domain.Message, clock Clock) error {
	if err := ValidateMessage(msg); err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate message id: %w", err)
	}

	if msg.Subject == "" {
		msg.Subject = domain.DefaultSubject
	}
	msg.ID = id.String()
	msg.Timestamp = clock().UTC().Truncate(time.Millisecond)
	return nil
}

func clockOrDefault(clock Clock) Clock {
	if clock == nil {
		return time.Now
	}
	return clock
}
