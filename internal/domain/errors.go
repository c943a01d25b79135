package domain

import (
	"strings"

	"github.com/samber/lo"
)

// FieldError is a single schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned by the store when a candidate message breaks
// the schema. It carries every violation, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Summary()
}

// Summary joins the field messages into one human-readable line.
func (e *ValidationError) Summary() string {
	return strings.Join(lo.Map(e.Fields, func(f FieldError, _ int) string {
		return f.Message
	}), ", ")
}
