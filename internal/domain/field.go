package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Field is an optional form field. The zero value is an absent field.
//
// JSON strings and form values are text and get sanitized. JSON numbers and
// booleans are kept as their literal text and pass through sanitization
// untouched. JSON objects and arrays cannot be stored as text and mark the
// field invalid.
type Field struct {
	value   string
	present bool
	text    bool
	invalid bool
}

// Text returns a present text field.
func Text(v string) Field {
	return Field{value: v, present: true, text: true}
}

// Present reports whether the field was supplied.
func (f Field) Present() bool { return f.present }

// IsText reports whether the field was supplied as text.
func (f Field) IsText() bool { return f.text }

// Invalid reports whether the field was supplied with a non-scalar value.
func (f Field) Invalid() bool { return f.invalid }

// Value returns the field content, or "" when absent.
func (f Field) Value() string { return f.value }

// Sanitized strips the denylisted characters from text fields. Other
// fields are returned unchanged.
func (f Field) Sanitized() Field {
	if !f.text {
		return f
	}
	f.value = Sanitize(f.value)
	return f
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = Field{}

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Text(s)
	case data[0] == '{' || data[0] == '[':
		*f = Field{present: true, invalid: true}
	default:
		// numbers, true, false
		*f = Field{value: string(data), present: true}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Absent fields encode as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.present || f.invalid {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// denylist holds the characters removed by Sanitize.
const denylist = `<>&'"`

// Sanitize removes every '<', '>', '&', '\'' and '"' from s and leaves all
// other characters in place. It is a character denylist, not HTML escaping.
func Sanitize(s string) string {
	if !strings.ContainsAny(s, denylist) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(denylist, r) {
			return -1
		}
		return r
	}, s)
}
