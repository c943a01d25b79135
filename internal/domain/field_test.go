package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"<script>hi</script>":     "scripthi/script",
		`Tom & "Jerry"`:           "Tom  Jerry",
		"it's":                    "its",
		"plain text / 100% ok!":   "plain text / 100% ok!",
		"":                        "",
		"日本語 <b>bold</b>":         "日本語 bboldb/b",
		"&lt;already escaped&gt;": "ltalready escapedgt;",
	}
	for in, want := range cases {
		got := Sanitize(in)
		assert.Equal(t, want, got, "input %q", in)
		assert.Equal(t, got, Sanitize(got), "sanitize must be idempotent for %q", in)
		assert.NotContains(t, got, "<")
		assert.NotContains(t, got, ">")
		assert.NotContains(t, got, "&")
		assert.NotContains(t, got, "'")
		assert.NotContains(t, got, `"`)
	}
}

func TestFieldUnmarshalJSON(t *testing.T) {
	var req SubmitRequest
	body := `{"name":"<Ann>","email":null,"subject":42,"message":{"a":1}}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, req.Name.Present())
	assert.True(t, req.Name.IsText())
	assert.Equal(t, "<Ann>", req.Name.Value())

	assert.False(t, req.Email.Present())

	assert.True(t, req.Subject.Present())
	assert.False(t, req.Subject.IsText())
	assert.Equal(t, "42", req.Subject.Value())

	assert.True(t, req.Message.Invalid())
	errs := req.CastErrors()
	require.Len(t, errs, 1)
	assert.Equal(t, "message", errs[0].Field)
	assert.Equal(t, "message must be text", errs[0].Message)
}

func TestSubmitRequestSanitizedOnlyTouchesText(t *testing.T) {
	req := SubmitRequest{
		Name:    Text(`"Bob"`),
		Message: Text("<script>hi</script>"),
		Subject: Field{value: "true", present: true},
	}

	clean := req.Sanitized()
	assert.Equal(t, "Bob", clean.Name.Value())
	assert.Equal(t, "scripthi/script", clean.Message.Value())
	assert.Equal(t, "true", clean.Subject.Value())
	assert.False(t, clean.Email.Present())

	candidate := clean.Candidate()
	assert.Equal(t, "Bob", candidate.Name)
	assert.Empty(t, candidate.Subject)
	assert.Empty(t, candidate.ID)
	assert.True(t, candidate.Timestamp.IsZero())
}

func TestValidationErrorSummary(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "name", Message: "name is required"},
		{Field: "message", Message: "message must be at least 3 characters"},
	}}
	assert.Equal(t, "name is required, message must be at least 3 characters", err.Summary())
	assert.Contains(t, err.Error(), "validation failed")
}
