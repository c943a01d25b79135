package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/contact-service/internal/domain"
)

func TestValidateMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  domain.Message
		want []string
	}{
		{"valid", domain.Message{Name: "Ann", Message: "Hey"}, nil},
		{"missing name", domain.Message{Message: "Hello"}, []string{"name is required"}},
		{"missing message", domain.Message{Name: "Ann"}, []string{"message is required"}},
		{"short message", domain.Message{Name: "Ann", Message: "hi"}, []string{"message must be at least 3 characters"}},
		{"both", domain.Message{Message: "hi"}, []string{"name is required", "message must be at least 3 characters"}},
		{"multibyte counts runes", domain.Message{Name: "Zoë", Message: "héé"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMessage(&tt.msg)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			got := make([]string, len(verr.Fields))
			for i, f := range verr.Fields {
				got[i] = f.Message
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPrepareLeavesRejectedMessageUntouched(t *testing.T) {
	msg := &domain.Message{Message: "hi"}
	require.Error(t, prepare(msg, time.Now))
	assert.Empty(t, msg.ID)
	assert.Empty(t, msg.Subject)
	assert.True(t, msg.Timestamp.IsZero())
}

func TestPrepareGeneratesOrderedIDs(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &domain.Message{Name: "a", Message: "one"}
	b := &domain.Message{Name: "b", Message: "two"}
	require.NoError(t, prepare(a, func() time.Time { return at }))
	require.NoError(t, prepare(b, func() time.Time { return at }))
	assert.Less(t, a.ID, b.ID)
}

func TestParseConsistency(t *testing.T) {
	assert.Equal(t, gocql.Quorum, parseConsistency("quorum"))
	assert.Equal(t, gocql.LocalQuorum, parseConsistency("LOCAL_QUORUM"))
	assert.Equal(t, gocql.LocalOne, parseConsistency(""))
}
