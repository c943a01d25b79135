package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelToTopic(t *testing.T) {
	topic, err := ChannelToTopic(ChannelMessageSubmitted)
	require.NoError(t, err)
	assert.Equal(t, "contact-message-submitted", topic)

	topic, err = ChannelToTopic("contact:message_archived")
	require.NoError(t, err)
	assert.Equal(t, "contact-message-archived", topic)

	_, err = ChannelToTopic("contact::submitted")
	assert.Error(t, err)
}

func TestNewEventRoundTripsPayload(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	evt, err := NewEvent(EventMessageSubmitted, "id-1", MessageSubmittedPayload{
		MessageID: "id-1",
		Name:      "Ann",
		Subject:   "No Subject",
		Timestamp: at,
	})
	require.NoError(t, err)
	assert.Equal(t, EventMessageSubmitted, evt.Type)
	assert.Equal(t, "id-1", evt.Key)
	assert.False(t, evt.Timestamp.IsZero())

	var got MessageSubmittedPayload
	require.NoError(t, evt.UnmarshalPayload(&got))
	assert.Equal(t, "Ann", got.Name)
	assert.True(t, at.Equal(got.Timestamp))
}

func TestNewPublisherDrivers(t *testing.T) {
	p, err := NewPublisher(DefaultConfig())
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), ChannelMessageSubmitted, &Event{}))
	assert.NoError(t, p.Close())

	_, err = NewPublisher(Config{Driver: "carrier-pigeon"})
	assert.Error(t, err)
}
