package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent_RoundTripsUserEvent(t *testing.T) {
	userID := uuid.New()
	original := Event{
		ID:        "evt-1",
		Type:      MESSAGE_READ,
		Channel:   SEND_CHANNEL,
		UserID:    &userID,
		Data:      map[string]any{"count": float64(2)},
		Timestamp: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	decoded, err := decodeEvent(string(payload))

	require.NoError(t, err)
	assert.Equal(t, MESSAGE_READ, decoded.Type)
	assert.Equal(t, SEND_CHANNEL, decoded.Channel)
	require.NotNil(t, decoded.UserID)
	assert.Equal(t, userID, *decoded.UserID)
	assert.Equal(t, float64(2), decoded.Data["count"])
}

func TestDecodeEvent_InvalidPayload(t *testing.T) {
	_, err := decodeEvent("{not json")

	assert.Error(t, err)
}

func TestChannel_String(t *testing.T) {
	assert.Equal(t, "cleanhub.send", SEND_CHANNEL.String())
}
