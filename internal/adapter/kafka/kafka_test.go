package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbansense/lst-insight/internal/assistant"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	event := assistant.AnswerEvent{
		QueryID:    "q-1",
		Question:   "What is the hottest temperature?",
		Mode:       "technical",
		Source:     "model",
		AnsweredAt: now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("q-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"source":"model"`)
	assert.Contains(t, string(msg.Value), `"question":"What is the hottest temperature?"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "source", msg.Headers[0].Key)
	assert.Equal(t, []byte("model"), msg.Headers[0].Value)
	assert.Equal(t, "answered_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}
