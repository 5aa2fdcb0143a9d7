package assistant

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"
)

// AnswerEvent is published after each answered question for downstream
// consumers.
type AnswerEvent struct {
	QueryID    string    `json:"query_id"`
	Question   string    `json:"question"`
	Mode       string    `json:"mode"`
	Source     string    `json:"source"`
	AnsweredAt time.Time `json:"answered_at"`
}

// EventPublisher emits answer events. Implementations must tolerate being
// called concurrently.
type EventPublisher interface {
	PublishAnswer(ctx context.Context, event AnswerEvent) error
}

// Answer sources.
const (
	SourceModel            = "model"
	SourceFallback         = "fallback"
	SourceRuleBased        = "rule_based"
	SourceInsufficientData = "insufficient_data"
)

func newQueryID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(b)
}
