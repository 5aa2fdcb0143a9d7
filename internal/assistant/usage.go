package assistant

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// UsageStats is a point-in-time snapshot of model usage counters.
type UsageStats struct {
	TotalRequests      int            `json:"total_requests"`
	SuccessfulRequests int            `json:"successful_requests"`
	FailedRequests     int            `json:"failed_requests"`
	FallbackRequests   int            `json:"fallback_requests"`
	LastRequestTime    *time.Time     `json:"last_request_time"`
	ErrorTypes         map[string]int `json:"error_types"`
}

// UsageTracker accumulates per-query usage counters. Safe for concurrent
// use; each query records exactly once.
type UsageTracker struct {
	mu    sync.Mutex
	clock clockwork.Clock
	stats UsageStats
}

// NewUsageTracker creates a tracker. A nil clock selects the real clock.
func NewUsageTracker(clock clockwork.Clock) *UsageTracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &UsageTracker{
		clock: clock,
		stats: UsageStats{ErrorTypes: make(map[string]int)},
	}
}

// Record logs the outcome of one query against the model.
func (t *UsageTracker) Record(success bool, errorType string, fallbackUsed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stats.TotalRequests++
	now := t.clock.Now()
	t.stats.LastRequestTime = &now

	if success {
		t.stats.SuccessfulRequests++
		return
	}

	t.stats.FailedRequests++
	if errorType != "" {
		t.stats.ErrorTypes[errorType]++
	}
	if fallbackUsed {
		t.stats.FallbackRequests++
	}
}

// Snapshot returns a copy of the current counters.
func (t *UsageTracker) Snapshot() UsageStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.stats
	out.ErrorTypes = make(map[string]int, len(t.stats.ErrorTypes))
	for k, v := range t.stats.ErrorTypes {
		out.ErrorTypes[k] = v
	}
	if t.stats.LastRequestTime != nil {
		ts := *t.stats.LastRequestTime
		out.LastRequestTime = &ts
	}
	return out
}
