package assistant

import "time"

// RetryPolicy bounds rate-limit retries with exponential backoff.
type RetryPolicy struct {
	// MaxRetries is the number of backoff-and-retry cycles before giving up.
	MaxRetries int
	// Base is the first delay; each retry doubles it.
	Base time.Duration
}

// DefaultRetryPolicy waits 1s, 2s, 4s before falling back.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 3, Base: time.Second}

// Delay returns the wait before retry number attempt (zero-based).
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return p.Base << attempt
}
