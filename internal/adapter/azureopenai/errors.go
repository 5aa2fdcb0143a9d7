package azureopenai

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrorKind categorizes a failed model call so the orchestrator can pick a
// recovery path.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindRateLimit      ErrorKind = "rate_limit"
	KindTimeout        ErrorKind = "timeout"
	KindNetwork        ErrorKind = "network"
	KindQuality        ErrorKind = "quality"
	KindUnknown        ErrorKind = "unknown"
)

// APIError is the typed error returned for failed chat completion calls.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("azure openai: %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("azure openai: %s: %s", e.Kind, e.Message)
}

// Classify maps an error onto an ErrorKind. Typed APIErrors carry their kind
// directly; anything else falls back to substring matching on the lowered
// error text, the last resort for opaque transport errors.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit") || strings.Contains(msg, "quota"):
		return KindRateLimit
	case strings.Contains(msg, "authentication") || strings.Contains(msg, "unauthorized"):
		return KindAuthentication
	case strings.Contains(msg, "timeout"):
		return KindTimeout
	case strings.Contains(msg, "network") || strings.Contains(msg, "connection"):
		return KindNetwork
	default:
		return KindUnknown
	}
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case 401, 403:
		return KindAuthentication
	case 429:
		return KindRateLimit
	case 408, 504:
		return KindTimeout
	default:
		return KindUnknown
	}
}
