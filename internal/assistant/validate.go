package assistant

import (
	"fmt"
	"strings"
)

// refusalPhrases are degenerate-response markers: any answer containing one
// is rejected regardless of length.
var refusalPhrases = []string{
	"i don't have access",
	"i cannot access",
	"i'm unable to",
	"error occurred",
	"something went wrong",
}

const (
	minResponseChars = 10
	minResponseWords = 5
)

// ValidateResponse rejects empty, too-short, refusal-like, or too-sparse
// generated text. A nil return means the text is usable as an answer.
func ValidateResponse(text string) error {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minResponseChars {
		return fmt.Errorf("response too short: %d characters", len(trimmed))
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return fmt.Errorf("response contains refusal phrase %q", phrase)
		}
	}

	if words := len(strings.Fields(trimmed)); words < minResponseWords {
		return fmt.Errorf("response too sparse: %d words", words)
	}
	return nil
}
