package analysis

import "fmt"

// Mode selects the target audience and depth of a generated answer.
type Mode string

const (
	// ModeComprehensive is the default: full detail for a general audience.
	ModeComprehensive Mode = "comprehensive"
	// ModeTechnical targets specialists and leans on statistical terminology.
	ModeTechnical Mode = "technical"
	// ModeSimple targets non-experts and avoids jargon.
	ModeSimple Mode = "simple"
)

// ParseMode maps a request string onto a Mode. An empty string selects
// ModeComprehensive; anything else unrecognized is an error.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeComprehensive, nil
	case ModeComprehensive, ModeTechnical, ModeSimple:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown analysis mode %q", s)
	}
}

func (m Mode) instruction() string {
	switch m {
	case ModeTechnical:
		return "Provide a technical analysis with statistical terminology, suitable for climate scientists and GIS specialists."
	case ModeSimple:
		return "Explain in simple, non-technical language that a community member without a science background can follow."
	default:
		return "Provide a comprehensive analysis covering the statistics, their spatial meaning, and practical implications for urban planning."
	}
}
