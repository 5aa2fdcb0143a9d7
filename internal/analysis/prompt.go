package analysis

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt assembles the role-setting system message from the
// context and analysis mode. Output is deterministic for identical inputs.
func BuildSystemPrompt(ctx *Context, mode Mode) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an expert environmental data analyst specializing in Land Surface Temperature (LST) analysis and urban heat island studies. You are analyzing satellite temperature data for %s.\n\n", ctx.Location)

	fmt.Fprintf(&b, "CONTEXT DATA:\nLocation: %s\nData Type: %s\nAnalysis Timestamp: %s\n\n", ctx.Location, ctx.DataType, ctx.AnalysisTimestamp)

	fmt.Fprintf(&b, "TEMPERATURE STATISTICS:\n%s\n\n", marshalIndent(ctx.Statistics))

	if ctx.Classification != nil {
		fmt.Fprintf(&b, "ENVIRONMENTAL INSIGHTS:\nHeat Classification: %s\nSpatial Distribution: %s\nClimate Indicators: %s\n\n",
			marshalIndent(ctx.Classification.Heat),
			marshalIndent(ctx.Classification.Distribution),
			marshalIndent(ctx.Classification.Indicators))
	}

	fmt.Fprintf(&b, "RESPONSE STYLE:\n%s\n\n", mode.instruction())

	b.WriteString(`YOUR ROLE AND RESPONSIBILITIES:
1. Provide accurate, scientifically sound explanations about temperature patterns.
2. Explain urban heat island effects and their environmental implications.
3. Suggest practical recommendations for urban planning and sustainability.
4. Reference specific data points from the provided statistics.
5. Address the specific question while providing broader environmental context.`)

	return b.String()
}

// BuildUserPrompt wraps a raw question with the analysis framing sent as the
// user message.
func BuildUserPrompt(ctx *Context, question string) string {
	return fmt.Sprintf("Question: %s\n\nPlease analyze this question in the context of the %s temperature data and provide an expert-level response. Include relevant statistics from the data and explain the environmental implications.", question, ctx.Location)
}
