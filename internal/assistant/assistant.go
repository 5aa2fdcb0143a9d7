// Package assistant orchestrates answer generation: it builds prompts from
// the computed statistics, calls the external model with retry and
// validation, and degrades to the rule-based responder when the model is
// absent or failing.
package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/urbansense/lst-insight/internal/adapter/azureopenai"
	"github.com/urbansense/lst-insight/internal/analysis"
	"github.com/urbansense/lst-insight/internal/climate"
	"github.com/urbansense/lst-insight/internal/observability"
	"github.com/urbansense/lst-insight/internal/responder"
	"github.com/urbansense/lst-insight/internal/stats"
)

// InsufficientDataMessage is the terminal response when no statistics exist.
const InsufficientDataMessage = "I don't have enough data to analyze. Please ensure the LST data is loaded properly."

// ModelClient is the surface the orchestrator needs from the chat completion
// adapter. A nil client means the model is not configured.
type ModelClient interface {
	ChatCompletion(ctx context.Context, messages []azureopenai.Message, params azureopenai.Params) (string, error)
}

// Assistant answers questions about one location's temperature data.
type Assistant struct {
	client    ModelClient
	location  string
	retry     RetryPolicy
	usage     *UsageTracker
	publisher EventPublisher
	metrics   *observability.Metrics
	logger    *slog.Logger
	clock     clockwork.Clock
}

// New creates an orchestrator. client and publisher may be nil (model
// disabled, event publishing disabled). A nil clock selects the real clock.
func New(client ModelClient, location string, retry RetryPolicy, usage *UsageTracker, publisher EventPublisher, metrics *observability.Metrics, logger *slog.Logger, clk clockwork.Clock) *Assistant {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	return &Assistant{
		client:    client,
		location:  location,
		retry:     retry,
		usage:     usage,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		clock:     clk,
	}
}

// Usage returns a snapshot of the accumulated usage counters.
func (a *Assistant) Usage() UsageStats {
	return a.usage.Snapshot()
}

// AnswerQuestion produces an answer for the question given the current
// statistics. It always returns a usable string; model failures degrade to
// the rule-based responder with a short notice, never to an error.
func (a *Assistant) AnswerQuestion(ctx context.Context, question string, s *stats.Summary, c *climate.Classification, mode analysis.Mode) string {
	if s == nil {
		a.metrics.QuestionsAnswered.WithLabelValues("insufficient_data").Inc()
		a.publish(ctx, question, mode, SourceInsufficientData)
		return InsufficientDataMessage
	}

	ruleBased := responder.New(a.location, s, c)

	if a.client == nil {
		a.metrics.QuestionsAnswered.WithLabelValues("fallback").Inc()
		a.publish(ctx, question, mode, SourceRuleBased)
		return ruleBased.Answer(question)
	}

	actx := analysis.BuildContext(s, c, a.location)
	messages := []azureopenai.Message{
		{Role: "system", Content: analysis.BuildSystemPrompt(actx, mode)},
		{Role: "user", Content: analysis.BuildUserPrompt(actx, question)},
	}

	text, kind, err := a.generate(ctx, messages, azureopenai.DefaultParams)
	if err != nil {
		a.logger.Warn("model answer failed, using rule-based responder",
			"kind", kind,
			"error", err)
		a.usage.Record(false, string(kind), true)
		a.metrics.ModelErrors.WithLabelValues(string(kind)).Inc()
		a.metrics.QuestionsAnswered.WithLabelValues("fallback").Inc()
		a.publish(ctx, question, mode, SourceFallback)
		return a.fallbackNotice(kind, s) + "\n\n" + ruleBased.Answer(question)
	}

	a.usage.Record(true, "", false)
	a.metrics.QuestionsAnswered.WithLabelValues("model").Inc()
	a.publish(ctx, question, mode, SourceModel)
	return a.formatAnswer(text, mode)
}

// AdvisePlan generates free-form advisory text from prepared prompts, with
// the same retry and validation plumbing as question answering. On any
// failure the provided fallback text is returned.
func (a *Assistant) AdvisePlan(ctx context.Context, systemPrompt, userPrompt, fallback string) string {
	if a.client == nil {
		return fallback
	}

	messages := []azureopenai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}
	params := azureopenai.Params{MaxTokens: 4000, Temperature: 0.7, TopP: 0.9}

	text, kind, err := a.generate(ctx, messages, params)
	if err != nil {
		a.logger.Warn("advisory generation failed, using prepared fallback",
			"kind", kind,
			"error", err)
		a.usage.Record(false, string(kind), true)
		a.metrics.ModelErrors.WithLabelValues(string(kind)).Inc()
		return fallback
	}

	a.usage.Record(true, "", false)
	return text
}

// generate runs the call-validate loop. Rate-limit errors are retried with
// exponential backoff up to the policy bound; every other failure kind
// returns immediately. Usage is never recorded here so each query counts
// exactly once regardless of retries.
func (a *Assistant) generate(ctx context.Context, messages []azureopenai.Message, params azureopenai.Params) (string, azureopenai.ErrorKind, error) {
	for attempt := 0; ; attempt++ {
		start := a.clock.Now()
		text, err := a.client.ChatCompletion(ctx, messages, params)
		a.metrics.ModelCallDuration.Observe(a.clock.Since(start).Seconds())

		if err != nil {
			kind := azureopenai.Classify(err)
			if kind == azureopenai.KindRateLimit && attempt < a.retry.MaxRetries {
				delay := a.retry.Delay(attempt)
				a.logger.Warn("rate limited, backing off",
					"attempt", attempt,
					"delay", delay)
				a.metrics.ModelRetries.Inc()
				a.clock.Sleep(delay)
				continue
			}
			return "", kind, err
		}

		if verr := ValidateResponse(text); verr != nil {
			return "", azureopenai.KindQuality, verr
		}
		return text, "", nil
	}
}

func (a *Assistant) formatAnswer(text string, mode analysis.Mode) string {
	var header string
	switch mode {
	case analysis.ModeTechnical:
		header = "Technical Analysis"
	case analysis.ModeSimple:
		header = "Simple Explanation"
	default:
		header = "Comprehensive Analysis"
	}
	return fmt.Sprintf("%s\n\n%s\n\n---\nAnalysis based on %s Land Surface Temperature satellite data. Mode: %s.", header, text, a.location, mode)
}

// fallbackNotice names the error category and restates the two headline
// statistics so the user is never left with zero information.
func (a *Assistant) fallbackNotice(kind azureopenai.ErrorKind, s *stats.Summary) string {
	base := fmt.Sprintf("Based on available data: Temperature range %.1f°C, Average %.1f°C.", s.Range, s.Mean)
	switch kind {
	case azureopenai.KindAuthentication:
		return "Authentication issue: unable to reach the analysis model. " + base + " Please check API credentials."
	case azureopenai.KindRateLimit:
		return "Rate limit: max retries exceeded. " + base + " Please wait a moment before asking again."
	case azureopenai.KindTimeout:
		return "Timeout: the model request took too long. " + base + " Please try a simpler question."
	case azureopenai.KindNetwork:
		return "Network issue: could not reach the analysis model. " + base + " Please check connectivity."
	case azureopenai.KindQuality:
		return "The generated answer failed quality checks. " + base + " Using rule-based analysis instead."
	default:
		return "Analysis service temporarily unavailable. " + base + " Using rule-based analysis instead."
	}
}

func (a *Assistant) publish(ctx context.Context, question string, mode analysis.Mode, source string) {
	if a.publisher == nil {
		return
	}
	event := AnswerEvent{
		QueryID:    newQueryID(),
		Question:   question,
		Mode:       string(mode),
		Source:     source,
		AnsweredAt: a.clock.Now(),
	}
	if err := a.publisher.PublishAnswer(ctx, event); err != nil {
		a.logger.Warn("answer event publish failed", "error", err)
	}
}
