package responder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbansense/lst-insight/internal/climate"
	"github.com/urbansense/lst-insight/internal/stats"
)

const testLocation = "Kilimani area, Nairobi, Kenya"

func testResponder(t *testing.T) *Responder {
	t.Helper()
	values := []float64{20, 22, 24, 26, 28, 30, 32, 34, 36, 38}
	s := stats.Compute(values)
	require.NotNil(t, s)
	return New(testLocation, s, climate.Classify(s, values))
}

func TestAnswerRouting(t *testing.T) {
	r := testResponder(t)

	cases := []struct {
		name     string
		question string
		want     string
	}{
		{"maximum", "What is the highest temperature?", "The highest temperature recorded"},
		{"hottest", "How hot does the hottest spot get?", "The highest temperature recorded"},
		{"minimum", "Where is the coldest temperature?", "The lowest temperature recorded"},
		{"mean", "What is the average temperature?", "The average surface temperature"},
		{"range", "What is the temperature range?", "The temperature range spans"},
		{"heat island", "Tell me about the heat island effect", "heat island characteristics"},
		{"hotspots", "Where are the hotspots?", "heat island characteristics"},
		{"statistics", "Show me the statistics", "Statistical summary"},
		{"distribution", "What does the distribution look like?", "Statistical summary"},
		{"area", "What area does this cover?", "This analysis covers"},
		{"data source", "What is the data source?", "derived from satellite imagery"},
		{"default", "Tell me something interesting", "Overview of the"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Answer(tc.question)
			assert.Contains(t, got, tc.want)
		})
	}
}

func TestAnswerValues(t *testing.T) {
	r := testResponder(t)

	t.Run("maximum", func(t *testing.T) {
		got := r.Answer("What is the maximum temperature?")
		assert.Contains(t, got, "38.0°C")
		assert.Contains(t, got, "Moderate Heat Stress")
		assert.Contains(t, got, "Very Strong")
	})

	t.Run("range", func(t *testing.T) {
		got := r.Answer("How wide is the temperature range?")
		assert.Contains(t, got, "18.0°C")
		assert.Contains(t, got, "20.0°C")
		assert.Contains(t, got, "38.0°C")
	})

	t.Run("heat island percentages", func(t *testing.T) {
		got := r.Answer("Where are the hot spots?")
		assert.Contains(t, got, "10.0%")
		assert.Contains(t, got, "36.2°C")
	})
}

func TestAnswerDeterministic(t *testing.T) {
	r := testResponder(t)
	questions := []string{
		"What is the hottest temperature?",
		"Tell me about heat islands",
		"Give me an overview",
	}
	for _, q := range questions {
		first := r.Answer(q)
		second := r.Answer(q)
		assert.Equal(t, first, second, "question %q", q)
	}
}

func TestAnswerNilClassification(t *testing.T) {
	values := []float64{25, 27, 29, 31, 33}
	s := stats.Compute(values)
	r := New(testLocation, s, nil)

	got := r.Answer("What is the maximum temperature?")
	assert.Contains(t, got, "33.0°C")
	assert.NotContains(t, got, "Environmental context")

	got = r.Answer("Show me the statistics")
	assert.Contains(t, got, fmt.Sprintf("Total data points: %d pixels", 5))
	assert.NotContains(t, got, "Environmental assessment")
}

func TestAnswerAlwaysReturns(t *testing.T) {
	r := testResponder(t)
	for _, q := range []string{"", "???", "xyzzy", "why"} {
		assert.NotEmpty(t, r.Answer(q))
	}
}
