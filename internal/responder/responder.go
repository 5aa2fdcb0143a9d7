// Package responder produces deterministic answers from computed statistics
// without calling any external model. It serves both as the fallback path
// and as the whole answer path when no model is configured.
package responder

import (
	"fmt"
	"strings"

	"github.com/urbansense/lst-insight/internal/climate"
	"github.com/urbansense/lst-insight/internal/stats"
)

// rule pairs a question predicate with its handler. Rules are evaluated in
// priority order; the final rule always matches.
type rule struct {
	matches func(q string) bool
	answer  func(r *Responder, q string) string
}

// Responder answers questions about one location's temperature data.
type Responder struct {
	location string
	stats    *stats.Summary
	class    *climate.Classification
	rules    []rule
}

// New builds a responder for the given statistics. The classification may be
// nil; environmental-context sentences are omitted in that case.
func New(location string, s *stats.Summary, c *climate.Classification) *Responder {
	r := &Responder{location: location, stats: s, class: c}
	r.rules = []rule{
		{matchesAll(tempWords, []string{"highest", "maximum", "hottest"}), (*Responder).answerMax},
		{matchesAll(tempWords, []string{"lowest", "minimum", "coldest"}), (*Responder).answerMin},
		{matchesAll(tempWords, []string{"average", "mean"}), (*Responder).answerMean},
		{matchesAll(tempWords, []string{"range"}), (*Responder).answerRange},
		{matchesAny("heat island", "urban heat", "hot spots", "hotspots"), (*Responder).answerHeatIsland},
		{matchesAny("statistics", "stats", "distribution"), (*Responder).answerStatistics},
		{matchesAny("area", "location", "where"), (*Responder).answerArea},
		{matchesAny("data", "source", "satellite", "how"), (*Responder).answerDataSource},
		{func(string) bool { return true }, (*Responder).answerSummary},
	}
	return r
}

var tempWords = []string{"temperature", "temp", "hot", "cold", "warm"}

// Answer walks the rules in order and returns the first match. Never fails;
// identical inputs yield byte-identical output.
func (r *Responder) Answer(question string) string {
	q := strings.ToLower(question)
	for _, rl := range r.rules {
		if rl.matches(q) {
			return rl.answer(r, q)
		}
	}
	return r.answerSummary(q) // unreachable, the last rule always matches
}

func matchesAny(words ...string) func(string) bool {
	return func(q string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}
}

// matchesAll requires a hit from each word group.
func matchesAll(groups ...[]string) func(string) bool {
	return func(q string) bool {
		for _, g := range groups {
			if !matchesAny(g...)(q) {
				return false
			}
		}
		return true
	}
}

func (r *Responder) answerMax(string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The highest temperature recorded in the %s is %.1f°C. This represents the hottest surface temperature detected in the satellite imagery, likely corresponding to built-up areas with minimal vegetation or water bodies.", r.location, r.stats.Max)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nEnvironmental context: this falls under the %s category and indicates %s urban heat island intensity.", c.Indicators.TemperatureStress, c.Indicators.UHILevel)
	}
	return b.String()
}

func (r *Responder) answerMin(string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The lowest temperature recorded is %.1f°C. These cooler areas typically represent locations with vegetation, water bodies, or shaded areas that provide natural cooling effects.", r.stats.Min)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nThermal comfort: the overall area shows %s conditions.", c.Indicators.ThermalComfort)
	}
	return b.String()
}

func (r *Responder) answerMean(string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The average surface temperature across the %s is %.1f°C, with a standard deviation of %.1f°C.", r.location, r.stats.Mean, r.stats.Std)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nAssessment: this represents %s with %s environmental risk.", c.Indicators.TemperatureStress, strings.TrimSuffix(c.Indicators.EnvironmentalRisk, " Risk"))
	}
	return b.String()
}

func (r *Responder) answerRange(string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The temperature range spans %.1f°C, from %.1f°C to %.1f°C. A wide range suggests diverse land use patterns affecting local temperatures.", r.stats.Range, r.stats.Min, r.stats.Max)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nUHI analysis: this range indicates %s urban heat island effects with an intensity of %.1f°C.", c.Indicators.UHILevel, c.Indicators.UHIIntensity)
	}
	return b.String()
}

func (r *Responder) answerHeatIsland(string) string {
	var b strings.Builder
	hotPct := percent(r.stats.HotPixelCount, r.stats.TotalPixelCount)
	fmt.Fprintf(&b, "Approximately %.1f%% of the %s shows heat island characteristics (temperatures above %.1f°C).", hotPct, r.location, r.stats.P90)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nClassification: %s UHI intensity with %s environmental risk.", c.Indicators.UHILevel, strings.TrimSuffix(c.Indicators.EnvironmentalRisk, " Risk"))
	}
	b.WriteString("\n\nTypical heat island areas include dense urban development, zones with minimal vegetation, commercial and industrial districts, and paved surfaces. Increasing green spaces and tree coverage in these areas helps mitigate heat island effects.")
	return b.String()
}

func (r *Responder) answerStatistics(string) string {
	s := r.stats
	var b strings.Builder
	fmt.Fprintf(&b, "Statistical summary for the %s temperature data:\n", r.location)
	fmt.Fprintf(&b, "- Mean temperature: %.1f°C\n", s.Mean)
	fmt.Fprintf(&b, "- Median temperature: %.1f°C\n", s.Median)
	fmt.Fprintf(&b, "- Standard deviation: %.1f°C\n", s.Std)
	fmt.Fprintf(&b, "- 25th percentile: %.1f°C\n", s.P25)
	fmt.Fprintf(&b, "- 75th percentile: %.1f°C\n", s.P75)
	fmt.Fprintf(&b, "- Temperature range: %.1f°C\n", s.Range)
	fmt.Fprintf(&b, "- Total data points: %d pixels", s.TotalPixelCount)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nEnvironmental assessment: %s UHI level, %s, %s.", c.Indicators.UHILevel, c.Indicators.ThermalComfort, strings.ToLower(c.Indicators.EnvironmentalRisk))
	}
	return b.String()
}

func (r *Responder) answerArea(string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This analysis covers the %s. The data reveals surface temperature variations across different land use types: residential areas show mixed patterns, commercial zones run warmer due to built infrastructure, green spaces stay cooler, and road networks show elevated temperatures from asphalt surfaces.", r.location)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nOverall assessment: the area shows %s urban heat island effects with %s thermal conditions.", c.Indicators.UHILevel, c.Indicators.ThermalComfort)
	}
	return b.String()
}

func (r *Responder) answerDataSource(string) string {
	return fmt.Sprintf("Land Surface Temperature (LST) data is derived from satellite imagery, measuring the temperature of the Earth's surface as observed from space. It differs from air temperature measured by weather stations and is well suited for identifying urban heat islands, environmental monitoring, and urban planning. The current dataset covers %d measurement points across the %s.", r.stats.TotalPixelCount, r.location)
}

func (r *Responder) answerSummary(string) string {
	s := r.stats
	var b strings.Builder
	fmt.Fprintf(&b, "Overview of the %s temperature analysis:\n", r.location)
	fmt.Fprintf(&b, "- Temperature range: %.1f°C (from %.1f°C to %.1f°C)\n", s.Range, s.Min, s.Max)
	fmt.Fprintf(&b, "- Average temperature: %.1f°C\n", s.Mean)
	fmt.Fprintf(&b, "- Heat island areas: %.1f%% of total area\n", percent(s.HotPixelCount, s.TotalPixelCount))
	fmt.Fprintf(&b, "- Data coverage: %d measurement points", s.TotalPixelCount)
	if c := r.class; c != nil {
		fmt.Fprintf(&b, "\n\nEnvironmental assessment: %s UHI level, %s, %s.", c.Indicators.UHILevel, c.Indicators.ThermalComfort, strings.ToLower(c.Indicators.EnvironmentalRisk))
	}
	b.WriteString("\n\nAsk about specific temperatures, heat islands, statistics, or the data source for more detail.")
	return b.String()
}

func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
