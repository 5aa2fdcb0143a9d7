// Package analysis assembles model-facing context and prompts from computed
// statistics and classification results.
package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/urbansense/lst-insight/internal/climate"
	"github.com/urbansense/lst-insight/internal/stats"
)

// DataType names the measurement the pipeline analyzes.
const DataType = "Land Surface Temperature (LST) from satellite imagery"

// ContextStatistics carries the display-formatted statistics included in
// prompts. Values are strings with fixed precision and unit suffixes; the
// numeric originals stay on Context.Stats for the rule-based responder.
type ContextStatistics struct {
	MinTemperature      string `json:"min_temperature"`
	MaxTemperature      string `json:"max_temperature"`
	MeanTemperature     string `json:"mean_temperature"`
	MedianTemperature   string `json:"median_temperature"`
	TemperatureRange    string `json:"temperature_range"`
	StandardDeviation   string `json:"standard_deviation"`
	Percentile10        string `json:"percentile_10"`
	Percentile25        string `json:"percentile_25"`
	Percentile75        string `json:"percentile_75"`
	Percentile90        string `json:"percentile_90"`
	HotPixelsCount      string `json:"hot_pixels_count"`
	ColdPixelsCount     string `json:"cold_pixels_count"`
	HotPixelsPercent    string `json:"hot_pixels_percentage"`
	ColdPixelsPercent   string `json:"cold_pixels_percentage"`
	TotalPixels         string `json:"total_pixels"`
	HeatIslandIntensity string `json:"heat_island_intensity"`
	VariabilityIndex    string `json:"temperature_variability_index"`
}

// Context is the structured environmental context handed to the model and
// the insight endpoints.
type Context struct {
	Location          string            `json:"location"`
	DataType          string            `json:"data_type"`
	AnalysisTimestamp string            `json:"analysis_timestamp"`
	Statistics        ContextStatistics `json:"statistics"`

	Stats          *stats.Summary          `json:"-"`
	Classification *climate.Classification `json:"-"`
}

// BuildContext derives a Context from a summary and its classification.
// Returns nil when the summary is absent so callers can route to the
// insufficient-data path.
func BuildContext(s *stats.Summary, c *climate.Classification, location string) *Context {
	if s == nil {
		return nil
	}

	variability := 0.0
	if s.Mean != 0 {
		variability = s.Std / s.Mean * 100
	}

	return &Context{
		Location:          location,
		DataType:          DataType,
		AnalysisTimestamp: clock.Now().Format("2006-01-02 15:04:05"),
		Statistics: ContextStatistics{
			MinTemperature:      formatCelsius(s.Min),
			MaxTemperature:      formatCelsius(s.Max),
			MeanTemperature:     formatCelsius(s.Mean),
			MedianTemperature:   formatCelsius(s.Median),
			TemperatureRange:    formatCelsius(s.Range),
			StandardDeviation:   formatCelsius(s.Std),
			Percentile10:        formatCelsius(s.P10),
			Percentile25:        formatCelsius(s.P25),
			Percentile75:        formatCelsius(s.P75),
			Percentile90:        formatCelsius(s.P90),
			HotPixelsCount:      fmt.Sprintf("%d", s.HotPixelCount),
			ColdPixelsCount:     fmt.Sprintf("%d", s.ColdPixelCount),
			HotPixelsPercent:    formatPercent(s.HotPixelCount, s.TotalPixelCount),
			ColdPixelsPercent:   formatPercent(s.ColdPixelCount, s.TotalPixelCount),
			TotalPixels:         fmt.Sprintf("%d", s.TotalPixelCount),
			HeatIslandIntensity: formatCelsius(s.Max - s.Mean),
			VariabilityIndex:    fmt.Sprintf("%.1f%%", variability),
		},
		Stats:          s,
		Classification: c,
	}
}

// InsightsSummary condenses the context into the short digest surfaced by
// the insights endpoint and the fallback notices.
func InsightsSummary(ctx *Context) []string {
	if ctx == nil {
		return nil
	}
	out := []string{
		fmt.Sprintf("Temperature range %s with an average of %s", ctx.Statistics.TemperatureRange, ctx.Statistics.MeanTemperature),
		fmt.Sprintf("Heat island intensity %s; %s of pixels exceed the 90th percentile", ctx.Statistics.HeatIslandIntensity, ctx.Statistics.HotPixelsPercent),
		fmt.Sprintf("Temperature variability index %s", ctx.Statistics.VariabilityIndex),
	}
	if c := ctx.Classification; c != nil {
		out = append(out,
			fmt.Sprintf("%s urban heat island effect with %s", c.Indicators.UHILevel, strings.ToLower(c.Indicators.EnvironmentalRisk)),
			fmt.Sprintf("%s; thermal comfort: %s", c.Indicators.TemperatureStress, c.Indicators.ThermalComfort),
		)
	}
	return out
}

func formatCelsius(v float64) string {
	return fmt.Sprintf("%.2f°C", v)
}

func formatPercent(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

func marshalIndent(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
