// Package climate derives heat classification thresholds, distribution shape
// labels, and climate indicators from temperature statistics.
package climate

import (
	"math"

	"github.com/urbansense/lst-insight/internal/stats"
)

// HeatClassification holds the percentile-derived temperature thresholds
// used to bucket pixels into heat categories.
type HeatClassification struct {
	ExtremeHot  float64 `json:"extreme_hot_threshold"`  // p95
	VeryHot     float64 `json:"very_hot_threshold"`     // p90
	Hot         float64 `json:"hot_threshold"`          // p75
	ModerateMin float64 `json:"moderate_range_min"`     // p25
	ModerateMax float64 `json:"moderate_range_max"`     // p75
	Cool        float64 `json:"cool_threshold"`         // p25
	VeryCool    float64 `json:"very_cool_threshold"`    // p10
}

// SpatialDistribution describes the shape of the temperature distribution.
type SpatialDistribution struct {
	Shape         string  `json:"distribution_shape"`
	Skewness      float64 `json:"skewness_value"`
	Kurtosis      float64 `json:"kurtosis_value"`
	Tailedness    string  `json:"distribution_type"`
	Concentration string  `json:"data_concentration"`
}

// ClimateIndicators aggregates the heuristic environmental indices.
// UHIIntensity (max-min) and HeatIslandIntensity (max-mean) are distinct
// quantities; both are kept so callers can choose.
type ClimateIndicators struct {
	UHIIntensity        float64 `json:"uhi_intensity"`
	HeatIslandIntensity float64 `json:"heat_island_intensity"`
	UHILevel            string  `json:"uhi_level"`
	TemperatureStress   string  `json:"temperature_stress_level"`
	ThermalComfort      string  `json:"thermal_comfort_index"`
	EnvironmentalRisk   string  `json:"environmental_risk_level"`
}

// Classification is the full output of Classify.
type Classification struct {
	Heat         HeatClassification  `json:"heat_classification"`
	Distribution SpatialDistribution `json:"spatial_distribution"`
	Indicators   ClimateIndicators   `json:"climate_indicators"`
}

// Classify derives the classification from a statistics summary and the
// valid pixel values. Pure function: identical inputs yield identical
// output. Returns nil when the summary is absent.
func Classify(s *stats.Summary, values []float64) *Classification {
	if s == nil {
		return nil
	}

	skew := stats.Skewness(values)
	kurt := stats.Kurtosis(values)

	return &Classification{
		Heat: HeatClassification{
			ExtremeHot:  stats.Percentile(values, 95),
			VeryHot:     s.P90,
			Hot:         s.P75,
			ModerateMin: s.P25,
			ModerateMax: s.P75,
			Cool:        s.P25,
			VeryCool:    s.P10,
		},
		Distribution: SpatialDistribution{
			Shape:         distributionShape(skew),
			Skewness:      skew,
			Kurtosis:      kurt,
			Tailedness:    tailedness(kurt),
			Concentration: concentration(skew, kurt),
		},
		Indicators: ClimateIndicators{
			UHIIntensity:        s.Max - s.Min,
			HeatIslandIntensity: s.Max - s.Mean,
			UHILevel:            uhiLevel(s.Max - s.Min),
			TemperatureStress:   temperatureStress(s.Mean),
			ThermalComfort:      ThermalComfort(s.Mean),
			EnvironmentalRisk:   environmentalRisk(s),
		},
	}
}

func distributionShape(skew float64) string {
	switch {
	case skew > 0.5:
		return "right-skewed"
	case skew < -0.5:
		return "left-skewed"
	default:
		return "approximately normal"
	}
}

func tailedness(kurt float64) string {
	switch {
	case kurt > 3:
		return "heavy-tailed"
	case kurt < 3:
		return "light-tailed"
	default:
		return "normal-tailed"
	}
}

func concentration(skew, kurt float64) string {
	if math.Abs(skew) < 0.5 && math.Abs(kurt-3) < 1 {
		return "concentrated around mean"
	}
	return "dispersed"
}

func uhiLevel(intensity float64) string {
	switch {
	case intensity > 10:
		return "Very Strong"
	case intensity > 7:
		return "Strong"
	case intensity > 5:
		return "Moderate"
	case intensity > 3:
		return "Weak"
	default:
		return "Very Weak"
	}
}

func temperatureStress(mean float64) string {
	switch {
	case mean > 35:
		return "Extreme Heat Stress"
	case mean > 30:
		return "High Heat Stress"
	case mean > 25:
		return "Moderate Heat Stress"
	case mean > 20:
		return "Low Heat Stress"
	default:
		return "No Heat Stress"
	}
}

// ThermalComfort maps a mean temperature onto the piecewise comfort bands.
func ThermalComfort(mean float64) string {
	switch {
	case mean >= 18 && mean <= 24:
		return "Optimal Comfort"
	case (mean >= 15 && mean < 18) || (mean > 24 && mean <= 27):
		return "Acceptable Comfort"
	case (mean >= 12 && mean < 15) || (mean > 27 && mean <= 30):
		return "Slight Discomfort"
	default:
		return "Significant Discomfort"
	}
}

// environmentalRisk accumulates risk factors from maximum temperature,
// variability, and range, then maps the total onto a four-level scale.
func environmentalRisk(s *stats.Summary) string {
	risk := 0

	switch {
	case s.Max > 40:
		risk += 3
	case s.Max > 35:
		risk += 2
	case s.Max > 30:
		risk++
	}

	switch {
	case s.Std > 5:
		risk += 2
	case s.Std > 3:
		risk++
	}

	switch {
	case s.Range > 15:
		risk += 2
	case s.Range > 10:
		risk++
	}

	switch {
	case risk >= 5:
		return "High Risk"
	case risk >= 3:
		return "Moderate Risk"
	case risk >= 1:
		return "Low Risk"
	default:
		return "Minimal Risk"
	}
}
