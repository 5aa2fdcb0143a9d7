package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbansense/lst-insight/internal/stats"
)

func TestClassifyNilSummary(t *testing.T) {
	assert.Nil(t, Classify(nil, nil))
}

func TestClassifyEvenSpread(t *testing.T) {
	values := []float64{20, 22, 24, 26, 28, 30, 32, 34, 36, 38}
	s := stats.Compute(values)
	require.NotNil(t, s)

	c := Classify(s, values)
	require.NotNil(t, c)

	t.Run("heat thresholds", func(t *testing.T) {
		assert.InDelta(t, 37.1, c.Heat.ExtremeHot, 1e-9)
		assert.InDelta(t, 36.2, c.Heat.VeryHot, 1e-9)
		assert.InDelta(t, 33.5, c.Heat.Hot, 1e-9)
		assert.InDelta(t, 24.5, c.Heat.ModerateMin, 1e-9)
		assert.InDelta(t, 33.5, c.Heat.ModerateMax, 1e-9)
		assert.InDelta(t, 24.5, c.Heat.Cool, 1e-9)
		assert.InDelta(t, 21.8, c.Heat.VeryCool, 1e-9)
	})

	t.Run("distribution", func(t *testing.T) {
		assert.InDelta(t, 0, c.Distribution.Skewness, 1e-12)
		assert.Equal(t, "approximately normal", c.Distribution.Shape)
		assert.InDelta(t, 2.536, c.Distribution.Kurtosis, 0.01)
		assert.Equal(t, "light-tailed", c.Distribution.Tailedness)
		assert.Equal(t, "concentrated around mean", c.Distribution.Concentration)
	})

	t.Run("indicators", func(t *testing.T) {
		assert.InDelta(t, 18, c.Indicators.UHIIntensity, 1e-9)
		assert.InDelta(t, 9, c.Indicators.HeatIslandIntensity, 1e-9)
		assert.Equal(t, "Very Strong", c.Indicators.UHILevel)
		assert.Equal(t, "Moderate Heat Stress", c.Indicators.TemperatureStress)
		assert.Equal(t, "Slight Discomfort", c.Indicators.ThermalComfort)
		// max 38 (+2), std 5.74 (+2), range 18 (+2) -> 6
		assert.Equal(t, "High Risk", c.Indicators.EnvironmentalRisk)
	})
}

func TestClassifyIsPure(t *testing.T) {
	values := []float64{24.5, 26.1, 27.3, 29.8, 31.2, 33.9, 35.4}
	s := stats.Compute(values)
	require.NotNil(t, s)

	first := Classify(s, values)
	second := Classify(s, values)
	assert.Equal(t, first, second)
}

func TestUHILevels(t *testing.T) {
	cases := []struct {
		intensity float64
		want      string
	}{
		{12, "Very Strong"},
		{10, "Strong"},
		{8, "Strong"},
		{7, "Moderate"},
		{6, "Moderate"},
		{5, "Weak"},
		{4, "Weak"},
		{3, "Very Weak"},
		{1, "Very Weak"},
	}
	for _, tc := range cases {
		s := &stats.Summary{Min: 20, Max: 20 + tc.intensity}
		c := Classify(s, nil)
		assert.Equal(t, tc.want, c.Indicators.UHILevel, "intensity %.1f", tc.intensity)
	}
}

func TestTemperatureStressLevels(t *testing.T) {
	cases := []struct {
		mean float64
		want string
	}{
		{36, "Extreme Heat Stress"},
		{35, "High Heat Stress"},
		{31, "High Heat Stress"},
		{30, "Moderate Heat Stress"},
		{26, "Moderate Heat Stress"},
		{25, "Low Heat Stress"},
		{21, "Low Heat Stress"},
		{20, "No Heat Stress"},
		{15, "No Heat Stress"},
	}
	for _, tc := range cases {
		c := Classify(&stats.Summary{Mean: tc.mean}, nil)
		assert.Equal(t, tc.want, c.Indicators.TemperatureStress, "mean %.1f", tc.mean)
	}
}

func TestThermalComfort(t *testing.T) {
	cases := []struct {
		mean float64
		want string
	}{
		{18, "Optimal Comfort"},
		{21, "Optimal Comfort"},
		{24, "Optimal Comfort"},
		{15, "Acceptable Comfort"},
		{17.9, "Acceptable Comfort"},
		{24.1, "Acceptable Comfort"},
		{27, "Acceptable Comfort"},
		{12, "Slight Discomfort"},
		{14.9, "Slight Discomfort"},
		{27.1, "Slight Discomfort"},
		{30, "Slight Discomfort"},
		{11.9, "Significant Discomfort"},
		{30.1, "Significant Discomfort"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ThermalComfort(tc.mean), "mean %.1f", tc.mean)
	}
}

func TestEnvironmentalRisk(t *testing.T) {
	cases := []struct {
		name string
		s    stats.Summary
		want string
	}{
		{"all calm", stats.Summary{Max: 25, Std: 1, Range: 5}, "Minimal Risk"},
		{"warm only", stats.Summary{Max: 31, Std: 1, Range: 5}, "Low Risk"},
		{"warm and variable", stats.Summary{Max: 36, Std: 3.5, Range: 5}, "Moderate Risk"},
		{"extreme everything", stats.Summary{Max: 41, Std: 6, Range: 16}, "High Risk"},
		{"wide range alone", stats.Summary{Max: 25, Std: 1, Range: 12}, "Low Risk"},
		{"boundary max 40", stats.Summary{Max: 40, Std: 0, Range: 0}, "Low Risk"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := Classify(&tc.s, nil)
			assert.Equal(t, tc.want, c.Indicators.EnvironmentalRisk)
		})
	}
}
