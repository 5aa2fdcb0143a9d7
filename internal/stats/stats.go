// Package stats computes descriptive and distributional statistics over the
// valid pixels of a temperature raster.
package stats

import (
	"math"
	"sort"
)

// Summary is the flat numeric record derived once per loaded grid.
// Invariants: Min <= P10 <= P25 <= Median <= P75 <= P90 <= Max and
// HotPixelCount + ColdPixelCount <= TotalPixelCount.
type Summary struct {
	Min    float64 `json:"min_temp"`
	Max    float64 `json:"max_temp"`
	Mean   float64 `json:"mean_temp"`
	Median float64 `json:"median_temp"`
	Std    float64 `json:"std_temp"`
	Range  float64 `json:"temp_range"`

	P10 float64 `json:"percentile_10"`
	P25 float64 `json:"percentile_25"`
	P75 float64 `json:"percentile_75"`
	P90 float64 `json:"percentile_90"`

	// HotPixelCount counts pixels strictly above P90; ColdPixelCount counts
	// pixels strictly below P10.
	HotPixelCount   int `json:"hot_pixels"`
	ColdPixelCount  int `json:"cold_pixels"`
	TotalPixelCount int `json:"total_pixels"`
}

// Compute derives a Summary from pre-filtered valid values (no NaNs).
// Returns nil when there are no valid pixels; callers must treat nil as
// "no data".
func Compute(values []float64) *Summary {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := Mean(values)
	std := Std(values, mean)
	p10 := percentileSorted(sorted, 10)
	p90 := percentileSorted(sorted, 90)

	hot, cold := 0, 0
	for _, v := range values {
		if v > p90 {
			hot++
		}
		if v < p10 {
			cold++
		}
	}

	return &Summary{
		Min:             sorted[0],
		Max:             sorted[len(sorted)-1],
		Mean:            mean,
		Median:          percentileSorted(sorted, 50),
		Std:             std,
		Range:           sorted[len(sorted)-1] - sorted[0],
		P10:             p10,
		P25:             percentileSorted(sorted, 25),
		P75:             percentileSorted(sorted, 75),
		P90:             p90,
		HotPixelCount:   hot,
		ColdPixelCount:  cold,
		TotalPixelCount: len(values),
	}
}

// Percentile calculates the p-th percentile (0-100) of values using linear
// interpolation between closest ranks. Returns 0 for an empty slice.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	index := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if lower == upper {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Std returns the population standard deviation around the given mean.
func Std(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

// Skewness returns the third standardized moment with the bias-corrected
// n/((n-1)(n-2)) normalization, using the population standard deviation.
// Returns 0 when the deviation is zero or n < 3, where the formula is
// undefined.
func Skewness(values []float64) float64 {
	n := len(values)
	if n < 3 {
		return 0
	}
	mean := Mean(values)
	std := Std(values, mean)
	if std == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / std
		sum += z * z * z
	}
	nf := float64(n)
	return nf / ((nf - 1) * (nf - 2)) * sum
}

// Kurtosis returns the bias-corrected kurtosis (excess kurtosis plus 3, the
// normal-distribution value), using the population standard deviation.
// Returns 3 when the deviation is zero or n < 4, where the formula is
// undefined.
func Kurtosis(values []float64) float64 {
	n := len(values)
	if n < 4 {
		return 3
	}
	mean := Mean(values)
	std := Std(values, mean)
	if std == 0 {
		return 3
	}
	sum := 0.0
	for _, v := range values {
		z := (v - mean) / std
		sum += z * z * z * z
	}
	nf := float64(n)
	excess := nf*(nf+1)/((nf-1)*(nf-2)*(nf-3))*sum - 3*(nf-1)*(nf-1)/((nf-2)*(nf-3))
	return excess + 3
}
