// Package building scores development plans for energy use and
// environmental impact against the loaded temperature raster.
package building

import (
	"math"

	"github.com/urbansense/lst-insight/internal/raster"
)

// Building describes one structure in a development plan. Zero values take
// the model defaults: 1000 m2, insulation rating 3, grid energy.
type Building struct {
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	SizeSqm          float64 `json:"size_sqm"`
	Floors           int     `json:"floors"`
	Age              int     `json:"age"`
	Units            int     `json:"units"`
	EnergySource     string  `json:"energy_source"`
	InsulationRating int     `json:"insulation_rating"` // 1-5
	GreenFeatures    int     `json:"green_features"`    // 0-5
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
}

// Metrics holds the computed per-building figures.
type Metrics struct {
	EnergyConsumption  float64  `json:"energy_consumption"` // kWh/year
	EfficiencyRating   float64  `json:"efficiency_rating"`  // kWh/m2
	EnvironmentalScore float64  `json:"environmental_score"`
	LSTTemperature     *float64 `json:"lst_temperature,omitempty"`
}

var energySourceFactor = map[string]float64{
	"solar":      0.3,
	"geothermal": 0.4,
	"mixed":      0.6,
	"grid":       1.0,
}

var energySourceBonus = map[string]float64{
	"solar":      15,
	"geothermal": 12,
	"mixed":      8,
}

// ComputeMetrics derives energy consumption and the environmental score for
// one building. lstTemp is the sampled surface temperature at the building's
// location, nil when unavailable.
func ComputeMetrics(b Building, lstTemp *float64) Metrics {
	size := b.SizeSqm
	if size <= 0 {
		size = 1000
	}
	insulation := b.InsulationRating
	if insulation == 0 {
		insulation = 3
	}
	source := b.EnergySource
	if source == "" {
		source = "grid"
	}

	base := size * 120
	ageFactor := 1.0 + float64(b.Age)*0.02
	insulationFactor := 1.0 - float64(insulation-3)*0.1
	sourceFactor, ok := energySourceFactor[source]
	if !ok {
		sourceFactor = 1.0
	}

	consumption := base * ageFactor * insulationFactor * sourceFactor

	score := 100.0
	switch {
	case b.Age > 30:
		score -= 20
	case b.Age > 15:
		score -= 10
	}
	switch {
	case size > 5000:
		score -= 15
	case size > 2000:
		score -= 8
	}
	score += float64(insulation-3) * 10
	score += energySourceBonus[source]
	score += float64(b.GreenFeatures) * 5

	if lstTemp != nil {
		switch t := *lstTemp; {
		case t > 35:
			score -= 15
		case t > 30:
			score -= 8
		case t < 25:
			score += 5
		}
	}

	return Metrics{
		EnergyConsumption:  round2(consumption),
		EfficiencyRating:   round2(consumption / size),
		EnvironmentalScore: clamp(round1(score), 0, 100),
		LSTTemperature:     lstTemp,
	}
}

// Plan is a development proposal submitted for analysis.
type Plan struct {
	ProjectName          string     `json:"project_name"`
	Location             string     `json:"location"`
	ProjectType          string     `json:"project_type"`
	TotalArea            float64    `json:"total_area"`
	SustainabilityTarget string     `json:"sustainability_target"`
	BudgetRange          string     `json:"budget_range"`
	Buildings            []Building `json:"buildings"`
}

// TemperatureImpact summarizes the sampled temperatures at building sites.
type TemperatureImpact struct {
	AverageTemperature float64 `json:"average_temperature"`
	MaxTemperature     float64 `json:"max_temperature"`
	MinTemperature     float64 `json:"min_temperature"`
	TemperatureRange   float64 `json:"temperature_range"`
	HeatIslandRisk     string  `json:"heat_island_risk"`
}

// Analysis is the aggregate result for a plan.
type Analysis struct {
	OverallScore           float64           `json:"overall_score"`
	SustainabilityScore    float64           `json:"sustainability_score"`
	TotalEnergyConsumption float64           `json:"total_energy_consumption"`
	AverageEfficiency      float64           `json:"average_efficiency"`
	TemperatureImpact      TemperatureImpact `json:"temperature_impact"`
	BuildingMetrics        []Metrics         `json:"building_metrics"`
}

// AnalyzePlan scores every building in the plan, sampling the raster at each
// building's coordinates when a grid is available. A nil grid disables the
// temperature adjustment and yields an "N/A" heat island risk.
func AnalyzePlan(p Plan, grid *raster.Grid) Analysis {
	var a Analysis
	if len(p.Buildings) == 0 {
		a.TemperatureImpact.HeatIslandRisk = "N/A"
		return a
	}

	var scoreSum, energySum, efficiencySum float64
	var readings []float64
	for _, b := range p.Buildings {
		var lstTemp *float64
		if grid != nil {
			if v, ok := grid.At(b.Lat, b.Lon); ok {
				t := v
				lstTemp = &t
				readings = append(readings, v)
			}
		}
		m := ComputeMetrics(b, lstTemp)
		a.BuildingMetrics = append(a.BuildingMetrics, m)
		scoreSum += m.EnvironmentalScore
		energySum += m.EnergyConsumption
		efficiencySum += m.EfficiencyRating
	}

	n := float64(len(p.Buildings))
	a.OverallScore = scoreSum / n
	a.SustainabilityScore = a.OverallScore
	a.TotalEnergyConsumption = energySum
	a.AverageEfficiency = efficiencySum / n
	a.TemperatureImpact = summarizeReadings(readings)
	return a
}

func summarizeReadings(readings []float64) TemperatureImpact {
	if len(readings) == 0 {
		return TemperatureImpact{HeatIslandRisk: "N/A"}
	}

	min, max, sum := readings[0], readings[0], 0.0
	for _, r := range readings {
		if r < min {
			min = r
		}
		if r > max {
			max = r
		}
		sum += r
	}
	mean := sum / float64(len(readings))

	risk := "Low"
	switch {
	case mean > 32:
		risk = "High"
	case mean > 28:
		risk = "Medium"
	}

	return TemperatureImpact{
		AverageTemperature: mean,
		MaxTemperature:     max,
		MinTemperature:     min,
		TemperatureRange:   max - min,
		HeatIslandRisk:     risk,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
