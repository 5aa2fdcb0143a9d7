package building

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbansense/lst-insight/internal/raster"
)

func ptr(v float64) *float64 { return &v }

func TestComputeMetrics(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		m := ComputeMetrics(Building{}, nil)
		assert.Equal(t, 120000.0, m.EnergyConsumption)
		assert.Equal(t, 120.0, m.EfficiencyRating)
		assert.Equal(t, 100.0, m.EnvironmentalScore)
		assert.Nil(t, m.LSTTemperature)
	})

	t.Run("efficient solar building", func(t *testing.T) {
		b := Building{SizeSqm: 3000, Age: 20, EnergySource: "solar", InsulationRating: 4, GreenFeatures: 2}
		m := ComputeMetrics(b, nil)
		assert.InDelta(t, 136080, m.EnergyConsumption, 1e-6)
		assert.InDelta(t, 45.36, m.EfficiencyRating, 1e-6)
		// raw score 117, clamped
		assert.Equal(t, 100.0, m.EnvironmentalScore)
	})

	t.Run("old uninsulated building in hot zone", func(t *testing.T) {
		b := Building{SizeSqm: 6000, Age: 35, EnergySource: "grid", InsulationRating: 2}
		m := ComputeMetrics(b, ptr(36.0))
		assert.InDelta(t, 1346400, m.EnergyConsumption, 1e-6)
		assert.InDelta(t, 224.4, m.EfficiencyRating, 1e-6)
		// 100 - 20 - 15 - 10 - 15 = 40
		assert.Equal(t, 40.0, m.EnvironmentalScore)
		require.NotNil(t, m.LSTTemperature)
		assert.Equal(t, 36.0, *m.LSTTemperature)
	})

	t.Run("cool site bonus", func(t *testing.T) {
		m := ComputeMetrics(Building{Age: 20}, ptr(24.0))
		// 100 - 10 + 5 = 95
		assert.Equal(t, 95.0, m.EnvironmentalScore)
	})

	t.Run("moderate heat penalty", func(t *testing.T) {
		m := ComputeMetrics(Building{Age: 20}, ptr(31.0))
		// 100 - 10 - 8 = 82
		assert.Equal(t, 82.0, m.EnvironmentalScore)
	})

	t.Run("unknown energy source behaves as grid", func(t *testing.T) {
		m := ComputeMetrics(Building{EnergySource: "coal"}, nil)
		assert.Equal(t, 120000.0, m.EnergyConsumption)
		assert.Equal(t, 100.0, m.EnvironmentalScore)
	})
}

func testGrid() *raster.Grid {
	nan := math.NaN()
	return &raster.Grid{
		Data: [][]float64{
			{34, 36},
			{26, nan},
		},
		Rows: 2,
		Cols: 2,
		Bounds: raster.Bounds{South: -1.30, North: -1.28, West: 36.80, East: 36.82},
		Transform: raster.Transform{
			OriginX:     36.80,
			OriginY:     -1.28,
			PixelWidth:  0.01,
			PixelHeight: -0.01,
		},
	}
}

func TestAnalyzePlan(t *testing.T) {
	t.Run("empty plan", func(t *testing.T) {
		a := AnalyzePlan(Plan{}, testGrid())
		assert.Zero(t, a.OverallScore)
		assert.Equal(t, "N/A", a.TemperatureImpact.HeatIslandRisk)
	})

	t.Run("nil grid still scores", func(t *testing.T) {
		p := Plan{Buildings: []Building{{}, {Age: 40}}}
		a := AnalyzePlan(p, nil)
		require.Len(t, a.BuildingMetrics, 2)
		assert.Equal(t, "N/A", a.TemperatureImpact.HeatIslandRisk)
		assert.Equal(t, 90.0, a.OverallScore) // (100 + 80) / 2
	})

	t.Run("samples raster at building sites", func(t *testing.T) {
		p := Plan{Buildings: []Building{
			{Lat: -1.285, Lon: 36.805}, // pixel (0,0) = 34
			{Lat: -1.285, Lon: 36.815}, // pixel (0,1) = 36
		}}
		a := AnalyzePlan(p, testGrid())

		require.Len(t, a.BuildingMetrics, 2)
		require.NotNil(t, a.BuildingMetrics[0].LSTTemperature)
		assert.Equal(t, 34.0, *a.BuildingMetrics[0].LSTTemperature)

		ti := a.TemperatureImpact
		assert.Equal(t, 35.0, ti.AverageTemperature)
		assert.Equal(t, 36.0, ti.MaxTemperature)
		assert.Equal(t, 34.0, ti.MinTemperature)
		assert.Equal(t, 2.0, ti.TemperatureRange)
		assert.Equal(t, "High", ti.HeatIslandRisk)

		// 34 and 36 both exceed 30/35 thresholds: scores 92 and 85
		assert.InDelta(t, 88.5, a.OverallScore, 1e-9)
	})

	t.Run("nodata cells are skipped", func(t *testing.T) {
		p := Plan{Buildings: []Building{
			{Lat: -1.295, Lon: 36.815}, // pixel (1,1) = NaN
			{Lat: -1.295, Lon: 36.805}, // pixel (1,0) = 26
		}}
		a := AnalyzePlan(p, testGrid())

		assert.Nil(t, a.BuildingMetrics[0].LSTTemperature)
		require.NotNil(t, a.BuildingMetrics[1].LSTTemperature)
		assert.Equal(t, "Low", a.TemperatureImpact.HeatIslandRisk)
		assert.Equal(t, 26.0, a.TemperatureImpact.AverageTemperature)
	})
}

func TestBuildAdvisoryPrompt(t *testing.T) {
	p := Plan{
		ProjectName: "Kilimani Heights",
		ProjectType: "Residential",
		TotalArea:   12000,
		Buildings:   []Building{{Name: "Tower A", SizeSqm: 4000, Floors: 12}},
	}
	a := AnalyzePlan(p, testGrid())

	prompt := BuildAdvisoryPrompt(p, a)
	assert.Contains(t, prompt, "Kilimani Heights")
	assert.Contains(t, prompt, "Tower A")
	assert.Contains(t, prompt, "Number of Buildings: 1")
	assert.Contains(t, prompt, "Heat Island Risk:")

	assert.Equal(t, prompt, BuildAdvisoryPrompt(p, a), "prompt must be deterministic")
}

func TestFallbackAdvice(t *testing.T) {
	p := Plan{Buildings: []Building{{SizeSqm: 6000, Age: 35, InsulationRating: 2}}}
	a := AnalyzePlan(p, nil)

	advice := FallbackAdvice(p, a)
	assert.Contains(t, advice, "the development plan")
	assert.Contains(t, advice, "Recommendations:")
	assert.Contains(t, advice, "Improve insulation ratings")
}
