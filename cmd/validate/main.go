// Command validate performs end-to-end integrity checks on a temperature
// raster and everything the service derives from it: grid structure,
// statistical invariants, classification consistency, and the serialized
// analysis context.
//
// Usage:
//
//	go run ./cmd/validate -raster testdata/kilimani_lst.asc
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/urbansense/lst-insight/internal/analysis"
	"github.com/urbansense/lst-insight/internal/climate"
	"github.com/urbansense/lst-insight/internal/raster"
	"github.com/urbansense/lst-insight/internal/stats"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rasterPath := flag.String("raster", "", "path to the ESRI ASCII LST grid")
	location := flag.String("location", "Kilimani area, Nairobi, Kenya", "location label for the analysis context")
	flag.Parse()

	if *rasterPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rasterPath, *location); code != 0 {
		os.Exit(code)
	}
}

func run(rasterPath, location string) int {
	fmt.Println("=== LST Analysis Integrity Validation ===")
	fmt.Println()

	grid, err := raster.Load(rasterPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raster: %v\n", err)
		return 1
	}

	values := grid.ValidValues()
	summary := stats.Compute(values)
	classification := climate.Classify(summary, values)

	phases := []*phase{
		validateGrid(grid, values),
		validateStatistics(summary),
		validateClassification(summary, classification),
		validateContext(summary, classification, location),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Grid: %dx%d, %d valid pixels\n", grid.Rows, grid.Cols, len(values))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// ── Phase 1: Grid Integrity ──

func validateGrid(g *raster.Grid, values []float64) *phase {
	p := &phase{name: "Phase 1: Grid Integrity"}

	if g.Rows != len(g.Data) {
		p.errorf("declared %d rows but data has %d", g.Rows, len(g.Data))
	}
	for r, row := range g.Data {
		if len(row) != g.Cols {
			p.errorf("row %d has %d columns, expected %d", r, len(row), g.Cols)
			break
		}
	}

	if g.Bounds.North <= g.Bounds.South {
		p.errorf("bounds: north %g not above south %g", g.Bounds.North, g.Bounds.South)
	}
	if g.Bounds.East <= g.Bounds.West {
		p.errorf("bounds: east %g not right of west %g", g.Bounds.East, g.Bounds.West)
	}
	if g.Transform.PixelWidth <= 0 {
		p.errorf("transform: pixel width %g must be positive", g.Transform.PixelWidth)
	}
	if g.Transform.PixelHeight >= 0 {
		p.errorf("transform: pixel height %g must be negative for north-up grids", g.Transform.PixelHeight)
	}

	if len(values) == 0 {
		p.errorf("grid has no valid pixels")
	}
	for _, v := range values {
		if math.IsInf(v, 0) {
			p.errorf("grid contains infinite values")
			break
		}
	}

	// Center of the grid must be sampleable through the inverse transform.
	midLat := (g.Bounds.South + g.Bounds.North) / 2
	midLon := (g.Bounds.West + g.Bounds.East) / 2
	if _, ok := g.At(midLat, midLon); !ok && len(values) > 0 {
		p.errorf("cannot sample grid center (%g, %g)", midLat, midLon)
	}

	return p
}

// ── Phase 2: Statistical Invariants ──

func validateStatistics(s *stats.Summary) *phase {
	p := &phase{name: "Phase 2: Statistical Invariants"}
	if s == nil {
		p.errorf("no summary computed")
		return p
	}

	ordered := []struct {
		name string
		val  float64
	}{
		{"min", s.Min},
		{"p10", s.P10},
		{"p25", s.P25},
		{"median", s.Median},
		{"p75", s.P75},
		{"p90", s.P90},
		{"max", s.Max},
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].val > ordered[i].val {
			p.errorf("%s (%g) exceeds %s (%g)", ordered[i-1].name, ordered[i-1].val, ordered[i].name, ordered[i].val)
		}
	}

	if !floatEq(s.Range, s.Max-s.Min) {
		p.errorf("range %g != max-min %g", s.Range, s.Max-s.Min)
	}
	if s.Std < 0 {
		p.errorf("std %g is negative", s.Std)
	}
	if s.Mean < s.Min || s.Mean > s.Max {
		p.errorf("mean %g outside [min, max]", s.Mean)
	}
	if s.HotPixelCount+s.ColdPixelCount > s.TotalPixelCount {
		p.errorf("hot (%d) + cold (%d) pixels exceed total (%d)", s.HotPixelCount, s.ColdPixelCount, s.TotalPixelCount)
	}

	return p
}

// ── Phase 3: Classification Consistency ──

var (
	validUHILevels = map[string]bool{
		"Very Strong": true, "Strong": true, "Moderate": true,
		"Weak": true, "Very Weak": true,
	}
	validRiskLevels = map[string]bool{
		"High Risk": true, "Moderate Risk": true, "Low Risk": true, "Minimal Risk": true,
	}
)

func validateClassification(s *stats.Summary, c *climate.Classification) *phase {
	p := &phase{name: "Phase 3: Classification Consistency"}
	if c == nil {
		if s != nil {
			p.errorf("classification missing while summary is present")
		}
		return p
	}

	h := c.Heat
	thresholds := []struct {
		name string
		val  float64
	}{
		{"very_cool", h.VeryCool},
		{"cool", h.Cool},
		{"hot", h.Hot},
		{"very_hot", h.VeryHot},
		{"extreme_hot", h.ExtremeHot},
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i-1].val > thresholds[i].val {
			p.errorf("threshold %s (%g) exceeds %s (%g)",
				thresholds[i-1].name, thresholds[i-1].val, thresholds[i].name, thresholds[i].val)
		}
	}

	if !floatEq(c.Indicators.UHIIntensity, s.Range) {
		p.errorf("uhi intensity %g != temperature range %g", c.Indicators.UHIIntensity, s.Range)
	}
	if !floatEq(c.Indicators.HeatIslandIntensity, s.Max-s.Mean) {
		p.errorf("heat island intensity %g != max-mean %g", c.Indicators.HeatIslandIntensity, s.Max-s.Mean)
	}
	if !validUHILevels[c.Indicators.UHILevel] {
		p.errorf("unknown UHI level %q", c.Indicators.UHILevel)
	}
	if !validRiskLevels[c.Indicators.EnvironmentalRisk] {
		p.errorf("unknown risk level %q", c.Indicators.EnvironmentalRisk)
	}

	return p
}

// ── Phase 4: Context Serialization ──

func validateContext(s *stats.Summary, c *climate.Classification, location string) *phase {
	p := &phase{name: "Phase 4: Context Serialization"}

	ctx := analysis.BuildContext(s, c, location)
	if ctx == nil {
		if s != nil {
			p.errorf("context missing while summary is present")
		}
		return p
	}

	if ctx.Location != location {
		p.errorf("location %q != %q", ctx.Location, location)
	}
	if _, err := time.Parse("2006-01-02 15:04:05", ctx.AnalysisTimestamp); err != nil {
		p.errorf("timestamp %q not in expected layout: %v", ctx.AnalysisTimestamp, err)
	}

	raw, err := json.Marshal(ctx)
	if err != nil {
		p.errorf("context does not serialize: %v", err)
		return p
	}
	var round map[string]any
	if err := json.Unmarshal(raw, &round); err != nil {
		p.errorf("context JSON does not round-trip: %v", err)
	}

	insights := analysis.InsightsSummary(ctx)
	if len(insights) == 0 {
		p.errorf("no insights generated from a valid context")
	}

	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
