package building

import (
	"fmt"
	"strings"
)

// AdvisorySystemPrompt frames the model as a development planning consultant.
const AdvisorySystemPrompt = "You are an expert urban planning and sustainable development consultant specializing in environmental impact assessment for East African development projects."

// BuildAdvisoryPrompt assembles the user message for plan advisory
// generation from the plan and its computed analysis. Deterministic for
// identical inputs.
func BuildAdvisoryPrompt(p Plan, a Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PROJECT OVERVIEW:\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(p.ProjectName, "Development Project"))
	fmt.Fprintf(&b, "- Location: %s\n", orDefault(p.Location, "Not specified"))
	fmt.Fprintf(&b, "- Type: %s\n", orDefault(p.ProjectType, "Mixed-Use"))
	fmt.Fprintf(&b, "- Total Area: %.0f m2\n", p.TotalArea)
	fmt.Fprintf(&b, "- Number of Buildings: %d\n", len(p.Buildings))
	fmt.Fprintf(&b, "- Sustainability Target: %s\n", orDefault(p.SustainabilityTarget, "Basic Compliance"))

	b.WriteString("\nBUILDING DETAILS:\n")
	for i, bl := range p.Buildings {
		var m Metrics
		if i < len(a.BuildingMetrics) {
			m = a.BuildingMetrics[i]
		}
		fmt.Fprintf(&b, "Building %d: %s\n", i+1, orDefault(bl.Name, fmt.Sprintf("Building %d", i+1)))
		fmt.Fprintf(&b, "- Type: %s | Size: %.0f m2 | Floors: %d | Age: %d years\n", orDefault(bl.Type, "Mixed"), bl.SizeSqm, bl.Floors, bl.Age)
		fmt.Fprintf(&b, "- Energy Source: %s | Insulation Rating: %d/5 | Green Features: %d/5\n", orDefault(bl.EnergySource, "grid"), bl.InsulationRating, bl.GreenFeatures)
		fmt.Fprintf(&b, "- Environmental Score: %.1f/100 | Energy Consumption: %.0f kWh/year\n", m.EnvironmentalScore, m.EnergyConsumption)
		if m.LSTTemperature != nil {
			fmt.Fprintf(&b, "- Surface Temperature: %.2f\u00b0C\n", *m.LSTTemperature)
		} else {
			b.WriteString("- Surface Temperature: N/A\n")
		}
	}

	fmt.Fprintf(&b, "\nCURRENT ANALYSIS RESULTS:\n")
	fmt.Fprintf(&b, "- Overall Environmental Score: %.1f/100\n", a.OverallScore)
	fmt.Fprintf(&b, "- Average Temperature: %.2f\u00b0C\n", a.TemperatureImpact.AverageTemperature)
	fmt.Fprintf(&b, "- Heat Island Risk: %s\n", a.TemperatureImpact.HeatIslandRisk)
	fmt.Fprintf(&b, "- Temperature Range: %.2f\u00b0C\n", a.TemperatureImpact.TemperatureRange)

	b.WriteString("\nProvide a professionally structured assessment of this development plan: environmental strengths and weaknesses, heat mitigation measures, energy improvements, and an implementation outline suitable for engaging local contractors and regulatory authorities.")

	return b.String()
}

// FallbackAdvice is the deterministic advisory used when the model is
// unavailable.
func FallbackAdvice(p Plan, a Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Assessment for %s:\n\n", orDefault(p.ProjectName, "the development plan"))
	fmt.Fprintf(&b, "Overall environmental score: %.1f/100 across %d buildings, with a combined energy consumption of %.0f kWh/year.\n", a.OverallScore, len(p.Buildings), a.TotalEnergyConsumption)
	fmt.Fprintf(&b, "Heat island risk at the proposed sites: %s.\n\n", a.TemperatureImpact.HeatIslandRisk)

	b.WriteString("Recommendations:\n")
	if a.OverallScore < 60 {
		b.WriteString("- Improve insulation ratings and add green features to raise the environmental score.\n")
	}
	if a.TemperatureImpact.HeatIslandRisk == "High" {
		b.WriteString("- Sites fall in a high surface temperature zone; prioritize shading, reflective surfaces, and vegetation.\n")
	}
	b.WriteString("- Prefer solar or geothermal energy sources to cut consumption.\n")
	b.WriteString("- Preserve or add green space around buildings to offset local warming.")

	return b.String()
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
