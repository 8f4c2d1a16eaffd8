package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/nirmanlabs/nirman/pkg/estimate"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

// Analysis is the narrative assessment of a project: executive summary,
// risks, and optimization advice. The Hindi summary serves the primary
// deployment market.
type Analysis struct {
	Summary          string   `json:"project_summary"`
	Risks            []string `json:"risks"`
	Recommendations  []string `json:"recommendations"`
	MaterialInsights string   `json:"material_insights"`
	CostOptimization string   `json:"cost_optimization"`
	HindiSummary     string   `json:"hindi_summary"`
}

// Analyze asks the model for a project assessment grounded in the
// computed estimates. Callers should fall back to [FallbackAnalysis] on
// error.
func (c *Client) Analyze(ctx context.Context, spec plan.ProjectSpec, costs estimate.Costs, workers estimate.Workers, materials []estimate.Material) (*Analysis, error) {
	var out Analysis
	if err := c.completeJSON(ctx, analysisPrompt(spec, costs, workers, materials), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// analysisPrompt renders the project facts the model needs. Only the
// first six material lines are included; the tail items (tanks, doors)
// add tokens without changing the analysis.
func analysisPrompt(spec plan.ProjectSpec, costs estimate.Costs, workers estimate.Workers, materials []estimate.Material) string {
	lines := make([]string, 0, 6)
	for i, m := range materials {
		if i == 6 {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %d %s (%s)", m.Name, m.Quantity, m.Unit, inr(m.Total)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert construction planning assistant.\n")
	fmt.Fprintf(&b, "Analyze this construction project and return a JSON response.\n\n")
	fmt.Fprintf(&b, "PROJECT DETAILS:\n")
	fmt.Fprintf(&b, "- Building Type: %s\n", spec.BuildingType)
	fmt.Fprintf(&b, "- Total Area: %g sqft x %d floors = %g sqft\n", spec.AreaSqft, spec.Floors, spec.TotalArea())
	fmt.Fprintf(&b, "- Timeline: %d months\n", spec.MonthsToBuild)
	fmt.Fprintf(&b, "- Location: %s\n", spec.Location)
	fmt.Fprintf(&b, "- Soil Type: %s\n", spec.Site.SoilType)
	fmt.Fprintf(&b, "- Flats per floor: %d\n", spec.Flats.FlatsPerFloor)
	fmt.Fprintf(&b, "- Config: %d BHK, %d bath\n\n", spec.Flats.Bedrooms, spec.Flats.Bathrooms)
	fmt.Fprintf(&b, "COSTS:\n")
	fmt.Fprintf(&b, "- Material: %s\n", inr(costs.Material))
	fmt.Fprintf(&b, "- Labour: %s\n", inr(costs.Labour))
	fmt.Fprintf(&b, "- Overhead: %s\n", inr(costs.Overhead))
	fmt.Fprintf(&b, "- Contingency: %s\n", inr(costs.Contingency))
	fmt.Fprintf(&b, "- Total: %s\n", inr(costs.Total))
	fmt.Fprintf(&b, "- Cost/sqft: %s\n\n", inr(costs.PerSqft))
	fmt.Fprintf(&b, "WORKERS: %d total (%d masons, %d helpers, %d carpenters)\n\n",
		workers.Total, workers.Masons, workers.Helpers, workers.Carpenters)
	fmt.Fprintf(&b, "KEY MATERIALS: %s\n\n", strings.Join(lines, ", "))
	fmt.Fprintf(&b, `Return ONLY valid JSON with these fields:
{
  "project_summary": "2-3 paragraph executive summary",
  "risks": ["risk1", "risk2", "risk3", "risk4", "risk5"],
  "recommendations": ["rec1", "rec2", "rec3", "rec4"],
  "material_insights": "paragraph about material choices and optimization",
  "cost_optimization": "paragraph about cost saving strategies",
  "hindi_summary": "Brief project summary in Hindi (2-3 sentences)"
}`)
	return b.String()
}

// FallbackAnalysis produces a deterministic assessment from the
// computed estimates. It is used whenever no client is configured or
// the model call fails, so a plan always carries an analysis section.
func FallbackAnalysis(spec plan.ProjectSpec, costs estimate.Costs, workers estimate.Workers) *Analysis {
	return &Analysis{
		Summary: fmt.Sprintf(
			"This is a %s project spanning %.0f sqft across %d floors in %s. "+
				"Estimated total cost is %s (%s/sqft). The project requires %d workers "+
				"and is planned to complete in %d months.",
			spec.BuildingType, spec.TotalArea(), spec.Floors, spec.Location,
			inr(costs.Total), inr(costs.PerSqft), workers.Total, spec.MonthsToBuild,
		),
		Risks: []string{
			fmt.Sprintf("Soil type (%s) may require additional foundation treatment", spec.Site.SoilType),
			"Material price fluctuations can impact budget by 5-15%",
			"Monsoon season delays possible in Indian construction",
			"Labour availability during festival seasons",
			"Regulatory approval delays for multi-story structures",
		},
		Recommendations: []string{
			"Procure cement and steel in bulk for 10-15% savings",
			"Schedule foundation work during dry season",
			"Install rainwater harvesting for long-term savings",
			"Use fly-ash bricks for cost-effective and eco-friendly construction",
		},
		MaterialInsights: fmt.Sprintf(
			"Total material cost is %s representing 60%% of the project cost. "+
				"Key materials include cement, steel, and bricks. Consider TMT bars (Fe500D grade) for "+
				"earthquake resistance. Use M25 grade concrete for structural elements.",
			inr(costs.Material),
		),
		CostOptimization: fmt.Sprintf(
			"Current cost is %s/sqft. To optimize: "+
				"1) Negotiate bulk rates for cement and steel. "+
				"2) Use local materials where possible. "+
				"3) Optimize flat layout to reduce corridor area. "+
				"4) Consider prefab elements for repetitive floors.",
			inr(costs.PerSqft),
		),
		HindiSummary: fmt.Sprintf(
			"यह %s में %s परियोजना है। कुल क्षेत्रफल %.0f वर्ग फीट, कुल लागत %s।",
			spec.Location, spec.BuildingType, spec.TotalArea(), inr(costs.Total),
		),
	}
}
