package output

import (
	"fmt"
	"strings"

	"github.com/bpsgo/compliance-calculator/internal/domain"
)

// ConsoleFormatter renders a human-readable text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

// FormatBuilding renders one building's full analysis.
func (c ConsoleFormatter) FormatBuilding(analysis *domain.BuildingAnalysis) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "BUILDING %s\n", analysis.BuildingID)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 60))

	b.WriteString("Adjusted targets\n")
	c.writeTargets(&b, "standard", analysis.Targets.Standard)
	c.writeTargets(&b, "opt-in", analysis.Targets.OptIn)
	b.WriteString("\n")

	b.WriteString("Penalty schedules\n")
	c.writeSchedule(&b, &analysis.StandardSchedule)
	c.writeSchedule(&b, &analysis.OptInSchedule)
	b.WriteString("\n")

	r := analysis.Retrofit
	fmt.Fprintf(&b, "Retrofit estimate: %s reduction, %s tier, %s/sqft, total %s\n",
		FormatPercentage(r.ReductionPercent), r.Tier, FormatRate(r.CostPerSqFt), FormatWholeCurrency(r.TotalCost))
	fmt.Fprintf(&b, "Technical difficulty: %s/100 (%s)\n",
		analysis.Difficulty.Score.StringFixed(0), analysis.Difficulty.Feasibility)
	if analysis.CashFlowConstrained {
		b.WriteString("Cash-flow constrained: yes\n")
	}
	b.WriteString("\n")

	rec := analysis.Recommendation
	pathWord := "STANDARD"
	if rec.ShouldOptIn {
		pathWord = "OPT-IN"
	}
	fmt.Fprintf(&b, "Recommendation: %s (confidence %d)\n", pathWord, rec.Confidence)
	fmt.Fprintf(&b, "  Rationale:     %s\n", rec.PrimaryRationale)
	fmt.Fprintf(&b, "  NPV advantage: %s (positive favors opting in)\n", FormatCurrency(rec.NPVAdvantage))

	return []byte(b.String()), nil
}

// FormatPortfolio renders the three-scenario comparison.
func (c ConsoleFormatter) FormatPortfolio(results *domain.PortfolioComparison) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "PORTFOLIO PENALTY COMPARISON (%d buildings analyzed)\n", results.AnalyzedCount())
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 60))

	for _, table := range []*domain.ScenarioTable{&results.AllStandard, &results.AllOptIn, &results.Hybrid} {
		fmt.Fprintf(&b, "Scenario: %s\n", table.Scenario)
		for _, year := range table.Years() {
			fmt.Fprintf(&b, "  %d  penalty %-16s at-risk %-5d $/sqft(at-risk) %s\n",
				year,
				FormatWholeCurrency(table.PenaltyByYear[year]),
				table.AtRiskByYear[year],
				perAreaOrDash(table, year))
		}
		fmt.Fprintf(&b, "  total nominal %s, total NPV %s\n\n",
			FormatWholeCurrency(table.TotalNominal), FormatWholeCurrency(table.TotalNPV))
	}

	if len(results.ExcludedBuildingIDs) > 0 {
		fmt.Fprintf(&b, "Excluded below minimum area: %s\n", strings.Join(results.ExcludedBuildingIDs, ", "))
	}
	if len(results.Errors) > 0 {
		fmt.Fprintf(&b, "Failed buildings: %d\n", len(results.Errors))
		for _, e := range results.Errors {
			fmt.Fprintf(&b, "  %s [%s]: %s\n", e.BuildingID, e.Kind, e.Message)
		}
	}

	return []byte(b.String()), nil
}

func (c ConsoleFormatter) writeTargets(b *strings.Builder, label string, targets []domain.MilestoneTarget) {
	for _, mt := range targets {
		fmt.Fprintf(b, "  %-8s %d %-15s %s kBtu/sqft (%s)\n",
			label, mt.Year, mt.Milestone, FormatEUI(mt.Target.Value), mt.Target.Reason)
	}
}

func (c ConsoleFormatter) writeSchedule(b *strings.Builder, schedule *domain.PenaltySchedule) {
	fmt.Fprintf(b, "  %s path (rate %s):\n", schedule.Path, schedule.Rate.String())
	for _, mp := range schedule.Milestones {
		fmt.Fprintf(b, "    %d %-15s %s\n", mp.Year, mp.Milestone, FormatWholeCurrency(mp.Penalty))
	}
	ongoing := ""
	if schedule.IncludesOngoing {
		ongoing = " (includes ongoing continuation)"
	}
	fmt.Fprintf(b, "    nominal %s, NPV %s%s\n",
		FormatWholeCurrency(schedule.TotalNominal), FormatWholeCurrency(schedule.TotalNPV), ongoing)
}

func perAreaOrDash(table *domain.ScenarioTable, year int) string {
	if rate, ok := table.PenaltyPerAreaAtRisk[year]; ok {
		return FormatRate(rate)
	}
	return "-"
}
