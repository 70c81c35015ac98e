package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Scenario names a portfolio-wide pathway assumption.
type Scenario string

const (
	// ScenarioAllStandard forces every building onto the standard path
	// (MAI buildings remain opt-in in every scenario).
	ScenarioAllStandard Scenario = "all_standard"
	// ScenarioAllOptIn forces every building onto the opt-in path.
	ScenarioAllOptIn Scenario = "all_opt_in"
	// ScenarioHybrid follows each building's recommendation.
	ScenarioHybrid Scenario = "hybrid"
)

// ScenarioTable is the portfolio-wide penalty rollup for one scenario, keyed by
// canonical milestone year.
type ScenarioTable struct {
	Scenario      Scenario                `json:"scenario"`
	PenaltyByYear map[int]decimal.Decimal `json:"penalty_by_year"`
	TotalNominal  decimal.Decimal         `json:"total_nominal"`
	TotalNPV      decimal.Decimal         `json:"total_npv"`

	// AtRiskByYear counts buildings with a nonzero penalty in each year.
	AtRiskByYear map[int]int `json:"at_risk_by_year"`

	// PenaltyPerAreaAtRisk is penalty dollars per sqft restricted to at-risk
	// buildings only; the denominator excludes buildings with zero penalty
	// in that year.
	PenaltyPerAreaAtRisk map[int]decimal.Decimal `json:"penalty_per_area_at_risk"`
}

// Years returns the table's canonical years in ascending order.
func (st *ScenarioTable) Years() []int {
	years := make([]int, 0, len(st.PenaltyByYear))
	for y := range st.PenaltyByYear {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// PortfolioComparison holds the three scenario tables plus per-building analyses
// and the errors and exclusions encountered along the way.
type PortfolioComparison struct {
	AllStandard ScenarioTable `json:"all_standard"`
	AllOptIn    ScenarioTable `json:"all_opt_in"`
	Hybrid      ScenarioTable `json:"hybrid"`

	Analyses []BuildingAnalysis `json:"analyses"`

	// Errors lists buildings whose computation failed; the run continues
	// with the remaining buildings.
	Errors []BuildingError `json:"errors,omitempty"`

	// ExcludedBuildingIDs lists buildings below the minimum portfolio area.
	ExcludedBuildingIDs []string `json:"excluded_building_ids,omitempty"`
}

// AnalyzedCount returns the number of buildings that completed analysis.
func (pc *PortfolioComparison) AnalyzedCount() int {
	return len(pc.Analyses)
}
