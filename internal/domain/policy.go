package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StandardMilestones holds the calendar years of the three standard-path milestones.
type StandardMilestones struct {
	FirstInterim  int `yaml:"first_interim" json:"first_interim"`
	SecondInterim int `yaml:"second_interim" json:"second_interim"`
	Final         int `yaml:"final" json:"final"`
}

// OptInMilestones holds the calendar years of the two opt-in (ACO) milestones.
type OptInMilestones struct {
	Interim int `yaml:"interim" json:"interim"`
	Final   int `yaml:"final" json:"final"`
}

// RetrofitCostTiers maps required reduction depth to installed cost per square foot.
type RetrofitCostTiers struct {
	LightCostPerSqFt    decimal.Decimal `yaml:"light_cost_per_sqft" json:"light_cost_per_sqft"`
	ModerateCostPerSqFt decimal.Decimal `yaml:"moderate_cost_per_sqft" json:"moderate_cost_per_sqft"`
	DeepCostPerSqFt     decimal.Decimal `yaml:"deep_cost_per_sqft" json:"deep_cost_per_sqft"`

	// Reduction-percent boundaries between tiers.
	ModerateThresholdPercent decimal.Decimal `yaml:"moderate_threshold_percent" json:"moderate_threshold_percent"`
	DeepThresholdPercent     decimal.Decimal `yaml:"deep_threshold_percent" json:"deep_threshold_percent"`
}

// PolicyConfig collects every ordinance constant and decision threshold in one
// immutable value passed explicitly into each component constructor. The zero value
// is not usable; start from DefaultPolicyConfig.
type PolicyConfig struct {
	// Per-unit penalty rates, $ per kBtu/sqft over target.
	StandardRate decimal.Decimal `yaml:"standard_rate" json:"standard_rate"`
	OptInRate    decimal.Decimal `yaml:"opt_in_rate" json:"opt_in_rate"`

	// Target adjustment rules.
	MaxReductionCap decimal.Decimal `yaml:"max_reduction_cap" json:"max_reduction_cap"` // 0.42: no target may demand >42% below baseline
	MAITargetFloor  decimal.Decimal `yaml:"mai_target_floor" json:"mai_target_floor"`   // 52.9: minimum final target for MAI buildings

	// Discounting.
	DiscountRate        decimal.Decimal `yaml:"discount_rate" json:"discount_rate"`
	AnalysisBaseYear    int             `yaml:"analysis_base_year" json:"analysis_base_year"`
	OngoingHorizonYears int             `yaml:"ongoing_horizon_years" json:"ongoing_horizon_years"`

	// Milestone calendars.
	StandardMilestones StandardMilestones `yaml:"standard_milestones" json:"standard_milestones"`
	OptInMilestones    OptInMilestones    `yaml:"opt_in_milestones" json:"opt_in_milestones"`

	// Portfolio scope.
	MinPortfolioArea decimal.Decimal `yaml:"min_portfolio_area" json:"min_portfolio_area"`

	// Cash-flow constraint detection.
	CashFlowCategories       []string        `yaml:"cash_flow_categories" json:"cash_flow_categories"`
	CashFlowPenaltyThreshold decimal.Decimal `yaml:"cash_flow_penalty_threshold" json:"cash_flow_penalty_threshold"`

	// Opt-in decision thresholds.
	MaterialNPVThreshold  decimal.Decimal `yaml:"material_npv_threshold" json:"material_npv_threshold"`
	LargeNPVThreshold     decimal.Decimal `yaml:"large_npv_threshold" json:"large_npv_threshold"`
	MinorReductionPercent decimal.Decimal `yaml:"minor_reduction_percent" json:"minor_reduction_percent"`

	// Technical difficulty inputs.
	HardCategories []string `yaml:"hard_categories" json:"hard_categories"`

	// Retrofit cost model.
	CostTiers RetrofitCostTiers `yaml:"cost_tiers" json:"cost_tiers"`
}

// DefaultPolicyConfig returns the Energize Denver reference values.
func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		StandardRate:    decimal.NewFromFloat(0.15),
		OptInRate:       decimal.NewFromFloat(0.23),
		MaxReductionCap: decimal.NewFromFloat(0.42),
		MAITargetFloor:  decimal.NewFromFloat(52.9),

		DiscountRate:        decimal.NewFromFloat(0.07),
		AnalysisBaseYear:    2025,
		OngoingHorizonYears: 12,

		StandardMilestones: StandardMilestones{FirstInterim: 2025, SecondInterim: 2027, Final: 2030},
		OptInMilestones:    OptInMilestones{Interim: 2028, Final: 2032},

		MinPortfolioArea: decimal.NewFromInt(25000),

		CashFlowCategories: []string{
			"Affordable Housing",
			"Senior Living Community",
			"Residence Hall/Dormitory",
		},
		CashFlowPenaltyThreshold: decimal.NewFromInt(100000),

		MaterialNPVThreshold:  decimal.NewFromInt(25000),
		LargeNPVThreshold:     decimal.NewFromInt(100000),
		MinorReductionPercent: decimal.NewFromInt(10),

		HardCategories: []string{
			"Data Center",
			"Manufacturing/Industrial Plant",
			"Hospital (General Medical & Surgical)",
			"Laboratory",
			"Supermarket/Grocery Store",
		},

		CostTiers: RetrofitCostTiers{
			LightCostPerSqFt:         decimal.NewFromFloat(5.0),
			ModerateCostPerSqFt:      decimal.NewFromFloat(12.0),
			DeepCostPerSqFt:          decimal.NewFromFloat(25.0),
			ModerateThresholdPercent: decimal.NewFromInt(15),
			DeepThresholdPercent:     decimal.NewFromInt(30),
		},
	}
}

// IsCashFlowCategory reports whether the property category is one of the known
// cash-flow-constrained uses. Matching is case-insensitive.
func (pc *PolicyConfig) IsCashFlowCategory(category string) bool {
	return containsFold(pc.CashFlowCategories, category)
}

// IsHardCategory reports whether the property category carries the technical
// difficulty multiplier. Matching is case-insensitive.
func (pc *PolicyConfig) IsHardCategory(category string) bool {
	return containsFold(pc.HardCategories, category)
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
