package domain

import (
	"github.com/shopspring/decimal"
)

// Path identifies which compliance timeline a penalty schedule follows.
type Path string

const (
	// PathStandard is the default three-milestone timeline with the lower penalty rate.
	PathStandard Path = "standard"
	// PathOptIn is the alternate two-milestone (ACO) timeline with the higher penalty rate.
	PathOptIn Path = "opt_in"
)

// Milestone labels a compliance target within a path.
type Milestone string

const (
	MilestoneFirstInterim  Milestone = "first_interim"
	MilestoneSecondInterim Milestone = "second_interim"
	MilestoneInterim       Milestone = "interim" // opt-in path has a single interim milestone
	MilestoneFinal         Milestone = "final"
)

// RawTargets holds the regulator-issued, pre-adjustment target EUIs for a building.
type RawTargets struct {
	FirstInterim  decimal.Decimal `yaml:"first_interim" json:"first_interim"`
	SecondInterim decimal.Decimal `yaml:"second_interim" json:"second_interim"`
	Final         decimal.Decimal `yaml:"final" json:"final"`
}

// TargetYears holds a building's actual standard-path milestone years when they
// deviate from the ordinance calendar (some buildings received shifted deadlines).
// Zero values mean "use the policy calendar".
type TargetYears struct {
	FirstInterim  int `yaml:"first_interim,omitempty" json:"first_interim,omitempty"`
	SecondInterim int `yaml:"second_interim,omitempty" json:"second_interim,omitempty"`
	Final         int `yaml:"final,omitempty" json:"final,omitempty"`
}

// Building represents one property regulated under the building performance ordinance.
// Field values come from whatever upstream source loaded them; the engine depends only
// on this shape, never on a source schema.
type Building struct {
	ID               string          `yaml:"id" json:"id"`
	Name             string          `yaml:"name,omitempty" json:"name,omitempty"`
	PropertyCategory string          `yaml:"property_category" json:"property_category"`
	Area             decimal.Decimal `yaml:"area" json:"area"` // gross floor area, sqft
	CurrentEUI       decimal.Decimal `yaml:"current_eui" json:"current_eui"`
	BaselineEUI      decimal.Decimal `yaml:"baseline_eui" json:"baseline_eui"`
	BaselineYear     int             `yaml:"baseline_year" json:"baseline_year"`
	YearBuilt        int             `yaml:"year_built" json:"year_built"`
	RawTargets       RawTargets      `yaml:"raw_targets" json:"raw_targets"`
	TargetYears      TargetYears     `yaml:"target_years,omitempty" json:"target_years,omitempty"`

	// IsMAI marks a manufacturing/agricultural/industrial building. MAI buildings are
	// pinned to the opt-in timeline and get the additional final-target floor. The
	// authoritative source for this flag is the MAI target-summary reference list,
	// not the property-category string.
	IsMAI bool `yaml:"is_mai" json:"is_mai"`

	// CashFlowConstrained is the explicit flag from the data source (e.g. regulated
	// affordable housing). The engine additionally derives the constraint from the
	// category list and the near-term penalty threshold.
	CashFlowConstrained bool `yaml:"cash_flow_constrained,omitempty" json:"cash_flow_constrained,omitempty"`
}

// Age returns the building age at the given calendar year. Returns 0 when the
// construction year is unknown or in the future.
func (b *Building) Age(asOfYear int) int {
	if b.YearBuilt <= 0 || b.YearBuilt > asOfYear {
		return 0
	}
	return asOfYear - b.YearBuilt
}

// AdjustmentReason reports which rule produced an adjusted target value.
type AdjustmentReason string

const (
	AdjustmentNone       AdjustmentReason = "no_adjustment"
	AdjustmentCapApplied AdjustmentReason = "cap_applied"
	AdjustmentMAIFloor   AdjustmentReason = "mai_floor"
	AdjustmentNoBaseline AdjustmentReason = "no_baseline_unadjusted"
)

// AdjustedTarget is a target EUI after the cap/floor rules, with the binding rule noted.
type AdjustedTarget struct {
	Value  decimal.Decimal  `json:"value"`
	Reason AdjustmentReason `json:"reason"`
}

// MilestoneTarget pairs a milestone label and calendar year with its adjusted target.
type MilestoneTarget struct {
	Milestone Milestone      `json:"milestone"`
	Year      int            `json:"year"`
	Target    AdjustedTarget `json:"target"`
}

// PathTargets holds the ordered milestone targets for both compliance paths.
// By construction the opt-in interim target equals the standard first-interim target
// and the opt-in final target equals the standard final target.
type PathTargets struct {
	Standard []MilestoneTarget `json:"standard"`
	OptIn    []MilestoneTarget `json:"opt_in"`
}

// ForPath returns the milestone targets for the given path.
func (pt *PathTargets) ForPath(path Path) []MilestoneTarget {
	if path == PathOptIn {
		return pt.OptIn
	}
	return pt.Standard
}

// StandardFinal returns the adjusted final target on the standard path.
// Panics on an empty PathTargets, which PathScheduleBuilder never produces.
func (pt *PathTargets) StandardFinal() MilestoneTarget {
	return pt.Standard[len(pt.Standard)-1]
}

// StandardFirst returns the adjusted first-interim target on the standard path.
func (pt *PathTargets) StandardFirst() MilestoneTarget {
	return pt.Standard[0]
}

// MilestonePenalty is the computed penalty at one milestone.
type MilestonePenalty struct {
	Milestone Milestone       `json:"milestone"`
	Year      int             `json:"year"`
	Penalty   decimal.Decimal `json:"penalty"`
}

// PenaltySchedule is the computed penalty stream for one building on one path.
// It is a pure derived value, recomputed on every request.
type PenaltySchedule struct {
	Path Path            `json:"path"`
	Rate decimal.Decimal `json:"rate"`

	// Milestones lists the per-milestone penalties in year order;
	// PerYearPenalty is the same data keyed by year.
	Milestones     []MilestonePenalty      `json:"milestones"`
	PerYearPenalty map[int]decimal.Decimal `json:"per_year_penalty"`

	TotalNominal    decimal.Decimal `json:"total_nominal"`
	TotalNPV        decimal.Decimal `json:"total_npv"`
	IncludesOngoing bool            `json:"includes_ongoing"`
}

// PenaltyAt returns the penalty for a year, zero if the year has no milestone.
func (ps *PenaltySchedule) PenaltyAt(year int) decimal.Decimal {
	if p, ok := ps.PerYearPenalty[year]; ok {
		return p
	}
	return decimal.Zero
}

// FirstMilestonePenalty returns the penalty at the path's earliest milestone.
func (ps *PenaltySchedule) FirstMilestonePenalty() decimal.Decimal {
	if len(ps.Milestones) == 0 {
		return decimal.Zero
	}
	return ps.Milestones[0].Penalty
}

// CostTier classifies the depth of retrofit needed to reach a target.
type CostTier string

const (
	TierLight    CostTier = "light"
	TierModerate CostTier = "moderate"
	TierDeep     CostTier = "deep"
)

// RetrofitEstimate is an order-of-magnitude capital cost estimate for reaching a target.
type RetrofitEstimate struct {
	ReductionPercent decimal.Decimal `json:"reduction_percent"`
	Tier             CostTier        `json:"tier"`
	CostPerSqFt      decimal.Decimal `json:"cost_per_sqft"`
	TotalCost        decimal.Decimal `json:"total_cost"`
}

// Feasibility bands a technical difficulty score.
type Feasibility string

const (
	FeasibilityAchievable    Feasibility = "achievable"
	FeasibilityModerate      Feasibility = "moderate"
	FeasibilityDifficult     Feasibility = "difficult"
	FeasibilityVeryDifficult Feasibility = "very_difficult"
)

// DifficultyScore rates how hard the required reduction is for this building.
type DifficultyScore struct {
	Score       decimal.Decimal `json:"score"` // 0-100
	Feasibility Feasibility     `json:"feasibility"`
}

// Rationale is the enumerated primary reason behind an opt-in recommendation.
type Rationale string

const (
	RationaleCannotMeetAnyTargets  Rationale = "cannot_meet_any_targets"
	RationaleCashFlowConstraints   Rationale = "cash_flow_constraints"
	RationaleTechnicalInfeasible   Rationale = "technical_infeasibility"
	RationaleAlreadyMeetsTarget    Rationale = "already_meets_target"
	RationaleOptInTooExpensive     Rationale = "opt_in_too_expensive"
	RationaleMinorReductionNeeded  Rationale = "minor_reduction_needed"
	RationaleNPVFavorsOptIn        Rationale = "npv_favors_opt_in"
	RationaleNPVFavorsStandard     Rationale = "npv_favors_standard"
	RationaleRequiredByCategory    Rationale = "required_by_category"
)

// OptInRecommendation is the decision engine's verdict for one building.
type OptInRecommendation struct {
	ShouldOptIn      bool            `json:"should_opt_in"`
	Confidence       int             `json:"confidence"` // 0-100
	PrimaryRationale Rationale       `json:"primary_rationale"`
	NPVAdvantage     decimal.Decimal `json:"npv_advantage"` // standard NPV - opt-in NPV; positive favors opting in
}

// BuildingAnalysis bundles every per-building output the engine exposes.
type BuildingAnalysis struct {
	BuildingID          string              `json:"building_id"`
	Targets             PathTargets         `json:"targets"`
	StandardSchedule    PenaltySchedule     `json:"standard_schedule"`
	OptInSchedule       PenaltySchedule     `json:"opt_in_schedule"`
	Retrofit            RetrofitEstimate    `json:"retrofit"`
	Difficulty          DifficultyScore     `json:"difficulty"`
	Recommendation      OptInRecommendation `json:"recommendation"`
	CashFlowConstrained bool                `json:"cash_flow_constrained"`
}
