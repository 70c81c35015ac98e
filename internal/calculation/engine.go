package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ComplianceEngine orchestrates the per-building computation: validation, target
// adjustment, both penalty schedules, the retrofit and difficulty estimates, and
// the opt-in recommendation. Every component is a pure function over its inputs;
// the engine holds no per-building state.
type ComplianceEngine struct {
	Policy     domain.PolicyConfig
	Schedules  *PathScheduleBuilder
	Penalties  *PenaltyCalculator
	Retrofit   *RetrofitCostEstimator
	Difficulty *TechnicalDifficultyScorer
	Decision   *OptInDecisionEngine
	Logger     Logger

	// IncludeOngoing extends both schedules' totals with the flat continuation
	// of the final milestone penalty through the analysis horizon.
	IncludeOngoing bool
}

// NewComplianceEngine creates an engine with all components bound to one policy.
func NewComplianceEngine(policy domain.PolicyConfig) *ComplianceEngine {
	return &ComplianceEngine{
		Policy:     policy,
		Schedules:  NewPathScheduleBuilder(policy),
		Penalties:  NewPenaltyCalculator(policy),
		Retrofit:   NewRetrofitCostEstimator(policy),
		Difficulty: NewTechnicalDifficultyScorer(policy),
		Decision:   NewOptInDecisionEngine(policy),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (ce *ComplianceEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ValidateBuilding checks the fields the engine computes from. Failures are
// *domain.InvalidBuildingDataError; a missing baseline is deliberately not an
// error here (the target adjuster degrades gracefully instead).
func ValidateBuilding(b *domain.Building) error {
	if b.ID == "" {
		return &domain.InvalidBuildingDataError{BuildingID: "(unknown)", Field: "id", Reason: "is required"}
	}
	if b.Area.LessThanOrEqual(decimal.Zero) {
		return &domain.InvalidBuildingDataError{BuildingID: b.ID, Field: "area", Reason: "must be positive"}
	}
	if b.CurrentEUI.LessThan(decimal.Zero) {
		return &domain.InvalidBuildingDataError{BuildingID: b.ID, Field: "current_eui", Reason: "cannot be negative"}
	}
	if b.RawTargets.FirstInterim.LessThanOrEqual(decimal.Zero) {
		return &domain.InvalidBuildingDataError{BuildingID: b.ID, Field: "raw_targets.first_interim", Reason: "is missing or non-positive"}
	}
	if b.RawTargets.SecondInterim.LessThanOrEqual(decimal.Zero) {
		return &domain.InvalidBuildingDataError{BuildingID: b.ID, Field: "raw_targets.second_interim", Reason: "is missing or non-positive"}
	}
	if b.RawTargets.Final.LessThanOrEqual(decimal.Zero) {
		return &domain.InvalidBuildingDataError{BuildingID: b.ID, Field: "raw_targets.final", Reason: "is missing or non-positive"}
	}
	return nil
}

// AnalyzeBuilding runs the full pipeline for one building.
func (ce *ComplianceEngine) AnalyzeBuilding(b *domain.Building) (*domain.BuildingAnalysis, error) {
	if err := ValidateBuilding(b); err != nil {
		return nil, err
	}

	targets := ce.Schedules.BuildTargets(b)

	standard := ce.Penalties.PathSchedule(b.CurrentEUI, b.Area, targets.Standard, domain.PathStandard, ce.IncludeOngoing)
	optIn := ce.Penalties.PathSchedule(b.CurrentEUI, b.Area, targets.OptIn, domain.PathOptIn, ce.IncludeOngoing)

	cashFlowConstrained := ce.DeriveCashFlowConstraint(b, &standard)

	// The retrofit estimate and difficulty score are sized against the deepest
	// requirement: the standard-path final target.
	finalTarget := targets.StandardFinal().Target.Value
	retrofit := ce.Retrofit.Estimate(b.CurrentEUI, finalTarget, b.Area)
	difficulty := ce.Difficulty.Score(retrofit.ReductionPercent, b.Age(ce.Policy.AnalysisBaseYear), b.PropertyCategory)

	recommendation := ce.Decision.Recommend(b, targets, &standard, &optIn, retrofit, difficulty, cashFlowConstrained)

	ce.Logger.Debugf("building %s: std NPV %s, opt-in NPV %s, opt_in=%t (%s, conf %d)",
		b.ID, standard.TotalNPV.StringFixed(0), optIn.TotalNPV.StringFixed(0),
		recommendation.ShouldOptIn, recommendation.PrimaryRationale, recommendation.Confidence)

	return &domain.BuildingAnalysis{
		BuildingID:          b.ID,
		Targets:             targets,
		StandardSchedule:    standard,
		OptInSchedule:       optIn,
		Retrofit:            retrofit,
		Difficulty:          difficulty,
		Recommendation:      recommendation,
		CashFlowConstrained: cashFlowConstrained,
	}, nil
}

// DeriveCashFlowConstraint combines the explicit data flag, the known constrained
// categories, and the near-term penalty threshold.
func (ce *ComplianceEngine) DeriveCashFlowConstraint(b *domain.Building, standard *domain.PenaltySchedule) bool {
	if b.CashFlowConstrained {
		return true
	}
	if ce.Policy.IsCashFlowCategory(b.PropertyCategory) {
		return true
	}
	return standard.FirstMilestonePenalty().GreaterThan(ce.Policy.CashFlowPenaltyThreshold)
}
