package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// decisionContext carries the derived quantities the rule cascade inspects.
type decisionContext struct {
	building            *domain.Building
	targets             domain.PathTargets
	standard            *domain.PenaltySchedule
	optIn               *domain.PenaltySchedule
	retrofit            domain.RetrofitEstimate
	difficulty          domain.DifficultyScore
	cashFlowConstrained bool

	// npvAdvantage = standard NPV - opt-in NPV; positive means opting in saves money.
	npvAdvantage decimal.Decimal

	// standardGaps holds currentEUI - adjusted target per standard milestone,
	// in year order. Positive gap means the milestone is missed.
	standardGaps []decimal.Decimal
}

// decisionRule is one entry in the ordered cascade. The first rule whose applies
// predicate matches produces the recommendation; later rules are not evaluated.
// Keeping the priority order as data (not buried control flow) makes each rule
// independently testable.
type decisionRule struct {
	name    string
	applies func(*decisionContext) bool
	outcome func(*decisionContext) domain.OptInRecommendation
}

// OptInDecisionEngine recommends a compliance path for a building by evaluating
// an ordered rule cascade, falling back to a financial NPV comparison when no
// priority rule fires. MAI buildings bypass the cascade entirely.
type OptInDecisionEngine struct {
	policy domain.PolicyConfig
	rules  []decisionRule
}

// NewOptInDecisionEngine creates a decision engine bound to a policy.
func NewOptInDecisionEngine(policy domain.PolicyConfig) *OptInDecisionEngine {
	e := &OptInDecisionEngine{policy: policy}
	e.rules = []decisionRule{
		{
			name: "fails_all_milestones",
			applies: func(ctx *decisionContext) bool {
				for _, gap := range ctx.standardGaps {
					if gap.LessThanOrEqual(decimal.Zero) {
						return false
					}
				}
				return len(ctx.standardGaps) > 0
			},
			outcome: func(ctx *decisionContext) domain.OptInRecommendation {
				return e.recommendation(ctx, true, 100, domain.RationaleCannotMeetAnyTargets)
			},
		},
		{
			name: "cash_flow_constrained",
			applies: func(ctx *decisionContext) bool {
				return ctx.cashFlowConstrained &&
					ctx.standard.FirstMilestonePenalty().GreaterThan(e.policy.CashFlowPenaltyThreshold)
			},
			outcome: func(ctx *decisionContext) domain.OptInRecommendation {
				return e.recommendation(ctx, true, 95, domain.RationaleCashFlowConstraints)
			},
		},
		{
			name: "technical_infeasibility",
			applies: func(ctx *decisionContext) bool {
				return ctx.difficulty.Score.GreaterThanOrEqual(decimal.NewFromInt(80))
			},
			outcome: func(ctx *decisionContext) domain.OptInRecommendation {
				return e.recommendation(ctx, true, 90, domain.RationaleTechnicalInfeasible)
			},
		},
		{
			name: "already_meets_first_milestone",
			applies: func(ctx *decisionContext) bool {
				return len(ctx.standardGaps) > 0 && ctx.standardGaps[0].LessThanOrEqual(decimal.Zero)
			},
			outcome: func(ctx *decisionContext) domain.OptInRecommendation {
				return e.recommendation(ctx, false, 100, domain.RationaleAlreadyMeetsTarget)
			},
		},
		{
			name: "opt_in_materially_more_expensive",
			applies: func(ctx *decisionContext) bool {
				return ctx.npvAdvantage.LessThan(e.policy.MaterialNPVThreshold.Neg())
			},
			outcome: func(ctx *decisionContext) domain.OptInRecommendation {
				return e.recommendation(ctx, false, 90, domain.RationaleOptInTooExpensive)
			},
		},
		{
			name: "minor_reduction_needed",
			applies: func(ctx *decisionContext) bool {
				return ctx.retrofit.ReductionPercent.LessThan(e.policy.MinorReductionPercent)
			},
			outcome: func(ctx *decisionContext) domain.OptInRecommendation {
				return e.recommendation(ctx, false, 90, domain.RationaleMinorReductionNeeded)
			},
		},
	}
	return e
}

// Recommend evaluates the cascade and returns the path recommendation.
// Identical inputs always yield identical output; there is no hidden state.
func (e *OptInDecisionEngine) Recommend(
	b *domain.Building,
	targets domain.PathTargets,
	standard, optIn *domain.PenaltySchedule,
	retrofit domain.RetrofitEstimate,
	difficulty domain.DifficultyScore,
	cashFlowConstrained bool,
) domain.OptInRecommendation {
	ctx := &decisionContext{
		building:            b,
		targets:             targets,
		standard:            standard,
		optIn:               optIn,
		retrofit:            retrofit,
		difficulty:          difficulty,
		cashFlowConstrained: cashFlowConstrained,
		npvAdvantage:        standard.TotalNPV.Sub(optIn.TotalNPV),
		standardGaps:        standardGaps(b.CurrentEUI, targets.Standard),
	}

	// Hard routing, not a preference: MAI buildings are on the opt-in timeline
	// no matter what the financials say.
	if b.IsMAI {
		return e.recommendation(ctx, true, 100, domain.RationaleRequiredByCategory)
	}

	for _, rule := range e.rules {
		if rule.applies(ctx) {
			return rule.outcome(ctx)
		}
	}

	return e.financialTieBreak(ctx)
}

// financialTieBreak decides on NPV advantage alone. Confidence scales with the
// size of the advantage and approaches a floor of 50 as the split evens out.
func (e *OptInDecisionEngine) financialTieBreak(ctx *decisionContext) domain.OptInRecommendation {
	adv := ctx.npvAdvantage
	switch {
	case adv.GreaterThan(e.policy.LargeNPVThreshold):
		return e.recommendation(ctx, true, 85, domain.RationaleNPVFavorsOptIn)
	case adv.GreaterThan(decimal.Zero):
		conf := 50 + scaledConfidence(adv, e.policy.LargeNPVThreshold, 25)
		return e.recommendation(ctx, true, conf, domain.RationaleNPVFavorsOptIn)
	default:
		conf := 50 + scaledConfidence(adv.Abs(), e.policy.LargeNPVThreshold, 40)
		return e.recommendation(ctx, false, conf, domain.RationaleNPVFavorsStandard)
	}
}

func (e *OptInDecisionEngine) recommendation(ctx *decisionContext, optIn bool, confidence int, rationale domain.Rationale) domain.OptInRecommendation {
	return domain.OptInRecommendation{
		ShouldOptIn:      optIn,
		Confidence:       confidence,
		PrimaryRationale: rationale,
		NPVAdvantage:     ctx.npvAdvantage,
	}
}

// scaledConfidence maps magnitude/reference onto [0, span], saturating at span.
func scaledConfidence(magnitude, reference decimal.Decimal, span int) int {
	if reference.LessThanOrEqual(decimal.Zero) {
		return span
	}
	scaled := magnitude.Div(reference).Mul(decimal.NewFromInt(int64(span)))
	if scaled.GreaterThan(decimal.NewFromInt(int64(span))) {
		return span
	}
	return int(scaled.IntPart())
}

// standardGaps returns currentEUI - adjusted target per standard milestone in year order.
func standardGaps(currentEUI decimal.Decimal, standard []domain.MilestoneTarget) []decimal.Decimal {
	gaps := make([]decimal.Decimal, len(standard))
	for i, mt := range standard {
		gaps[i] = currentEUI.Sub(mt.Target.Value)
	}
	return gaps
}
