package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// RetrofitCostEstimator maps a required EUI reduction to a cost tier and produces
// an order-of-magnitude capital cost estimate. This is a planning number, not a
// bid; the tiers are deliberately coarse.
type RetrofitCostEstimator struct {
	policy domain.PolicyConfig
}

// NewRetrofitCostEstimator creates an estimator bound to a policy.
func NewRetrofitCostEstimator(policy domain.PolicyConfig) *RetrofitCostEstimator {
	return &RetrofitCostEstimator{policy: policy}
}

// Estimate computes the reduction percentage needed to reach targetEUI and the
// resulting tiered cost. A building already at or under target (or with zero
// current EUI) needs a 0% reduction and lands in the light tier.
func (rce *RetrofitCostEstimator) Estimate(currentEUI, targetEUI, area decimal.Decimal) domain.RetrofitEstimate {
	reductionPct := ReductionPercent(currentEUI, targetEUI)

	tiers := rce.policy.CostTiers
	tier := domain.TierLight
	costPerSqFt := tiers.LightCostPerSqFt
	switch {
	case reductionPct.GreaterThan(tiers.DeepThresholdPercent):
		tier = domain.TierDeep
		costPerSqFt = tiers.DeepCostPerSqFt
	case reductionPct.GreaterThanOrEqual(tiers.ModerateThresholdPercent):
		tier = domain.TierModerate
		costPerSqFt = tiers.ModerateCostPerSqFt
	}

	return domain.RetrofitEstimate{
		ReductionPercent: reductionPct,
		Tier:             tier,
		CostPerSqFt:      costPerSqFt,
		TotalCost:        costPerSqFt.Mul(area),
	}
}

// ReductionPercent returns the percentage EUI reduction needed to reach a target,
// 0 when the building already complies or currentEUI is zero.
func ReductionPercent(currentEUI, targetEUI decimal.Decimal) decimal.Decimal {
	if currentEUI.LessThanOrEqual(decimal.Zero) || currentEUI.LessThanOrEqual(targetEUI) {
		return decimal.Zero
	}
	return currentEUI.Sub(targetEUI).Div(currentEUI).Mul(decimal.NewFromInt(100))
}
