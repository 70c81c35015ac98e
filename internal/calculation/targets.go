package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TargetAdjuster derives the legally adjusted target from a raw regulator target
// by applying the maximum-reduction cap and, for MAI buildings, the target floor.
// The cap can only relax a target, never tighten it, so for any building with a
// positive baseline the adjusted value is at least baseline * (1 - cap).
type TargetAdjuster struct {
	policy domain.PolicyConfig
}

// NewTargetAdjuster creates a target adjuster bound to a policy.
func NewTargetAdjuster(policy domain.PolicyConfig) *TargetAdjuster {
	return &TargetAdjuster{policy: policy}
}

// Adjust applies the cap/floor rules to a single raw target.
//
// With no usable baseline (baselineEUI <= 0) the cap is meaningless; the raw
// target is returned unchanged and flagged so callers can filter degraded rows
// out of aggregate statistics.
func (ta *TargetAdjuster) Adjust(rawTarget, baselineEUI decimal.Decimal, isMAI bool) domain.AdjustedTarget {
	if baselineEUI.LessThanOrEqual(decimal.Zero) {
		return domain.AdjustedTarget{Value: rawTarget, Reason: domain.AdjustmentNoBaseline}
	}

	capTarget := CapTarget(baselineEUI, ta.policy.MaxReductionCap)

	adjusted := rawTarget
	reason := domain.AdjustmentNone
	if capTarget.GreaterThan(adjusted) {
		adjusted = capTarget
		reason = domain.AdjustmentCapApplied
	}

	// MAI buildings additionally get the ordinance floor. When the floor is the
	// binding constraint it takes reporting priority over the cap.
	if isMAI && ta.policy.MAITargetFloor.GreaterThan(adjusted) {
		adjusted = ta.policy.MAITargetFloor
		reason = domain.AdjustmentMAIFloor
	}

	return domain.AdjustedTarget{Value: adjusted, Reason: reason}
}

// CapTarget returns the loosest target the reduction cap allows:
// baseline * (1 - cap).
func CapTarget(baselineEUI, maxReductionCap decimal.Decimal) decimal.Decimal {
	return baselineEUI.Mul(decimal.NewFromInt(1).Sub(maxReductionCap))
}
