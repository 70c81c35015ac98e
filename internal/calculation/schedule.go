package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
)

// PathScheduleBuilder derives the ordered milestone-year -> adjusted-target lists
// for both compliance paths. The opt-in path never adjusts independently: its
// interim milestone reuses the standard first-interim adjusted value and its final
// milestone reuses the standard final adjusted value, so both paths always agree
// on the underlying targets and differ only in rate and timing.
type PathScheduleBuilder struct {
	policy   domain.PolicyConfig
	adjuster *TargetAdjuster
}

// NewPathScheduleBuilder creates a schedule builder bound to a policy.
func NewPathScheduleBuilder(policy domain.PolicyConfig) *PathScheduleBuilder {
	return &PathScheduleBuilder{
		policy:   policy,
		adjuster: NewTargetAdjuster(policy),
	}
}

// BuildTargets computes adjusted targets for both paths of a building.
// The building must already have passed ValidateBuilding.
//
// Standard milestone years honor the building's own deadlines when the data
// supplies them; opt-in milestone years are fixed by the ordinance.
func (sb *PathScheduleBuilder) BuildTargets(b *domain.Building) domain.PathTargets {
	standard := []domain.MilestoneTarget{
		{
			Milestone: domain.MilestoneFirstInterim,
			Year:      yearOr(b.TargetYears.FirstInterim, sb.policy.StandardMilestones.FirstInterim),
			Target:    sb.adjuster.Adjust(b.RawTargets.FirstInterim, b.BaselineEUI, b.IsMAI),
		},
		{
			Milestone: domain.MilestoneSecondInterim,
			Year:      yearOr(b.TargetYears.SecondInterim, sb.policy.StandardMilestones.SecondInterim),
			Target:    sb.adjuster.Adjust(b.RawTargets.SecondInterim, b.BaselineEUI, b.IsMAI),
		},
		{
			Milestone: domain.MilestoneFinal,
			Year:      yearOr(b.TargetYears.Final, sb.policy.StandardMilestones.Final),
			Target:    sb.adjuster.Adjust(b.RawTargets.Final, b.BaselineEUI, b.IsMAI),
		},
	}

	optIn := []domain.MilestoneTarget{
		{
			Milestone: domain.MilestoneInterim,
			Year:      sb.policy.OptInMilestones.Interim,
			Target:    standard[0].Target,
		},
		{
			Milestone: domain.MilestoneFinal,
			Year:      sb.policy.OptInMilestones.Final,
			Target:    standard[2].Target,
		},
	}

	return domain.PathTargets{Standard: standard, OptIn: optIn}
}

// RequiredPath returns the path a building must follow before any recommendation
// logic runs: MAI buildings are pinned to the opt-in timeline unconditionally.
func (sb *PathScheduleBuilder) RequiredPath(b *domain.Building) (domain.Path, bool) {
	if b.IsMAI {
		return domain.PathOptIn, true
	}
	return "", false
}

func yearOr(actual, fallback int) int {
	if actual > 0 {
		return actual
	}
	return fallback
}
