package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
)

// MappingKey identifies one (path, milestone, actual year) combination seen
// during normalization.
type MappingKey struct {
	Path       domain.Path
	Milestone  domain.Milestone
	ActualYear int
}

// YearNormalizer maps a building's actual, possibly irregular, milestone years
// onto the policy's canonical years so per-building results can be summed into
// portfolio-wide time series. It adjusts only the year key, never the penalty
// values. A running count per mapping is kept for diagnostic reporting.
//
// Not safe for concurrent use; the aggregator normalizes in its sequential
// reduce step.
type YearNormalizer struct {
	policy domain.PolicyConfig
	counts map[MappingKey]int
}

// NewYearNormalizer creates a normalizer bound to a policy calendar.
func NewYearNormalizer(policy domain.PolicyConfig) *YearNormalizer {
	return &YearNormalizer{
		policy: policy,
		counts: make(map[MappingKey]int),
	}
}

// Normalize returns the canonical year for a (path, milestone) pair and records
// the mapping. Unrecognized combinations pass through unchanged.
func (yn *YearNormalizer) Normalize(actualYear int, milestone domain.Milestone, path domain.Path) int {
	canonical := actualYear
	switch path {
	case domain.PathStandard:
		switch milestone {
		case domain.MilestoneFirstInterim:
			canonical = yn.policy.StandardMilestones.FirstInterim
		case domain.MilestoneSecondInterim:
			canonical = yn.policy.StandardMilestones.SecondInterim
		case domain.MilestoneFinal:
			canonical = yn.policy.StandardMilestones.Final
		}
	case domain.PathOptIn:
		switch milestone {
		case domain.MilestoneInterim:
			canonical = yn.policy.OptInMilestones.Interim
		case domain.MilestoneFinal:
			canonical = yn.policy.OptInMilestones.Final
		}
	}

	yn.counts[MappingKey{Path: path, Milestone: milestone, ActualYear: actualYear}]++
	return canonical
}

// MappingCounts returns a copy of the diagnostic mapping counter.
func (yn *YearNormalizer) MappingCounts() map[MappingKey]int {
	out := make(map[MappingKey]int, len(yn.counts))
	for k, v := range yn.counts {
		out[k] = v
	}
	return out
}

// Reset clears the diagnostic counter.
func (yn *YearNormalizer) Reset() {
	yn.counts = make(map[MappingKey]int)
}
