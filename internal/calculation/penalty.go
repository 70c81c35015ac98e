package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// PenaltyCalculator computes per-milestone penalties and aggregates them into a
// path schedule with nominal and discounted totals. All methods are
// side-effect-free; no rounding is applied inside accumulation.
type PenaltyCalculator struct {
	policy domain.PolicyConfig
}

// NewPenaltyCalculator creates a penalty calculator bound to a policy.
func NewPenaltyCalculator(policy domain.PolicyConfig) *PenaltyCalculator {
	return &PenaltyCalculator{policy: policy}
}

// Penalty returns the single-year penalty: max(0, currentEUI - targetEUI) * area * rate.
// Never negative; a building at or under its target owes exactly zero.
func (pc *PenaltyCalculator) Penalty(currentEUI, targetEUI, area, rate decimal.Decimal) decimal.Decimal {
	excess := currentEUI.Sub(targetEUI)
	if excess.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return excess.Mul(area).Mul(rate)
}

// RateFor returns the per-unit penalty rate for a compliance path.
func (pc *PenaltyCalculator) RateFor(path domain.Path) decimal.Decimal {
	if path == domain.PathOptIn {
		return pc.policy.OptInRate
	}
	return pc.policy.StandardRate
}

// PathSchedule computes the full penalty schedule for one building on one path.
//
// When includeOngoing is true, every year after the last milestone through
// AnalysisBaseYear + OngoingHorizonYears repeats the final milestone's penalty
// (flat continuation, not re-escalated) in both totals. The continuation years
// are folded into the totals but not listed as milestones.
func (pc *PenaltyCalculator) PathSchedule(currentEUI, area decimal.Decimal, targets []domain.MilestoneTarget, path domain.Path, includeOngoing bool) domain.PenaltySchedule {
	rate := pc.RateFor(path)

	schedule := domain.PenaltySchedule{
		Path:            path,
		Rate:            rate,
		Milestones:      make([]domain.MilestonePenalty, 0, len(targets)),
		PerYearPenalty:  make(map[int]decimal.Decimal, len(targets)),
		TotalNominal:    decimal.Zero,
		TotalNPV:        decimal.Zero,
		IncludesOngoing: includeOngoing,
	}

	lastYear := 0
	lastPenalty := decimal.Zero
	for _, mt := range targets {
		penalty := pc.Penalty(currentEUI, mt.Target.Value, area, rate)
		schedule.Milestones = append(schedule.Milestones, domain.MilestonePenalty{
			Milestone: mt.Milestone,
			Year:      mt.Year,
			Penalty:   penalty,
		})
		schedule.PerYearPenalty[mt.Year] = penalty
		schedule.TotalNominal = schedule.TotalNominal.Add(penalty)
		schedule.TotalNPV = schedule.TotalNPV.Add(pc.Discount(penalty, mt.Year))
		if mt.Year > lastYear {
			lastYear = mt.Year
			lastPenalty = penalty
		}
	}

	if includeOngoing && lastYear > 0 {
		horizon := pc.policy.AnalysisBaseYear + pc.policy.OngoingHorizonYears
		for year := lastYear + 1; year <= horizon; year++ {
			schedule.TotalNominal = schedule.TotalNominal.Add(lastPenalty)
			schedule.TotalNPV = schedule.TotalNPV.Add(pc.Discount(lastPenalty, year))
		}
	}

	return schedule
}

// Discount brings an amount in the given year back to the analysis base year:
// amount / (1 + r)^(year - base). Years at or before the base year are undiscounted.
func (pc *PenaltyCalculator) Discount(amount decimal.Decimal, year int) decimal.Decimal {
	exponent := year - pc.policy.AnalysisBaseYear
	if exponent <= 0 || amount.IsZero() {
		return amount
	}
	factor := decimal.NewFromInt(1).Add(pc.policy.DiscountRate).Pow(decimal.NewFromInt(int64(exponent)))
	return amount.Div(factor)
}
