package calculation

import (
	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TechnicalDifficultyScorer rates how hard the required reduction is on a 0-100
// scale, factoring building age and property category. Unknown categories get
// the neutral multiplier.
type TechnicalDifficultyScorer struct {
	policy domain.PolicyConfig
}

// NewTechnicalDifficultyScorer creates a scorer bound to a policy.
func NewTechnicalDifficultyScorer(policy domain.PolicyConfig) *TechnicalDifficultyScorer {
	return &TechnicalDifficultyScorer{policy: policy}
}

// Score computes the difficulty score and feasibility band.
func (tds *TechnicalDifficultyScorer) Score(reductionPct decimal.Decimal, buildingAge int, category string) domain.DifficultyScore {
	base := baseDifficulty(reductionPct)

	ageMult := decimal.NewFromInt(1)
	switch {
	case buildingAge > 50:
		ageMult = decimal.NewFromFloat(1.5)
	case buildingAge > 30:
		ageMult = decimal.NewFromFloat(1.2)
	}

	catMult := decimal.NewFromInt(1)
	if tds.policy.IsHardCategory(category) {
		catMult = decimal.NewFromFloat(1.3)
	}

	score := base.Mul(ageMult).Mul(catMult)
	hundred := decimal.NewFromInt(100)
	if score.GreaterThan(hundred) {
		score = hundred
	}

	return domain.DifficultyScore{
		Score:       score,
		Feasibility: feasibilityBand(score),
	}
}

func baseDifficulty(reductionPct decimal.Decimal) decimal.Decimal {
	switch {
	case reductionPct.GreaterThan(decimal.NewFromInt(50)):
		return decimal.NewFromInt(100)
	case reductionPct.GreaterThan(decimal.NewFromInt(40)):
		return decimal.NewFromInt(80)
	case reductionPct.GreaterThan(decimal.NewFromInt(30)):
		return decimal.NewFromInt(60)
	case reductionPct.GreaterThan(decimal.NewFromInt(20)):
		return decimal.NewFromInt(40)
	default:
		return decimal.NewFromInt(20)
	}
}

func feasibilityBand(score decimal.Decimal) domain.Feasibility {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return domain.FeasibilityVeryDifficult
	case score.GreaterThanOrEqual(decimal.NewFromInt(60)):
		return domain.FeasibilityDifficult
	case score.GreaterThanOrEqual(decimal.NewFromInt(40)):
		return domain.FeasibilityModerate
	default:
		return domain.FeasibilityAchievable
	}
}
