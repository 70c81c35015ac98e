package calculation

import (
	"testing"

	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTechnicalDifficultyScorer_Score(t *testing.T) {
	scorer := NewTechnicalDifficultyScorer(domain.DefaultPolicyConfig())

	tests := []struct {
		name                string
		reductionPct        decimal.Decimal
		age                 int
		category            string
		expectedScore       decimal.Decimal
		expectedFeasibility domain.Feasibility
	}{
		{
			name:                "New office with small reduction is achievable",
			reductionPct:        decimal.NewFromInt(10),
			age:                 10,
			category:            "Office",
			expectedScore:       decimal.NewFromInt(20),
			expectedFeasibility: domain.FeasibilityAchievable,
		},
		{
			name:                "Mid-age building gets the 1.2 multiplier",
			reductionPct:        decimal.NewFromInt(25),
			age:                 40,
			category:            "Office",
			expectedScore:       decimal.NewFromInt(48), // 40 * 1.2
			expectedFeasibility: domain.FeasibilityModerate,
		},
		{
			name:                "Old building gets the 1.5 multiplier",
			reductionPct:        decimal.NewFromInt(35),
			age:                 60,
			category:            "Office",
			expectedScore:       decimal.NewFromInt(90), // 60 * 1.5
			expectedFeasibility: domain.FeasibilityVeryDifficult,
		},
		{
			name:                "Hard category compounds with age",
			reductionPct:        decimal.NewFromInt(25),
			age:                 40,
			category:            "Data Center",
			expectedScore:       decimal.NewFromFloat(62.4), // 40 * 1.2 * 1.3
			expectedFeasibility: domain.FeasibilityDifficult,
		},
		{
			name:                "Score is capped at 100",
			reductionPct:        decimal.NewFromInt(55),
			age:                 70,
			category:            "Hospital (General Medical & Surgical)",
			expectedScore:       decimal.NewFromInt(100),
			expectedFeasibility: domain.FeasibilityVeryDifficult,
		},
		{
			name:                "Unknown category keeps the neutral multiplier",
			reductionPct:        decimal.NewFromInt(45),
			age:                 10,
			category:            "Bowling Alley",
			expectedScore:       decimal.NewFromInt(80),
			expectedFeasibility: domain.FeasibilityVeryDifficult,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.reductionPct, tt.age, tt.category)
			assert.True(t, got.Score.Equal(tt.expectedScore),
				"Expected score %s, got %s", tt.expectedScore, got.Score)
			assert.Equal(t, tt.expectedFeasibility, got.Feasibility)
		})
	}
}

func TestTechnicalDifficultyScorer_CategoryCaseInsensitive(t *testing.T) {
	scorer := NewTechnicalDifficultyScorer(domain.DefaultPolicyConfig())

	upper := scorer.Score(decimal.NewFromInt(25), 10, "DATA CENTER")
	lower := scorer.Score(decimal.NewFromInt(25), 10, "data center")
	assert.True(t, upper.Score.Equal(lower.Score))
	assert.True(t, upper.Score.Equal(decimal.NewFromInt(52))) // 40 * 1.3
}

func TestFeasibilityBand_Boundaries(t *testing.T) {
	assert.Equal(t, domain.FeasibilityAchievable, feasibilityBand(decimal.NewFromInt(39)))
	assert.Equal(t, domain.FeasibilityModerate, feasibilityBand(decimal.NewFromInt(40)))
	assert.Equal(t, domain.FeasibilityDifficult, feasibilityBand(decimal.NewFromInt(60)))
	assert.Equal(t, domain.FeasibilityVeryDifficult, feasibilityBand(decimal.NewFromInt(80)))
}
