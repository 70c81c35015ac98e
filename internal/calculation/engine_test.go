package calculation

import (
	"errors"
	"testing"

	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBuilding(t *testing.T) {
	valid := officeBuilding()
	require.NoError(t, ValidateBuilding(&valid))

	tests := []struct {
		name          string
		mutate        func(*domain.Building)
		expectedField string
	}{
		{
			name:          "Missing ID",
			mutate:        func(b *domain.Building) { b.ID = "" },
			expectedField: "id",
		},
		{
			name:          "Zero area",
			mutate:        func(b *domain.Building) { b.Area = decimal.Zero },
			expectedField: "area",
		},
		{
			name:          "Negative current EUI",
			mutate:        func(b *domain.Building) { b.CurrentEUI = decimal.NewFromFloat(-1.0) },
			expectedField: "current_eui",
		},
		{
			name:          "Missing first interim target",
			mutate:        func(b *domain.Building) { b.RawTargets.FirstInterim = decimal.Zero },
			expectedField: "raw_targets.first_interim",
		},
		{
			name:          "Missing second interim target",
			mutate:        func(b *domain.Building) { b.RawTargets.SecondInterim = decimal.NewFromInt(-4) },
			expectedField: "raw_targets.second_interim",
		},
		{
			name:          "Missing final target",
			mutate:        func(b *domain.Building) { b.RawTargets.Final = decimal.Zero },
			expectedField: "raw_targets.final",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := officeBuilding()
			tt.mutate(&b)

			err := ValidateBuilding(&b)
			require.Error(t, err)

			var invalid *domain.InvalidBuildingDataError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.expectedField, invalid.Field)
		})
	}
}

func TestComplianceEngine_AnalyzeBuilding(t *testing.T) {
	engine := NewComplianceEngine(domain.DefaultPolicyConfig())
	b := officeBuilding()

	analysis, err := engine.AnalyzeBuilding(&b)
	require.NoError(t, err)

	assert.Equal(t, "100231", analysis.BuildingID)

	// No adjustment fires for these targets.
	for _, mt := range analysis.Targets.Standard {
		assert.Equal(t, domain.AdjustmentNone, mt.Target.Reason)
	}

	// 3.6 excess * 52826 sqft at each rate.
	assert.True(t, analysis.StandardSchedule.PenaltyAt(2025).Equal(decimal.NewFromFloat(28526.04)),
		"got %s", analysis.StandardSchedule.PenaltyAt(2025))
	assert.True(t, analysis.OptInSchedule.PenaltyAt(2028).Equal(decimal.NewFromFloat(43739.928)),
		"got %s", analysis.OptInSchedule.PenaltyAt(2028))

	// 69 -> 61 is an 11.6% cut: light tier, achievable.
	assert.Equal(t, domain.TierLight, analysis.Retrofit.Tier)
	assert.Equal(t, domain.FeasibilityAchievable, analysis.Difficulty.Feasibility)

	// The building misses every standard milestone today.
	assert.True(t, analysis.Recommendation.ShouldOptIn)
	assert.Equal(t, 100, analysis.Recommendation.Confidence)
	assert.Equal(t, domain.RationaleCannotMeetAnyTargets, analysis.Recommendation.PrimaryRationale)

	assert.False(t, analysis.CashFlowConstrained)
}

func TestComplianceEngine_AnalyzeMAIBuilding(t *testing.T) {
	engine := NewComplianceEngine(domain.DefaultPolicyConfig())

	b := domain.Building{
		ID:               "100547",
		PropertyCategory: "Manufacturing/Industrial Plant",
		Area:             decimal.NewFromInt(118400),
		CurrentEUI:       decimal.NewFromFloat(412.7),
		BaselineEUI:      decimal.NewFromFloat(536.6),
		BaselineYear:     2019,
		YearBuilt:        1962,
		IsMAI:            true,
		RawTargets: domain.RawTargets{
			FirstInterim:  decimal.NewFromFloat(380.0),
			SecondInterim: decimal.NewFromFloat(240.0),
			Final:         decimal.NewFromFloat(100.0),
		},
	}

	analysis, err := engine.AnalyzeBuilding(&b)
	require.NoError(t, err)

	// The 42% cap lifts the final target to 536.6 * 0.58.
	final := analysis.Targets.StandardFinal().Target
	assert.True(t, final.Value.Equal(decimal.NewFromFloat(311.228)))
	assert.Equal(t, domain.AdjustmentCapApplied, final.Reason)

	assert.True(t, analysis.Recommendation.ShouldOptIn)
	assert.Equal(t, 100, analysis.Recommendation.Confidence)
	assert.Equal(t, domain.RationaleRequiredByCategory, analysis.Recommendation.PrimaryRationale)
}

func TestComplianceEngine_AnalyzeInvalidBuilding(t *testing.T) {
	engine := NewComplianceEngine(domain.DefaultPolicyConfig())

	b := officeBuilding()
	b.Area = decimal.Zero

	analysis, err := engine.AnalyzeBuilding(&b)
	assert.Nil(t, analysis)

	var invalid *domain.InvalidBuildingDataError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "100231", invalid.BuildingID)
}

func TestComplianceEngine_DeriveCashFlowConstraint(t *testing.T) {
	engine := NewComplianceEngine(domain.DefaultPolicyConfig())

	smallPenalty := &domain.PenaltySchedule{
		Milestones: []domain.MilestonePenalty{{Year: 2025, Penalty: decimal.NewFromInt(5000)}},
	}
	largePenalty := &domain.PenaltySchedule{
		Milestones: []domain.MilestonePenalty{{Year: 2025, Penalty: decimal.NewFromInt(250000)}},
	}

	office := domain.Building{ID: "o1", PropertyCategory: "Office"}
	assert.False(t, engine.DeriveCashFlowConstraint(&office, smallPenalty))

	flagged := domain.Building{ID: "o2", PropertyCategory: "Office", CashFlowConstrained: true}
	assert.True(t, engine.DeriveCashFlowConstraint(&flagged, smallPenalty))

	affordable := domain.Building{ID: "o3", PropertyCategory: "Affordable Housing"}
	assert.True(t, engine.DeriveCashFlowConstraint(&affordable, smallPenalty))

	// A big enough near-term penalty is itself a cash flow problem.
	assert.True(t, engine.DeriveCashFlowConstraint(&office, largePenalty))
}

func TestComplianceEngine_SetLogger(t *testing.T) {
	engine := NewComplianceEngine(domain.DefaultPolicyConfig())

	engine.SetLogger(nil)
	assert.IsType(t, NopLogger{}, engine.Logger)
}
