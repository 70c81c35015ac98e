package domain

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuilding_Age(t *testing.T) {
	b := Building{YearBuilt: 1988}
	assert.Equal(t, 37, b.Age(2025))

	unknown := Building{}
	assert.Equal(t, 0, unknown.Age(2025))

	future := Building{YearBuilt: 2030}
	assert.Equal(t, 0, future.Age(2025))
}

func TestPenaltySchedule_PenaltyAt(t *testing.T) {
	ps := PenaltySchedule{
		PerYearPenalty: map[int]decimal.Decimal{2025: decimal.NewFromInt(28526)},
	}
	assert.True(t, ps.PenaltyAt(2025).Equal(decimal.NewFromInt(28526)))
	assert.True(t, ps.PenaltyAt(2026).IsZero())
}

func TestScenarioTable_Years(t *testing.T) {
	table := ScenarioTable{
		PenaltyByYear: map[int]decimal.Decimal{
			2030: decimal.Zero,
			2025: decimal.Zero,
			2027: decimal.Zero,
		},
	}
	assert.Equal(t, []int{2025, 2027, 2030}, table.Years())
}

func TestPolicyConfig_CategoryMatching(t *testing.T) {
	policy := DefaultPolicyConfig()

	assert.True(t, policy.IsCashFlowCategory("Affordable Housing"))
	assert.True(t, policy.IsCashFlowCategory("affordable housing"))
	assert.False(t, policy.IsCashFlowCategory("Office"))

	assert.True(t, policy.IsHardCategory("Data Center"))
	assert.False(t, policy.IsHardCategory(""))
}

func TestNewBuildingError(t *testing.T) {
	invalid := &InvalidBuildingDataError{BuildingID: "b1", Field: "area", Reason: "must be positive"}
	wrapped := fmt.Errorf("analysis: %w", invalid)

	got := NewBuildingError("b1", wrapped)
	assert.Equal(t, ErrorKindInvalidData, got.Kind)
	assert.Contains(t, got.Message, "area must be positive")

	other := NewBuildingError("b2", fmt.Errorf("boom"))
	assert.Equal(t, ErrorKindAnalysis, other.Kind)
	assert.Equal(t, "boom", other.Message)
}
