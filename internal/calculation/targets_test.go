package calculation

import (
	"testing"

	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTargetAdjuster_Adjust(t *testing.T) {
	adjuster := NewTargetAdjuster(domain.DefaultPolicyConfig())

	tests := []struct {
		name           string
		rawTarget      decimal.Decimal
		baselineEUI    decimal.Decimal
		isMAI          bool
		expectedValue  decimal.Decimal
		expectedReason domain.AdjustmentReason
	}{
		{
			name:           "Raw target above cap needs no adjustment",
			rawTarget:      decimal.NewFromFloat(65.4),
			baselineEUI:    decimal.NewFromFloat(69.0),
			expectedValue:  decimal.NewFromFloat(65.4),
			expectedReason: domain.AdjustmentNone,
		},
		{
			name:           "Cap binds when raw target demands more than 42% reduction",
			rawTarget:      decimal.NewFromFloat(100.0),
			baselineEUI:    decimal.NewFromFloat(536.6),
			isMAI:          true,
			expectedValue:  decimal.NewFromFloat(311.228), // 536.6 * 0.58
			expectedReason: domain.AdjustmentCapApplied,
		},
		{
			name:           "MAI floor binds over raw and cap",
			rawTarget:      decimal.NewFromFloat(35.6),
			baselineEUI:    decimal.NewFromFloat(50.8),
			isMAI:          true,
			expectedValue:  decimal.NewFromFloat(52.9),
			expectedReason: domain.AdjustmentMAIFloor,
		},
		{
			name:           "Floor does not apply to non-MAI buildings",
			rawTarget:      decimal.NewFromFloat(35.6),
			baselineEUI:    decimal.NewFromFloat(50.8),
			isMAI:          false,
			expectedValue:  decimal.NewFromFloat(35.6), // cap = 29.464, raw wins
			expectedReason: domain.AdjustmentNone,
		},
		{
			name:           "Missing baseline returns raw target unadjusted",
			rawTarget:      decimal.NewFromFloat(42.0),
			baselineEUI:    decimal.Zero,
			expectedValue:  decimal.NewFromFloat(42.0),
			expectedReason: domain.AdjustmentNoBaseline,
		},
		{
			name:           "Negative baseline treated as missing",
			rawTarget:      decimal.NewFromFloat(42.0),
			baselineEUI:    decimal.NewFromFloat(-1.0),
			isMAI:          true,
			expectedValue:  decimal.NewFromFloat(42.0),
			expectedReason: domain.AdjustmentNoBaseline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := adjuster.Adjust(tt.rawTarget, tt.baselineEUI, tt.isMAI)
			assert.True(t, result.Value.Equal(tt.expectedValue),
				"Expected %s, got %s", tt.expectedValue, result.Value)
			assert.Equal(t, tt.expectedReason, result.Reason)
		})
	}
}

func TestTargetAdjuster_CapInvariant(t *testing.T) {
	policy := domain.DefaultPolicyConfig()
	adjuster := NewTargetAdjuster(policy)

	// For any positive baseline the adjusted target never demands more than a
	// 42% reduction, regardless of how aggressive the raw target is.
	baselines := []float64{30, 52.9, 69, 120, 536.6}
	rawTargets := []float64{0.1, 10, 35.6, 61, 100, 400}

	for _, baseline := range baselines {
		floor := decimal.NewFromFloat(baseline).Mul(decimal.NewFromFloat(0.58))
		for _, raw := range rawTargets {
			for _, isMAI := range []bool{false, true} {
				result := adjuster.Adjust(decimal.NewFromFloat(raw), decimal.NewFromFloat(baseline), isMAI)
				assert.True(t, result.Value.GreaterThanOrEqual(floor),
					"baseline %v raw %v mai %t: adjusted %s below cap floor %s",
					baseline, raw, isMAI, result.Value, floor)
			}
		}
	}
}

func TestCapTarget(t *testing.T) {
	got := CapTarget(decimal.NewFromFloat(100), decimal.NewFromFloat(0.42))
	assert.True(t, got.Equal(decimal.NewFromInt(58)), "got %s", got)
}
