package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// assertDecimalEqual compares decimals within a small tolerance to absorb
// rounding differences.
func assertDecimalEqual(t *testing.T, expected, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	difference := actual.Sub(expected).Abs()
	assert.True(t, difference.LessThan(decimal.NewFromFloat(0.01)),
		"expected %s, got %s (difference: %s) %v",
		expected.StringFixed(4), actual.StringFixed(4), difference.StringFixed(4), msgAndArgs)
}

func TestIncomeTaxCalculation(t *testing.T) {
	calculator := NewTaxCalculator()

	tests := []struct {
		name        string
		grossIncome decimal.Decimal
		expectedTax decimal.Decimal
		description string
	}{
		{
			name:        "Tax-free threshold",
			grossIncome: decimal.NewFromInt(18200),
			expectedTax: decimal.Zero,
			description: "No tax up to $18,200",
		},
		{
			name:        "First dollar in 19% bracket",
			grossIncome: decimal.NewFromInt(18201),
			expectedTax: decimal.NewFromFloat(0.19),
			description: "(18201 - 18201 + 1) * 0.19",
		},
		{
			name:        "Top of 19% bracket",
			grossIncome: decimal.NewFromInt(45000),
			expectedTax: decimal.NewFromInt(5092), // 26800 * 0.19
			description: "Base amount of the next bracket",
		},
		{
			name:        "Middle bracket",
			grossIncome: decimal.NewFromInt(100000),
			expectedTax: decimal.NewFromInt(22967), // 5092 + 55000 * 0.325
			description: "Income in the 32.5% bracket",
		},
		{
			name:        "37% bracket",
			grossIncome: decimal.NewFromInt(150000),
			expectedTax: decimal.NewFromInt(39867), // 34317 + 15000 * 0.37
			description: "Income in the 37% bracket",
		},
		{
			name:        "Top bracket",
			grossIncome: decimal.NewFromInt(250000),
			expectedTax: decimal.NewFromInt(81682), // 54682 + 60000 * 0.45
			description: "Income in the unbounded 45% bracket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := calculator.Calculate(tt.grossIncome, false)
			assertDecimalEqual(t, tt.expectedTax, result.TaxPayable, tt.description)
			assertDecimalEqual(t, tt.grossIncome.Sub(tt.expectedTax), result.AfterTaxIncome)
			assert.True(t, result.MedicareLevy.IsZero())
		})
	}
}

func TestMedicareLevy(t *testing.T) {
	calculator := NewTaxCalculator()

	result := calculator.Calculate(decimal.NewFromInt(100000), true)
	assertDecimalEqual(t, decimal.NewFromInt(2000), result.MedicareLevy, "2% of gross")
	assertDecimalEqual(t, decimal.NewFromInt(24967), result.TotalTax)

	without := calculator.Calculate(decimal.NewFromInt(100000), false)
	assertDecimalEqual(t, result.TaxPayable, without.TaxPayable, "levy must not change base tax")
}

func TestZeroAndNegativeIncome(t *testing.T) {
	calculator := NewTaxCalculator()

	for _, gross := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5000)} {
		result := calculator.Calculate(gross, true)
		assert.True(t, result.TotalTax.IsZero())
		assert.True(t, result.AfterTaxIncome.IsZero())
		assert.True(t, result.EffectiveTaxRate.IsZero())
	}
}

// Tax payable must never decrease as income increases.
func TestTaxMonotonicity(t *testing.T) {
	calculator := NewTaxCalculator()

	previous := decimal.Zero
	for income := int64(0); income <= 300000; income += 1000 {
		result := calculator.Calculate(decimal.NewFromInt(income), true)
		assert.True(t, result.TotalTax.GreaterThanOrEqual(previous),
			"tax decreased at income %d: %s < %s", income, result.TotalTax, previous)
		previous = result.TotalTax
	}
}

// Tax must be continuous at bracket boundaries: one extra dollar of income
// costs at most the marginal rate on that dollar.
func TestBracketBoundaryContinuity(t *testing.T) {
	calculator := NewTaxCalculator()

	boundaries := []int64{18200, 45000, 135000, 190000}
	for _, boundary := range boundaries {
		below := calculator.Calculate(decimal.NewFromInt(boundary), false)
		above := calculator.Calculate(decimal.NewFromInt(boundary+1), false)
		jump := above.TaxPayable.Sub(below.TaxPayable)
		assert.True(t, jump.LessThanOrEqual(decimal.NewFromFloat(0.46)),
			"discontinuity at %d: jump of %s", boundary, jump.StringFixed(2))
		assert.True(t, jump.GreaterThanOrEqual(decimal.Zero))
	}
}

func TestEffectiveTaxRate(t *testing.T) {
	calculator := NewTaxCalculator()

	result := calculator.Calculate(decimal.NewFromInt(100000), false)
	assertDecimalEqual(t, decimal.NewFromFloat(22.967), result.EffectiveTaxRate)
}

func TestMarginalRate(t *testing.T) {
	calculator := NewTaxCalculator()

	tests := []struct {
		income   int64
		expected int64
	}{
		{10000, 0},
		{30000, 19},
		{100000, 32},
		{150000, 37},
		{500000, 45},
	}
	for _, tt := range tests {
		rate := calculator.MarginalRate(decimal.NewFromInt(tt.income))
		assert.True(t, rate.GreaterThanOrEqual(decimal.NewFromInt(tt.expected)),
			"income %d: marginal rate %s", tt.income, rate)
	}
}
