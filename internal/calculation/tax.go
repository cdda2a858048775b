package calculation

import (
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets: ATO resident tax rates 2025-26, applied to every projection
//    year with no indexing of thresholds.
// 2. Medicare levy: flat 2% of taxable income when enabled; no low-income
//    phase-in or surcharge modeling.
// 3. Tax payable inside a bracket is baseAmount + (income - min + 1) * rate.
//    The +1 matches the bracket table, where each bracket's min sits one
//    dollar above the previous bracket's max. Changing it shifts every
//    result by rate * $1.

// TaxBracket is one row of the resident tax table. The top bracket has
// Unbounded set and its Max is ignored.
type TaxBracket struct {
	Min        decimal.Decimal
	Max        decimal.Decimal
	Unbounded  bool
	BaseAmount decimal.Decimal
	Rate       decimal.Decimal
}

// Contains reports whether the income falls inside this bracket.
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThan(b.Min) {
		return false
	}
	return b.Unbounded || income.LessThanOrEqual(b.Max)
}

// TaxResult is the outcome of a single-year tax calculation.
type TaxResult struct {
	GrossIncome      decimal.Decimal `json:"gross_income"`
	TaxPayable       decimal.Decimal `json:"tax_payable"`
	MedicareLevy     decimal.Decimal `json:"medicare_levy"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	AfterTaxIncome   decimal.Decimal `json:"after_tax_income"`
	EffectiveTaxRate decimal.Decimal `json:"effective_tax_rate"` // percentage
}

// TaxCalculator evaluates income tax against a fixed bracket table.
type TaxCalculator struct {
	Year             string
	Brackets         []TaxBracket
	MedicareLevyRate decimal.Decimal
}

// NewTaxCalculator creates a calculator loaded with the ATO 2025-26 resident
// rates.
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{
		Year:             "2025-26",
		MedicareLevyRate: decimal.NewFromFloat(0.02),
		Brackets: []TaxBracket{
			{Min: decimal.Zero, Max: decimal.NewFromInt(18200), BaseAmount: decimal.Zero, Rate: decimal.Zero},
			{Min: decimal.NewFromInt(18201), Max: decimal.NewFromInt(45000), BaseAmount: decimal.Zero, Rate: decimal.NewFromFloat(0.19)},
			{Min: decimal.NewFromInt(45001), Max: decimal.NewFromInt(135000), BaseAmount: decimal.NewFromInt(5092), Rate: decimal.NewFromFloat(0.325)},
			{Min: decimal.NewFromInt(135001), Max: decimal.NewFromInt(190000), BaseAmount: decimal.NewFromInt(34317), Rate: decimal.NewFromFloat(0.37)},
			{Min: decimal.NewFromInt(190001), Unbounded: true, BaseAmount: decimal.NewFromInt(54682), Rate: decimal.NewFromFloat(0.45)},
		},
	}
}

// Calculate evaluates tax on a taxable income. Zero or negative income
// short-circuits to an all-zero result so callers never divide by zero when
// deriving the effective rate.
func (tc *TaxCalculator) Calculate(grossIncome decimal.Decimal, includeMedicareLevy bool) TaxResult {
	if grossIncome.LessThanOrEqual(decimal.Zero) {
		return TaxResult{}
	}

	one := decimal.NewFromInt(1)
	taxPayable := decimal.Zero
	for _, bracket := range tc.Brackets {
		if bracket.Contains(grossIncome) {
			taxableAmount := grossIncome.Sub(bracket.Min).Add(one)
			taxPayable = bracket.BaseAmount.Add(taxableAmount.Mul(bracket.Rate))
			break
		}
	}

	medicareLevy := decimal.Zero
	if includeMedicareLevy {
		medicareLevy = grossIncome.Mul(tc.MedicareLevyRate)
	}

	totalTax := taxPayable.Add(medicareLevy)
	return TaxResult{
		GrossIncome:      grossIncome,
		TaxPayable:       taxPayable,
		MedicareLevy:     medicareLevy,
		TotalTax:         totalTax,
		AfterTaxIncome:   grossIncome.Sub(totalTax),
		EffectiveTaxRate: totalTax.Div(grossIncome).Mul(decimal.NewFromInt(100)),
	}
}

// MarginalRate returns the marginal rate (as a percentage) for an income.
func (tc *TaxCalculator) MarginalRate(grossIncome decimal.Decimal) decimal.Decimal {
	for _, bracket := range tc.Brackets {
		if bracket.Contains(grossIncome) {
			return bracket.Rate.Mul(decimal.NewFromInt(100))
		}
	}
	return decimal.Zero
}
